package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bassista/go_railops/internal/model"
	"github.com/bassista/go_railops/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func train(id string, speed int) model.TrainRecord {
	return model.TrainRecord{
		ID:           id,
		Name:         "Train " + id,
		Route:        "New Delhi → Patna",
		Status:       model.StatusOnTime,
		DelayMinutes: 0,
		Speed:        speed,
		Location:     "Aligarh",
		Passengers:   700,
		NextStop:     "Tundla",
		ETA:          "16:50",
		StatusColor:  model.ColorSuccess,
	}
}

func seeded(t *testing.T, trains ...model.TrainRecord) *Registry {
	t.Helper()
	r := New()
	require.NoError(t, r.ReplaceAll(trains))
	return r
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestRegistry_ListPreservesOrderAndCopies(t *testing.T) {
	r := seeded(t, train("3", 10), train("1", 20), train("2", 30))

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"3", "1", "2"}, []string{list[0].ID, list[1].ID, list[2].ID})

	list[0].Speed = 999
	again := r.List()
	assert.Equal(t, 10, again[0].Speed, "List must return copies")
}

func TestRegistry_FindByID(t *testing.T) {
	r := seeded(t, train("1", 10))

	got, ok := r.FindByID("1")
	require.True(t, ok)
	assert.Equal(t, "Train 1", got.Name)

	_, ok = r.FindByID("404")
	assert.False(t, ok)
}

func TestRegistry_ReplaceAllRejectsInvalidSetAtomically(t *testing.T) {
	r := seeded(t, train("1", 10), train("2", 20))
	before := mustJSON(t, r.List())

	tests := []struct {
		name string
		set  []model.TrainRecord
	}{
		{"empty set", []model.TrainRecord{}},
		{"nil set", nil},
		{"duplicate ids", []model.TrainRecord{train("7", 1), train("7", 2)}},
		{"missing id", []model.TrainRecord{train("", 1)}},
		{"negative speed", []model.TrainRecord{train("8", -5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ReplaceAll(tt.set)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrValidation))
			assert.Equal(t, before, mustJSON(t, r.List()))
		})
	}
}

func TestRegistry_UpdateOne(t *testing.T) {
	r := seeded(t, train("1", 10), train("2", 20))

	updated, err := r.UpdateOne("2", model.TrainPatch{Speed: model.Int(0), Status: model.Str(model.StatusHeld)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Speed)
	assert.Equal(t, model.StatusHeld, updated.Status)

	got, _ := r.FindByID("2")
	assert.Equal(t, updated, got)
}

func TestRegistry_UpdateOneNotFound(t *testing.T) {
	r := seeded(t, train("1", 10))
	before := mustJSON(t, r.List())

	_, err := r.UpdateOne("does-not-exist", model.TrainPatch{Route: model.Str("A → B")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.Equal(t, before, mustJSON(t, r.List()))
}

func TestRegistry_UpdateOneRejectsInvalidOverlay(t *testing.T) {
	r := seeded(t, train("1", 10))

	_, err := r.UpdateOne("1", model.TrainPatch{Speed: model.Int(-3)})

	assert.True(t, errors.Is(err, model.ErrValidation))
	got, _ := r.FindByID("1")
	assert.Equal(t, 10, got.Speed)
}

func TestReconcile_PreservesUnmatchedRecords(t *testing.T) {
	a, b := train("1", 80), train("2", 90)
	r := seeded(t, a, b)

	res := r.Reconcile([]model.TrainPatch{{ID: model.Str("2"), Speed: model.Int(50)}})

	assert.Equal(t, Result{Updated: 1, Unchanged: 1}, res)
	list := r.List()
	assert.Equal(t, a, list[0])
	expected := b
	expected.Speed = 50
	assert.Equal(t, expected, list[1])
}

func TestReconcile_IgnoresUnknownIDs(t *testing.T) {
	r := seeded(t, train("1", 80), train("2", 90))

	res := r.Reconcile([]model.TrainPatch{
		{ID: model.Str("99"), Name: model.Str("Ghost Express"), Route: model.Str("Nowhere → Elsewhere")},
		{Name: model.Str("No id at all")},
	})

	assert.Equal(t, 2, res.Ignored)
	assert.Equal(t, 2, r.Len())
	_, ok := r.FindByID("99")
	assert.False(t, ok)
}

func TestReconcile_FirstCandidateWins(t *testing.T) {
	r := seeded(t, train("1", 80))

	res := r.Reconcile([]model.TrainPatch{
		{ID: model.Str("1"), Speed: model.Int(60)},
		{ID: model.Str("1"), Speed: model.Int(20)},
	})

	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Ignored)
	got, _ := r.FindByID("1")
	assert.Equal(t, 60, got.Speed)
}

func TestReconcile_KeepsRecordWhenOverlayInvalid(t *testing.T) {
	r := seeded(t, train("1", 80), train("2", 90))

	res := r.Reconcile([]model.TrainPatch{
		{ID: model.Str("1"), Speed: model.Int(-10)},
		{ID: model.Str("2"), StatusColor: model.Str("teal")},
	})

	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 2, res.Ignored)
	assert.Equal(t, []model.TrainRecord{train("1", 80), train("2", 90)}, r.List())
}

func TestReconcile_MalformedBatchLeavesRegistryIdentical(t *testing.T) {
	r := seeded(t, train("1", 80), train("2", 90))
	before := mustJSON(t, r.List())

	for _, raw := range []string{
		"",
		"not json at all",
		`[{"id": "1", "speed": 10}`,
		`{"id": "1"}`,
		"null",
		`[{"id": "1", "speed": "fast"}]`,
	} {
		t.Run(raw, func(t *testing.T) {
			batch, err := ParseBatch(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, provider.ErrParse))
			assert.Nil(t, batch)
			assert.Equal(t, before, mustJSON(t, r.List()))
		})
	}
}

func TestParseBatch_AcceptsFencedAndWrappedOutput(t *testing.T) {
	fenced := "```json\n[{\"id\": \"1\", \"speed\": 42}]\n```"
	batch, err := ParseBatch(fenced)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, 42, *batch[0].Speed)

	wrapped := `{"trains": [{"id": "2", "eta": "18:00"}]}`
	batch, err = ParseBatch(wrapped)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "18:00", *batch[0].ETA)
}

func TestParsePatch(t *testing.T) {
	patch, err := ParsePatch(`{"id": "1", "status": "Rerouted"}`)
	require.NoError(t, err)
	assert.Equal(t, "Rerouted", *patch.Status)

	_, err = ParsePatch(`{"id": "1"}`)
	assert.True(t, errors.Is(err, provider.ErrParse))

	_, err = ParsePatch(`[1,2]`)
	assert.True(t, errors.Is(err, provider.ErrParse))
}

func TestSync_RecordsLastSync(t *testing.T) {
	r := seeded(t, train("1", 80))
	assert.True(t, r.LastSync().IsZero())

	r.Sync([]model.TrainPatch{{ID: model.Str("1"), Speed: model.Int(70)}})

	assert.False(t, r.LastSync().IsZero())
}

func TestReconcileOne(t *testing.T) {
	r := seeded(t, train("1", 80), train("2", 90))

	got, err := r.ReconcileOne("1", model.TrainPatch{ID: model.Str("1"), Route: model.Str("A → B")})
	require.NoError(t, err)
	assert.Equal(t, "A → B", got.Route)

	got, err = r.ReconcileOne("2", model.TrainPatch{ETA: model.Str("On Hold")})
	require.NoError(t, err)
	assert.Equal(t, "On Hold", got.ETA)
}

func TestReconcileOne_RejectsMismatchedTarget(t *testing.T) {
	r := seeded(t, train("1", 80), train("2", 90))
	before := mustJSON(t, r.List())

	_, err := r.ReconcileOne("1", model.TrainPatch{ID: model.Str("2"), Speed: model.Int(0)})

	assert.True(t, errors.Is(err, provider.ErrParse))
	assert.Equal(t, before, mustJSON(t, r.List()))
}

func TestReconcileOne_NotFound(t *testing.T) {
	r := seeded(t, train("1", 80))

	_, err := r.ReconcileOne("does-not-exist", model.TrainPatch{Route: model.Str("A → B")})

	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.Equal(t, 1, r.Len())
}

func TestTransform_AppliesToEveryRecord(t *testing.T) {
	r := seeded(t, train("1", 80), train("2", 90), train("3", 100))

	res := r.Transform(func(i int, rec model.TrainRecord) model.TrainPatch {
		return model.TrainPatch{
			ID:           model.Str("ignored"),
			Speed:        model.Int(0),
			DelayMinutes: model.Int(rec.DelayMinutes + 30),
			Platform:     model.Int(i + 1),
		}
	})

	assert.Equal(t, 3, res.Updated)
	for i, rec := range r.List() {
		assert.Equal(t, 0, rec.Speed)
		assert.Equal(t, 30, rec.DelayMinutes)
		require.NotNil(t, rec.Platform)
		assert.Equal(t, i+1, *rec.Platform)
	}
}

func TestSnapshotJSON(t *testing.T) {
	r := seeded(t, train("1", 80))

	var decoded []model.TrainRecord
	require.NoError(t, json.Unmarshal([]byte(r.SnapshotJSON()), &decoded))
	assert.Equal(t, r.List(), decoded)
}

func TestRegistry_ConcurrentMergeAndUpdate(t *testing.T) {
	var trains []model.TrainRecord
	for i := 0; i < 10; i++ {
		trains = append(trains, train(fmt.Sprint(i), 50))
	}
	r := seeded(t, trains...)

	var wg sync.WaitGroup
	const numGoroutines = 50
	for i := 0; i < numGoroutines; i++ {
		wg.Add(3)
		go func(idx int) {
			defer wg.Done()
			r.Sync([]model.TrainPatch{{ID: model.Str(fmt.Sprint(idx % 10)), Speed: model.Int(idx)}})
		}(i)
		go func(idx int) {
			defer wg.Done()
			_, _ = r.UpdateOne(fmt.Sprint(idx%10), model.TrainPatch{Passengers: model.Int(idx)})
		}(i)
		go func() {
			defer wg.Done()
			_ = r.List()
			_, _ = r.FindByID("3")
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, r.Len())
}

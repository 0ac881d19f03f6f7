package model

import (
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrain() TrainRecord {
	return TrainRecord{
		ID:           "12309",
		Name:         "Rajdhani Express",
		Route:        "New Delhi → Patna",
		Status:       StatusDelayed,
		DelayMinutes: 12,
		Speed:        95,
		Location:     "Kanpur Central",
		Passengers:   620,
		NextStop:     "Allahabad",
		ETA:          "16:40",
		StatusColor:  ColorWarning,
	}
}

func TestTrainPatch_ApplyOverlaysPresentFieldsOnly(t *testing.T) {
	rec := sampleTrain()
	patch := TrainPatch{Speed: Int(50), Location: Str("Mughal Sarai")}

	out := patch.Apply(rec)

	assert.Equal(t, 50, out.Speed)
	assert.Equal(t, "Mughal Sarai", out.Location)
	assert.Equal(t, rec.Name, out.Name)
	assert.Equal(t, rec.DelayMinutes, out.DelayMinutes)
	assert.Equal(t, rec.ETA, out.ETA)
	assert.Equal(t, 95, rec.Speed, "input record must not change")
}

func TestTrainPatch_ApplyNeverChangesID(t *testing.T) {
	rec := sampleTrain()
	out := TrainPatch{ID: Str("99999"), Name: Str("Other")}.Apply(rec)

	assert.Equal(t, "12309", out.ID)
	assert.Equal(t, "Other", out.Name)
}

func TestTrainPatch_ApplyCopiesPlatform(t *testing.T) {
	p := 4
	out := TrainPatch{Platform: &p}.Apply(sampleTrain())
	p = 9

	require.NotNil(t, out.Platform)
	assert.Equal(t, 4, *out.Platform)
}

func TestTrainPatch_IsEmpty(t *testing.T) {
	assert.True(t, TrainPatch{ID: Str("1")}.IsEmpty())
	assert.False(t, TrainPatch{ETA: Str("Pending")}.IsEmpty())
}

func TestTrainRecord_CloneDoesNotSharePlatform(t *testing.T) {
	p := 3
	rec := sampleTrain()
	rec.Platform = &p

	clone := rec.Clone()
	*clone.Platform = 7

	assert.Equal(t, 3, *rec.Platform)
}

func TestSplitAndJoinRoute(t *testing.T) {
	assert.Equal(t, []string{"New Delhi", "Agra", "Bhopal"}, SplitRoute("New Delhi → Agra → Bhopal"))
	assert.Empty(t, SplitRoute("  "))
	assert.Equal(t, "A → B", JoinRoute([]string{"A", "B"}))

	origin, dest := sampleTrain().Endpoints()
	assert.Equal(t, "New Delhi", origin)
	assert.Equal(t, "Patna", dest)
}

func TestTrainRecord_Validation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(sampleTrain()))

	bad := sampleTrain()
	bad.Speed = -1
	assert.Error(t, v.Struct(bad))

	bad = sampleTrain()
	bad.StatusColor = "purple"
	assert.Error(t, v.Struct(bad))

	bad = sampleTrain()
	bad.ID = ""
	assert.Error(t, v.Struct(bad))

	platform := 17
	bad = sampleTrain()
	bad.Platform = &platform
	assert.Error(t, v.Struct(bad))
}

func TestTrainSet_RejectsDuplicateIDs(t *testing.T) {
	v := validator.New()
	a := sampleTrain()
	b := sampleTrain()

	err := v.Struct(TrainSet{Trains: []TrainRecord{a, b}})
	assert.Error(t, err)

	b.ID = "12310"
	assert.NoError(t, v.Struct(TrainSet{Trains: []TrainRecord{a, b}}))
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name                string
		total, page, size   int
		start, end, nbPages int
	}{
		{"first page of ten", 10, 1, 3, 0, 3, 4},
		{"second page", 10, 2, 3, 3, 6, 4},
		{"last partial page", 10, 4, 3, 9, 10, 4},
		{"past the end", 10, 5, 3, 10, 10, 4},
		{"empty collection", 0, 1, 3, 0, 0, 0},
		{"invalid size", 10, 1, 0, 0, 0, 0},
		{"page below one", 10, 0, 3, 10, 10, 4},
		{"huge page size fits on page one", 10, 1, math.MaxInt, 0, 10, 1},
		{"huge page size second page", 10, 2, math.MaxInt, 10, 10, 1},
		{"page whose offset would wrap", 10, 1<<62 + 1, 4, 10, 10, 3},
		{"max page and size", 10, math.MaxInt, math.MaxInt, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, pages := PageBounds(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, tt.nbPages, pages)
		})
	}
}

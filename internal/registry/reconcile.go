package registry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/metrics"
	"github.com/bassista/go_railops/internal/model"
	"github.com/bassista/go_railops/internal/provider"
)

// Result summarizes one bulk merge.
type Result struct {
	Updated   int // records that received at least one field
	Unchanged int // records with no matching candidate
	Ignored   int // candidates with an unknown id, a duplicate id or an invalid overlay
}

// ParseBatch parses provider output into train candidates. It accepts a JSON array or an
// object carrying the array under "trains".
func ParseBatch(raw string) ([]model.TrainPatch, error) {
	batch, err := provider.Decode[[]model.TrainPatch](raw)
	if err == nil {
		if batch == nil {
			return nil, fmt.Errorf("%w: null batch", provider.ErrParse)
		}
		return batch, nil
	}

	wrapped, wrapErr := provider.Decode[struct {
		Trains []model.TrainPatch `json:"trains"`
	}](raw)
	if wrapErr != nil || wrapped.Trains == nil {
		return nil, err
	}
	return wrapped.Trains, nil
}

// ParsePatch parses provider output into a single train candidate.
func ParsePatch(raw string) (model.TrainPatch, error) {
	patch, err := provider.Decode[model.TrainPatch](raw)
	if err != nil {
		return model.TrainPatch{}, err
	}
	if patch.IsEmpty() {
		return model.TrainPatch{}, fmt.Errorf("%w: no train fields", provider.ErrParse)
	}
	return patch, nil
}

// Reconcile merges untrusted candidates into the registry.
// Membership is closed: candidates with unknown ids are ignored and records without a
// candidate are kept as they are. A candidate overlays only the fields it carries; when
// the overlay would produce an invalid record the existing record is kept. The new list
// replaces the old one in a single step, preserving order.
func (r *Registry) Reconcile(batch []model.TrainPatch) Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reconcileLocked(batch)
}

// Sync is a bulk Reconcile that also records the sync time.
func (r *Registry) Sync(batch []model.TrainPatch) Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := r.reconcileLocked(batch)
	r.lastSync = time.Now()
	return res
}

func (r *Registry) reconcileLocked(batch []model.TrainPatch) Result {
	var res Result

	// first candidate per id wins
	candidates := make(map[string]model.TrainPatch, len(batch))
	for _, c := range batch {
		id := strings.TrimSpace(c.TargetID())
		if _, known := r.index[id]; !known {
			res.Ignored++
			logger.WithTrain("reconciler", id).Debug("ignoring candidate with unknown id")
			continue
		}
		if _, dup := candidates[id]; dup {
			res.Ignored++
			continue
		}
		candidates[id] = c
	}

	next := make([]model.TrainRecord, len(r.trains))
	for i, existing := range r.trains {
		c, ok := candidates[existing.ID]
		if !ok {
			next[i] = existing
			res.Unchanged++
			continue
		}
		merged := c.Apply(existing)
		if err := r.validate.Struct(merged); err != nil {
			logger.WithTrain("reconciler", existing.ID).Warnf("rejecting invalid overlay: %v", err)
			next[i] = existing
			res.Ignored++
			continue
		}
		next[i] = merged
		res.Updated++
	}

	r.trains = next
	metrics.AddReconcileIgnored(res.Ignored)
	logger.WithComponent("reconciler").Debugf("merged batch: updated=%d unchanged=%d ignored=%d", res.Updated, res.Unchanged, res.Ignored)
	return res
}

// ReconcileOne overlays a single candidate onto the record with the given id.
// A candidate that names a different train is rejected as unparsable output.
func (r *Registry) ReconcileOne(id string, patch model.TrainPatch) (model.TrainRecord, error) {
	if target := strings.TrimSpace(patch.TargetID()); target != "" && target != id {
		return model.TrainRecord{}, fmt.Errorf("%w: candidate targets train %q instead of %q", provider.ErrParse, target, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(id, patch)
}

// Transform applies a locally computed patch to every record, atomically.
// fn receives the index and a copy of the current record.
func (r *Registry) Transform(fn func(i int, rec model.TrainRecord) model.TrainPatch) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make([]model.TrainPatch, 0, len(r.trains))
	for i, t := range r.trains {
		p := fn(i, t.Clone())
		p.ID = model.Str(t.ID)
		batch = append(batch, p)
	}
	return r.reconcileLocked(batch)
}

// SnapshotJSON renders the current records as indented JSON, for provider prompts.
func (r *Registry) SnapshotJSON() string {
	b, err := json.MarshalIndent(r.List(), "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}

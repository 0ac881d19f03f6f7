package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/metrics"
	"github.com/bassista/go_railops/internal/model"
	"github.com/go-playground/validator/v10"
)

// Registry owns the authoritative, ordered list of trains.
// Every read-modify-write runs under one lock so a bulk merge and a single-record
// update can never interleave.
type Registry struct {
	mu       sync.RWMutex
	trains   []model.TrainRecord
	index    map[string]int
	lastSync time.Time
	validate *validator.Validate
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		index:    map[string]int{},
		validate: validator.New(),
	}
}

// List returns a copy of the records in insertion order.
func (r *Registry) List() []model.TrainRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return model.CloneTrains(r.trains)
}

// FindByID returns a copy of the record with the given id.
func (r *Registry) FindByID(id string) (model.TrainRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return model.TrainRecord{}, false
	}
	return r.trains[i].Clone(), true
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trains)
}

// LastSync returns the time of the last successful bulk sync (zero if none).
func (r *Registry) LastSync() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastSync
}

// ReplaceAll swaps the whole set. The set must be non-empty, valid and free of duplicate
// ids; otherwise the prior state is kept and an ErrValidation error is returned.
func (r *Registry) ReplaceAll(records []model.TrainRecord) error {
	set := model.TrainSet{Trains: model.CloneTrains(records)}
	if err := r.validate.Struct(set); err != nil {
		return fmt.Errorf("%w: replacement set: %v", model.ErrValidation, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.trains = set.Trains
	r.reindexLocked()
	metrics.SetRegistrySize(len(r.trains))
	logger.WithComponent("registry").Infof("registry replaced with %d trains", len(r.trains))
	return nil
}

// UpdateOne overlays patch onto the record with the given id and returns the new record.
func (r *Registry) UpdateOne(id string, patch model.TrainPatch) (model.TrainRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(id, patch)
}

func (r *Registry) updateLocked(id string, patch model.TrainPatch) (model.TrainRecord, error) {
	i, ok := r.index[id]
	if !ok {
		return model.TrainRecord{}, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}

	merged := patch.Apply(r.trains[i])
	if err := r.validate.Struct(merged); err != nil {
		return model.TrainRecord{}, fmt.Errorf("%w: train %s: %v", model.ErrValidation, id, err)
	}
	r.trains[i] = merged
	return merged.Clone(), nil
}

func (r *Registry) reindexLocked() {
	r.index = make(map[string]int, len(r.trains))
	for i, t := range r.trains {
		r.index[t.ID] = i
	}
}

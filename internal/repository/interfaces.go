package repository

import (
	"context"

	"github.com/bassista/go_railops/internal/model"
)

// TrainSink receives a validated train set reloaded from disk.
// The registry implements this interface.
type TrainSink interface {
	List() []model.TrainRecord
	ReplaceAll(records []model.TrainRecord) error
}

// Repository abstracts loading and watching of the seed file.
// JSONRepository implements this interface.
type Repository interface {
	Load(ctx context.Context) ([]model.TrainRecord, error)
	StartWatcher(ctx context.Context, sink TrainSink) error
}

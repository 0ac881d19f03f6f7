package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/model"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
)

const debounceDelay = 200 * time.Millisecond

// JSONRepository reads the seed file and watches it for changes.
// The file holds either a JSON array of trains or an object {"trains": [...]}.
type JSONRepository struct {
	path      string
	dir       string
	base      string
	validator *validator.Validate
	mu        sync.Mutex
}

// NewJSONRepository creates a repository for the given JSON file path.
// It returns the repository interface to avoid leaking implementation details.
func NewJSONRepository(path string) (Repository, error) {
	if path == "" {
		return nil, errors.New("seed file path is required")
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "" || dir == "." {
		dir = "."
	}

	return &JSONRepository{path: path, dir: dir, base: base, validator: validator.New()}, nil
}

// Load reads the seed file, parses and validates it as a complete train set.
func (r *JSONRepository) Load(ctx context.Context) ([]model.TrainRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadUnlocked()
}

func (r *JSONRepository) loadUnlocked() ([]model.TrainRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	set, err := decodeTrainSet(data)
	if err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	if err := r.validator.Struct(&set); err != nil {
		return nil, fmt.Errorf("validate seed file: %w: %v", model.ErrValidation, err)
	}
	return set.Trains, nil
}

func decodeTrainSet(data []byte) (model.TrainSet, error) {
	var set model.TrainSet
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err := json.Unmarshal(trimmed, &set.Trains)
		return set, err
	}
	err := json.Unmarshal(trimmed, &set)
	return set, err
}

// StartWatcher listens for changes to the seed file and pushes reloaded sets into sink.
// It watches the parent directory so atomic replace sequences (temp+rename) are observed,
// filters events by basename and debounces bursts into one reload. Cancel ctx to stop it.
func (r *JSONRepository) StartWatcher(ctx context.Context, sink TrainSink) error {
	if sink == nil {
		return errors.New("sink is required")
	}
	onChange := r.MakeWatcherCallback(sink)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, onChange)
		}
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("seed-file").Info("seed file watcher stopped")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != r.base {
					continue
				}
				// Remove/Rename alone is the first half of an atomic replace; the reload
				// waits for the file to reappear and fails harmlessly if it does not.
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod|fsnotify.Remove|fsnotify.Rename) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("seed-file").Warnf("watcher error: %v", err)
			}
		}
	}()

	logger.WithComponent("seed-file").Infof("watching %s for changes", r.path)
	return nil
}

// MakeWatcherCallback returns the reload callback used by the watcher.
// An unreadable or invalid file is logged and leaves the sink untouched.
func (r *JSONRepository) MakeWatcherCallback(sink TrainSink) func() {
	return func() {
		trains, err := r.Load(context.Background())
		if err != nil {
			logger.WithComponent("seed-file").Warnf("seed reload failed: %v", err)
			return
		}

		if reflect.DeepEqual(trains, sink.List()) {
			logger.WithComponent("seed-file").Debug("seed file unchanged, skipping reload")
			return
		}

		if err := sink.ReplaceAll(trains); err != nil {
			logger.WithComponent("seed-file").Warnf("registry reload error: %v", err)
			return
		}
		logger.WithComponent("seed-file").Infof("registry reloaded from seed file (%d trains)", len(trains))
	}
}

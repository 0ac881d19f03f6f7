package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bassista/go_railops/internal/cache"
	"github.com/bassista/go_railops/internal/config"
	"github.com/bassista/go_railops/internal/model"
	"github.com/bassista/go_railops/internal/provider"
	"github.com/bassista/go_railops/internal/registry"
	"github.com/bassista/go_railops/internal/repository"
	"github.com/bassista/go_railops/internal/seed"
)

// mockRepository implements repository.Repository for testing
type mockRepository struct {
	watcherStarted bool
	watcherErr     error
	trains         []model.TrainRecord
	loadErr        error
}

func (m *mockRepository) Load(ctx context.Context) ([]model.TrainRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.trains, nil
}

func (m *mockRepository) StartWatcher(ctx context.Context, sink repository.TrainSink) error {
	if m.watcherErr != nil {
		return m.watcherErr
	}
	m.watcherStarted = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{TTL: time.Minute, Size: 16, SweepInterval: time.Minute},
		Sync:  config.SyncConfig{Enabled: true, Interval: time.Hour, Timeout: time.Minute},
		Seed:  config.SeedConfig{Watch: true},
		Misc:  config.MiscConfig{Timezone: "UTC", ReferenceDate: "September 10, 2025"},
	}
}

func newTestApp(t *testing.T, repo repository.Repository) *App {
	t.Helper()
	a, err := New(testConfig(), repo, registry.New(), cache.NewResponseCache(16, time.Minute), provider.NewDisabledProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

func TestNew_Success(t *testing.T) {
	a := newTestApp(t, &mockRepository{})

	if a.Service == nil {
		t.Error("expected dashboard service to be wired")
	}
	if a.BaseCtx == nil || a.Cancel == nil {
		t.Error("expected lifecycle context")
	}
}

func TestNew_NilDependencies(t *testing.T) {
	reg := registry.New()
	store := cache.NewResponseCache(16, time.Minute)
	p := provider.NewDisabledProvider()

	tests := []struct {
		name string
		fn   func() (*App, error)
	}{
		{"nil config", func() (*App, error) { return New(nil, nil, reg, store, p) }},
		{"nil registry", func() (*App, error) { return New(testConfig(), nil, nil, store, p) }},
		{"nil store", func() (*App, error) { return New(testConfig(), nil, reg, nil, p) }},
		{"nil provider", func() (*App, error) { return New(testConfig(), nil, reg, store, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_NilRepoIsAllowed(t *testing.T) {
	a := newTestApp(t, nil)

	if err := a.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if a.Registry.Len() != len(seed.Trains()) {
		t.Errorf("expected built-in seed, got %d trains", a.Registry.Len())
	}
}

func TestApp_BootstrapFromRepository(t *testing.T) {
	a := newTestApp(t, &mockRepository{trains: seed.Trains()[:3]})

	if err := a.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if a.Registry.Len() != 3 {
		t.Errorf("expected 3 trains from seed file, got %d", a.Registry.Len())
	}
}

func TestApp_StartWatchers(t *testing.T) {
	repo := &mockRepository{}
	a := newTestApp(t, repo)

	if err := a.StartWatchers(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.watcherStarted {
		t.Error("expected seed file watcher to be started")
	}
}

func TestApp_StartWatchers_WatchDisabled(t *testing.T) {
	repo := &mockRepository{}
	a := newTestApp(t, repo)
	a.Config.Seed.Watch = false

	if err := a.StartWatchers(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.watcherStarted {
		t.Error("expected seed file watcher NOT to be started")
	}
}

func TestApp_StartWatchers_WatcherError(t *testing.T) {
	a := newTestApp(t, &mockRepository{watcherErr: errors.New("inotify limit")})

	if err := a.StartWatchers(); err == nil {
		t.Error("expected error when the watcher cannot start")
	}
}

func TestApp_Shutdown(t *testing.T) {
	a := newTestApp(t, nil)
	a.Shutdown()

	select {
	case <-a.BaseCtx.Done():
	case <-time.After(time.Second):
		t.Error("expected context to be cancelled after shutdown")
	}
}

func TestApp_Shutdown_Nil(t *testing.T) {
	var a *App
	a.Shutdown()
}

func TestApp_Shutdown_NilCancel(t *testing.T) {
	a := &App{}
	a.Shutdown()
}

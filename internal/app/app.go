package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bassista/go_railops/internal/cache"
	"github.com/bassista/go_railops/internal/config"
	"github.com/bassista/go_railops/internal/dashboard"
	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/provider"
	"github.com/bassista/go_railops/internal/registry"
	"github.com/bassista/go_railops/internal/repository"
	"github.com/bassista/go_railops/internal/scheduler"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config   *config.Config
	Repo     repository.Repository // nil when no seed file is configured
	Registry *registry.Registry
	Cache    cache.ResponseStore
	Provider provider.Provider
	Service  *dashboard.Service

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, repo repository.Repository, reg *registry.Registry, store cache.ResponseStore, p provider.Provider) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if reg == nil {
		return nil, errors.New("registry is nil")
	}
	if store == nil {
		return nil, errors.New("cache store is nil")
	}
	if p == nil {
		return nil, errors.New("provider is nil")
	}

	loc := cfg.Location()
	svc := dashboard.NewService(reg, store, p,
		dashboard.WithDay(cfg.Misc.ReferenceDate),
		dashboard.WithClock(func() time.Time { return time.Now().In(loc) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:   cfg,
		Repo:     repo,
		Registry: reg,
		Cache:    store,
		Provider: p,
		Service:  svc,
		BaseCtx:  ctx,
		Cancel:   cancel,
	}, nil
}

// Bootstrap fills the registry before the server starts.
func (a *App) Bootstrap() error {
	return a.Service.Bootstrap(a.BaseCtx, a.Repo)
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWatchers launches the background jobs: seed file watcher, cache sweep and
// periodic resync. All of them stop when the app is shut down.
func (a *App) StartWatchers() error {
	if a.Repo != nil && a.Config.Seed.Watch {
		if err := a.Repo.StartWatcher(a.BaseCtx, a.Registry); err != nil {
			return fmt.Errorf("cannot start seed file watcher: %w", err)
		}
	}

	cache.StartSweepScheduler(a.BaseCtx, a.Cache, a.Config.Cache.SweepInterval)

	switch {
	case !a.Config.Sync.Enabled:
		logger.WithComponent("app").Info("periodic resync disabled by configuration")
	case !a.Provider.Enabled():
		logger.WithComponent("app").Info("periodic resync skipped: no provider configured")
	default:
		scheduler.NewResyncScheduler(a.Service, a.Config.Sync.Interval, a.Config.Sync.Timeout).Start(a.BaseCtx)
	}
	return nil
}

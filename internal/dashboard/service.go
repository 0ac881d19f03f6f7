package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bassista/go_railops/internal/cache"
	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/metrics"
	"github.com/bassista/go_railops/internal/model"
	"github.com/bassista/go_railops/internal/provider"
	"github.com/bassista/go_railops/internal/registry"
	"github.com/bassista/go_railops/internal/repository"
	"github.com/bassista/go_railops/internal/seed"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultDay is the simulated service day used in provider prompts.
const DefaultDay = "September 10, 2025"

// Service answers dashboard requests from the registry, the response cache and the provider.
// Provider and parse failures never reach callers: every operation has a local fallback.
type Service struct {
	registry *registry.Registry
	cache    cache.ResponseStore
	provider provider.Provider
	prompts  provider.Prompts
	validate *validator.Validate

	misses  singleflight.Group
	resyncs singleflight.Group

	now   func() time.Time
	newID func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithDay sets the simulated service day quoted in prompts.
func WithDay(day string) Option {
	return func(s *Service) {
		if strings.TrimSpace(day) != "" {
			s.prompts.Day = day
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the recommendation id generator, mainly for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(reg *registry.Registry, store cache.ResponseStore, p provider.Provider, opts ...Option) *Service {
	if p == nil {
		p = provider.NewDisabledProvider()
	}
	s := &Service{
		registry: reg,
		cache:    store,
		provider: p,
		prompts:  provider.Prompts{Day: DefaultDay},
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap fills the registry once at startup: from the seed file when one is given and
// valid, else from a provider-generated set, else from the built-in seed trains.
func (s *Service) Bootstrap(ctx context.Context, seedFile repository.Repository) error {
	log := logger.WithComponent("bootstrap")

	if seedFile != nil {
		trains, err := seedFile.Load(ctx)
		if err == nil {
			if err = s.registry.ReplaceAll(trains); err == nil {
				log.Infof("registry initialized from seed file with %d trains", len(trains))
				return nil
			}
		}
		log.Warnf("seed file not usable: %v", err)
	}

	trains, err := ask[[]model.TrainRecord](ctx, s, s.prompts.InitialTrains(seed.TrainIDs()), nil)
	if err == nil {
		if err = s.registry.ReplaceAll(trains); err == nil {
			log.Infof("registry initialized from provider with %d trains", len(trains))
			return nil
		}
	}
	s.fallback("bootstrap", err)

	if err := s.registry.ReplaceAll(seed.Trains()); err != nil {
		return fmt.Errorf("initialize registry: %w", err)
	}
	log.Infof("registry initialized from built-in seed with %d trains", s.registry.Len())
	return nil
}

// Resync asks the provider for fresh state of every train and merges it into the registry.
// Concurrent calls share one in-flight resync.
func (s *Service) Resync(ctx context.Context) error {
	_, err, shared := s.resyncs.Do("resync", func() (any, error) {
		return nil, s.resync(ctx)
	})
	if shared {
		logger.WithComponent("resync").Debug("joined in-flight resync")
	}
	return err
}

func (s *Service) resync(ctx context.Context) error {
	prompt := s.prompts.Resync(s.now().Format("15:04"), s.registry.SnapshotJSON())
	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		metrics.IncResync(provider.Reason(err))
		return fmt.Errorf("resync: %w", err)
	}

	batch, err := registry.ParseBatch(raw)
	if err != nil {
		metrics.IncResync(provider.Reason(err))
		return fmt.Errorf("resync: %w", err)
	}

	res := s.registry.Sync(batch)
	metrics.IncResync("ok")
	logger.WithComponent("resync").Infof("registry synced: updated=%d unchanged=%d ignored=%d", res.Updated, res.Unchanged, res.Ignored)
	return nil
}

// Health reports registry size, provider state, last sync time and cache occupancy.
func (s *Service) Health() model.Health {
	h := model.Health{
		Status:          "healthy",
		TrainsCount:     s.registry.Len(),
		ProviderEnabled: s.provider.Enabled(),
		CacheEntries:    s.cache.Len(),
	}
	if last := s.registry.LastSync(); !last.IsZero() {
		h.LastSync = &last
	}
	return h
}

// cached returns the bytes under key, building and storing them on a miss.
// Concurrent misses on the same key share one build.
func (s *Service) cached(key string, build func() (any, error)) ([]byte, error) {
	if payload, ok := s.cache.Get(key); ok {
		return payload, nil
	}

	v, err, _ := s.misses.Do(key, func() (any, error) {
		if payload, ok := s.cache.Get(key); ok {
			return payload, nil
		}
		value, err := build()
		if err != nil {
			return nil, err
		}
		return s.cache.Put(key, value, 0)
	})
	if err != nil {
		return nil, err
	}
	return bytes.Clone(v.([]byte)), nil
}

// ask invokes the provider and decodes its answer as T. check, when set, validates the
// decoded value; a failing check is reported as unparsable output.
func ask[T any](ctx context.Context, s *Service, prompt string, check func(T) error) (T, error) {
	var zero T
	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return zero, err
	}
	out, err := provider.Decode[T](raw)
	if err != nil {
		return zero, err
	}
	if check != nil {
		if err := check(out); err != nil {
			return zero, fmt.Errorf("%w: %v", provider.ErrParse, err)
		}
	}
	return out, nil
}

// fallback records that operation is served from local data.
func (s *Service) fallback(operation string, err error) {
	reason := provider.Reason(err)
	metrics.IncFallback(operation, reason)
	entry := logger.WithComponent("dashboard").WithField("operation", operation)
	if errors.Is(err, provider.ErrProviderDisabled) {
		entry.Debug("provider disabled, using fallback data")
		return
	}
	entry.Warnf("using fallback data (%s): %v", reason, err)
}

func (s *Service) invalid(err error) error {
	return fmt.Errorf("%w: %v", model.ErrValidation, err)
}

package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/bassista/go_railops/internal/cache"
	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/model"
	"github.com/bassista/go_railops/internal/seed"
)

const (
	DefaultTrainsPageSize = 3
	DefaultAlertsPageSize = 4
)

// TrainQuery selects a page of the trains listing. Zero page values take the defaults.
type TrainQuery struct {
	Hub      string `validate:"required"`
	Page     int    `validate:"min=1"`
	PageSize int    `validate:"min=1"`
}

// AlertQuery selects a page of the alerts listing. Zero page values take the defaults.
type AlertQuery struct {
	Hub      string `validate:"required"`
	Page     int    `validate:"min=1"`
	PageSize int    `validate:"min=1"`
}

func withPageDefaults(page, pageSize, defaultSize int) (int, int) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultSize
	}
	return page, pageSize
}

// ListTrains returns one page of trains as JSON. On a cache miss the registry is first
// resynced with the provider; a failed resync still serves the current registry.
func (s *Service) ListTrains(ctx context.Context, q TrainQuery) ([]byte, error) {
	q.Hub = strings.TrimSpace(q.Hub)
	q.Page, q.PageSize = withPageDefaults(q.Page, q.PageSize, DefaultTrainsPageSize)
	if err := s.validate.Struct(q); err != nil {
		return nil, s.invalid(err)
	}

	return s.cached(cache.TrainsKey(q.Hub, q.Page, q.PageSize), func() (any, error) {
		if err := s.Resync(ctx); err != nil {
			s.fallback("trains", err)
		}

		trains := s.registry.List()
		start, end, totalPages := model.PageBounds(len(trains), q.Page, q.PageSize)
		return model.TrainPage{
			Trains: trains[start:end],
			Pagination: model.TrainPagination{
				TotalTrains: len(trains),
				CurrentPage: q.Page,
				PageSize:    q.PageSize,
				TotalPages:  totalPages,
			},
		}, nil
	})
}

// Routes returns the current and alternate routes of a train as JSON.
func (s *Service) Routes(ctx context.Context, trainID, hub string) ([]byte, error) {
	trainID, hub = strings.TrimSpace(trainID), strings.TrimSpace(hub)
	if err := s.validate.Var(trainID, "required"); err != nil {
		return nil, s.invalid(fmt.Errorf("trainId: %w", err))
	}
	if err := s.validate.Var(hub, "required"); err != nil {
		return nil, s.invalid(fmt.Errorf("hub: %w", err))
	}

	train, ok := s.registry.FindByID(trainID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, trainID)
	}

	return s.cached(cache.RoutesKey(trainID, hub), func() (any, error) {
		prompt := s.prompts.Routes(train.ID, train.Name, train.Route, hub)
		routes, err := ask(ctx, s, prompt, func(r model.RouteOptions) error {
			return s.validate.Struct(r)
		})
		if err != nil {
			s.fallback("routes", err)
			return seed.Routes(hub, train), nil
		}
		return routes, nil
	})
}

// Analytics returns the performance summary of a hub as JSON.
func (s *Service) Analytics(ctx context.Context, hub string) ([]byte, error) {
	hub = strings.TrimSpace(hub)
	if err := s.validate.Var(hub, "required"); err != nil {
		return nil, s.invalid(fmt.Errorf("hub: %w", err))
	}

	return s.cached(cache.AnalyticsKey(hub), func() (any, error) {
		analytics, err := ask(ctx, s, s.prompts.Analytics(hub), func(a model.Analytics) error {
			return s.validate.Struct(a)
		})
		if err != nil {
			s.fallback("analytics", err)
			return seed.Analytics(), nil
		}
		if analytics.ScheduleAnalysis == nil {
			analytics.ScheduleAnalysis = []model.ScheduleEntry{}
		}
		return analytics, nil
	})
}

// Alerts returns one page of the alerts of a hub as JSON.
func (s *Service) Alerts(ctx context.Context, q AlertQuery) ([]byte, error) {
	q.Hub = strings.TrimSpace(q.Hub)
	q.Page, q.PageSize = withPageDefaults(q.Page, q.PageSize, DefaultAlertsPageSize)
	if err := s.validate.Struct(q); err != nil {
		return nil, s.invalid(err)
	}

	return s.cached(cache.AlertsKey(q.Hub, q.Page, q.PageSize), func() (any, error) {
		feed, err := ask(ctx, s, s.prompts.Alerts(q.Hub), func(f model.AlertFeed) error {
			return s.validate.Struct(f)
		})
		alerts := feed.Alerts
		if err != nil {
			s.fallback("alerts", err)
			alerts = seed.Alerts(q.Hub)
		}

		start, end, totalPages := model.PageBounds(len(alerts), q.Page, q.PageSize)
		return model.AlertPage{
			Alerts: alerts[start:end],
			Pagination: model.AlertPagination{
				TotalAlerts: len(alerts),
				CurrentPage: q.Page,
				PageSize:    q.PageSize,
				TotalPages:  totalPages,
			},
		}, nil
	})
}

// Recommendations returns traffic optimization hints derived from the current trains.
// Ids are always assigned locally.
func (s *Service) Recommendations(ctx context.Context) ([]byte, error) {
	return s.cached(cache.RecommendationsKey(), func() (any, error) {
		recs, err := ask(ctx, s, s.prompts.Recommendations(s.registry.SnapshotJSON()), func(recs []model.Recommendation) error {
			for i := range recs {
				if err := s.validate.Struct(recs[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			s.fallback("recommendations", err)
			return []model.Recommendation{}, nil
		}
		if recs == nil {
			recs = []model.Recommendation{}
		}
		for i := range recs {
			recs[i].ID = s.newID()
		}
		logger.WithComponent("dashboard").Debugf("generated %d recommendations", len(recs))
		return recs, nil
	})
}

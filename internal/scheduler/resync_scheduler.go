package scheduler

import (
	"context"
	"time"

	"github.com/bassista/go_railops/internal/logger"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultTimeout  = 25 * time.Second
)

// Resyncer refreshes the registry from the provider.
type Resyncer interface {
	Resync(ctx context.Context) error
}

// ResyncScheduler runs a bulk resync on a fixed interval.
// Each tick is bounded by its own timeout, so a slow provider call cannot stack ticks,
// and a failed or panicking tick never stops the loop.
type ResyncScheduler struct {
	target   Resyncer
	interval time.Duration
	timeout  time.Duration
}

func NewResyncScheduler(target Resyncer, interval, timeout time.Duration) *ResyncScheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &ResyncScheduler{target: target, interval: interval, timeout: timeout}
}

// Start launches the loop. The returned channel is closed once ctx is canceled and the
// loop has exited.
func (s *ResyncScheduler) Start(ctx context.Context) <-chan struct{} {
	logger.WithComponent("sched").Debugf("starting resync scheduler with interval: %v, tick timeout: %v", s.interval, s.timeout)
	done := make(chan struct{})
	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("sched").Info("resync scheduler stopped")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
	return done
}

func (s *ResyncScheduler) tick(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithComponent("sched").Errorf("resync tick panicked: %v", rec)
		}
	}()

	tickCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.target.Resync(tickCtx); err != nil {
		logger.WithComponent("sched").Warnf("resync failed after %v: %v", time.Since(start), err)
		return
	}
	logger.WithComponent("sched").Debugf("resync tick completed in %v", time.Since(start))
}

package cache

import (
	"context"
	"time"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/metrics"
)

// StartSweepScheduler runs a goroutine that clears the whole cache on every tick.
// It bounds growth from high key cardinality and drops entries whose expiry was missed.
// Returns a channel that is closed when the scheduler has stopped.
func StartSweepScheduler(ctx context.Context, store Clearer, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		interval = DefaultTTL
	}
	logger.WithComponent("sweep").Debugf("starting cache sweep scheduler with interval: %v", interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("sweep").Info("cache sweep scheduler stopped")
				return
			case <-ticker.C:
				sweep(store)
			}
		}
	}()
	return done
}

func sweep(store Clearer) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithComponent("sweep").Errorf("cache sweep panicked: %v", rec)
		}
	}()
	store.Clear()
	metrics.IncCacheSweeps()
	logger.WithComponent("sweep").Debugf("response cache cleared")
}

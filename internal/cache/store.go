package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/metrics"
	"github.com/bluele/gcache"
)

// DefaultTTL is the lifetime of every cached response.
const DefaultTTL = 5 * time.Minute

// DefaultSize bounds the number of cached responses.
const DefaultSize = 1024

// Option customizes a ResponseCache.
type Option func(*gcache.CacheBuilder)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock gcache.Clock) Option {
	return func(b *gcache.CacheBuilder) {
		b.Clock(clock)
	}
}

// ResponseCache keeps serialized responses keyed by normalized request parameters.
// Values are stored as JSON bytes, so a cached response is a snapshot: later registry
// changes cannot alter it and every hit returns the same bytes.
type ResponseCache struct {
	entries gcache.Cache
	ttl     time.Duration
}

// NewResponseCache creates a bounded LRU cache whose entries expire after ttl.
func NewResponseCache(size int, ttl time.Duration, opts ...Option) *ResponseCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	builder := gcache.New(size).
		LRU().
		Expiration(ttl).
		EvictedFunc(func(key, _ interface{}) {
			metrics.IncCacheEvictions()
			logger.WithComponent("cache").Tracef("entry dropped: %v", key)
		})
	for _, opt := range opts {
		opt(builder)
	}

	return &ResponseCache{entries: builder.Build(), ttl: ttl}
}

// TTL returns the default lifetime of entries.
func (c *ResponseCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached bytes iff the key is present and not expired.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	v, err := c.entries.Get(key)
	if err != nil {
		if !errors.Is(err, gcache.KeyNotFoundError) {
			logger.WithComponent("cache").Warnf("lookup %s failed: %v", key, err)
		}
		metrics.ObserveCacheLookup(KindOf(key), false)
		return nil, false
	}

	payload, ok := v.([]byte)
	if !ok {
		metrics.ObserveCacheLookup(KindOf(key), false)
		return nil, false
	}
	metrics.ObserveCacheLookup(KindOf(key), true)
	return bytes.Clone(payload), true
}

// Put serializes value and stores it under key for ttl (the cache default when ttl <= 0).
// It returns the stored bytes. An existing entry under the same key is overwritten.
func (c *ResponseCache) Put(key string, value any, ttl time.Duration) ([]byte, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal cached value %s: %w", key, err)
	}
	if err := c.entries.SetWithExpire(key, payload, ttl); err != nil {
		return nil, fmt.Errorf("store cached value %s: %w", key, err)
	}
	logger.WithComponent("cache").Debugf("stored %s (%d bytes, ttl %v)", key, len(payload), ttl)
	return bytes.Clone(payload), nil
}

// Clear drops every entry regardless of expiry.
func (c *ResponseCache) Clear() {
	c.entries.Purge()
}

// Len returns the number of live entries.
func (c *ResponseCache) Len() int {
	return c.entries.Len(true)
}

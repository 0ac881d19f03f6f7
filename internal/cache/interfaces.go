package cache

import "time"

// Reader is the read side of the response cache.
type Reader interface {
	Get(key string) ([]byte, bool)
}

// Clearer is the cache API needed by the sweep scheduler.
type Clearer interface {
	Clear()
}

// ResponseStore is the cache contract the dashboard service depends on.
type ResponseStore interface {
	Reader
	Clearer
	Put(key string, value any, ttl time.Duration) ([]byte, error)
	Len() int
	TTL() time.Duration
}

// internal/adapter/cache/ttl.go

package cache

import (
	"sync"
	"time"
)

// Store is the cache port source adapters depend on.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

type entry struct {
	data      any
	createdAt time.Time
	ttl       time.Duration
}

// TTLCache is an in-process advisory cache with per-entry lazy expiry.
// There is no size bound and no background sweep: an entry is removed the
// moment a read observes it past its TTL, or when a newer entry
// overwrites it. Losing every entry on restart is harmless since the
// adapters regenerate data on a miss.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache. One instance is built at process start and
// handed to whichever component needs it.
func New() *TTLCache {
	return &TTLCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value stored under key, or false when the key is absent
// or its entry has outlived its TTL. Expired entries are deleted on
// observation.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.createdAt) > e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set stores value under key, unconditionally replacing any existing
// entry and restarting its clock.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{data: value, createdAt: c.now(), ttl: ttl}
}

// Len reports the number of entries currently held, expired or not.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

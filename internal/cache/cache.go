// Package cache holds the process-local cache and rate limiter services shared by
// request handlers. Both take an injected clock so expiry can be tested without sleeping.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds a cache created without an explicit size.
const DefaultSize = 1024

// Clock returns the current time.
type Clock func() time.Time

// Options configures a Cache.
type Options struct {
	// Size is the maximum number of entries before the least recently used is evicted.
	Size int
	// TTL is how long an entry stays valid. Zero keeps entries until evicted.
	TTL time.Duration
	// Clock defaults to time.Now.
	Clock Clock
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Expirations int64
	Keys        int
}

// HitRate is hits over lookups, 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a size-bounded LRU with optional per-entry expiry. Safe for concurrent use.
type Cache[V any] struct {
	items *lru.Cache[string, entry[V]]
	ttl   time.Duration
	now   Clock
	// writeMu orders Set against the removal of an expired entry.
	writeMu sync.Mutex

	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	expirations atomic.Int64
}

// New creates a cache from opts, filling zero values with defaults.
func New[V any](opts Options) (*Cache[V], error) {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	items, err := lru.New[string, entry[V]](opts.Size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{items: items, ttl: opts.TTL, now: opts.Clock}, nil
}

// Get returns the value for key. Expired entries are removed and reported as misses.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	e, ok := c.items.Get(key)
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	if c.ttl > 0 && !c.now().Before(e.expiresAt) {
		c.removeExpired(key, e.expiresAt)
		c.expirations.Add(1)
		c.misses.Add(1)
		return zero, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key, replacing any previous value and restarting its TTL.
func (c *Cache[V]) Set(key string, value V) {
	e := entry[V]{value: value}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.writeMu.Lock()
	evicted := c.items.Add(key, e)
	c.writeMu.Unlock()
	if evicted {
		c.evictions.Add(1)
	}
}

// removeExpired drops key only if it still holds the entry that expired at
// expiresAt, so a value stored concurrently by Set survives.
func (c *Cache[V]) removeExpired(key string, expiresAt time.Time) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if cur, ok := c.items.Peek(key); ok && cur.expiresAt.Equal(expiresAt) {
		c.items.Remove(key)
	}
}

// Delete removes key and reports whether it was present.
func (c *Cache[V]) Delete(key string) bool {
	return c.items.Remove(key)
}

// Purge drops every entry. Counters are kept.
func (c *Cache[V]) Purge() {
	c.items.Purge()
}

// Len counts stored entries, including expired ones not yet looked up.
func (c *Cache[V]) Len() int {
	return c.items.Len()
}

// Stats returns a snapshot of the counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
		Keys:        c.items.Len(),
	}
}

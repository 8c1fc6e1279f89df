package cache

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// cacheEntry represents a cached value with expiration.
// A zero expiresAt means the entry never expires.
type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// isExpired reports whether the entry is due at now. An entry expiring
// exactly at now is already gone.
func (e *cacheEntry) isExpired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is an in-memory implementation of Cache.
// Expired entries are evicted lazily on Get; a periodic sweep is optional.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64

	sweepInterval time.Duration
	stopSweep     chan struct{}
	stopOnce      sync.Once
}

// NewMemoryCache creates a new in-memory cache. A positive sweepInterval
// starts a goroutine removing expired entries; zero disables it.
func NewMemoryCache(sweepInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries:       make(map[string]*cacheEntry),
		now:           time.Now,
		sweepInterval: sweepInterval,
		stopSweep:     make(chan struct{}),
	}

	if sweepInterval > 0 {
		go c.sweep()
		log.Printf("[MemoryCache] Sweeper started - interval:%v", sweepInterval)
	}

	return c
}

// Get retrieves a value by key, deleting it first if it has expired.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}
	if entry.isExpired(c.now()) {
		delete(c.entries, key)
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}

	c.hits.Add(1)
	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, nil
}

// Set stores a value with the given TTL, replacing any previous entry.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	entry := &cacheEntry{value: valueCopy}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry

	return nil
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports entry count and hit/miss counters.
func (c *MemoryCache) Stats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{
		"backend":        "memory",
		"entries":        c.Len(),
		"hits":           c.hits.Load(),
		"misses":         c.misses.Load(),
		"sweep_interval": c.sweepInterval.String(),
	}, nil
}

// Close stops the background sweeper.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stopSweep)
	})
	return nil
}

// sweep periodically removes expired entries.
func (c *MemoryCache) sweep() {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.removeExpired(); n > 0 {
				log.Printf("[MemoryCache] Swept %d expired entries", n)
			}
		case <-c.stopSweep:
			return
		}
	}
}

// removeExpired removes all expired entries and returns how many were dropped.
func (c *MemoryCache) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if entry.isExpired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

var _ Cache = (*MemoryCache)(nil)

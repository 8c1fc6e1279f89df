package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching operations.
// This abstraction allows swapping between the in-process memory cache
// and Redis without changing the fetch logic.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A TTL <= 0 never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Stats reports backend counters for the admin endpoint.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Close releases background workers and connections.
	Close() error
}

// Common cache errors
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)

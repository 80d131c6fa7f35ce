// Package cache provides a small byte cache for memoising AI answers.
package cache

import (
	"context"
	"time"
)

// CacheService defines the cache service interface.
type CacheService interface {
	// Get retrieves a value from cache.
	// Returns: value, whether it exists
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value in cache.
	// ttl: expiration time; non-positive selects the service default
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

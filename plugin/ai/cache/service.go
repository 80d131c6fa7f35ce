package cache

import (
	"context"
	"time"

	"github.com/maypok86/otter/v2"
)

// ServiceConfig configures the cache service.
type ServiceConfig struct {
	Capacity   int           // Maximum number of entries (default: 1000)
	DefaultTTL time.Duration // TTL for entries stored without one, and the upper bound for all (default: 5 minutes)
}

// DefaultServiceConfig returns default cache service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Capacity:   1000,
		DefaultTTL: 5 * time.Minute,
	}
}

// entry carries its own lifetime so otter can expire each key separately.
type entry struct {
	data []byte
	ttl  time.Duration
}

// Service implements CacheService on top of otter.
type Service struct {
	cache      *otter.Cache[string, entry]
	defaultTTL time.Duration
}

// NewService creates a new cache service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}

	return &Service{
		cache: otter.Must(&otter.Options[string, entry]{
			MaximumSize: cfg.Capacity,
			ExpiryCalculator: otter.ExpiryWritingFunc(func(e otter.Entry[string, entry]) time.Duration {
				return e.Value.ttl
			}),
		}),
		defaultTTL: cfg.DefaultTTL,
	}
}

// Get retrieves a value from cache.
func (s *Service) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := s.cache.GetIfPresent(key)
	if !ok {
		return nil, false
	}
	return e.data, true
}

// Set stores a value in cache.
func (s *Service) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > s.defaultTTL {
		ttl = s.defaultTTL
	}
	s.cache.Set(key, entry{data: value, ttl: ttl})
	return nil
}

// Ensure Service implements CacheService
var _ CacheService = (*Service)(nil)

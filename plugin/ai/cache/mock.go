package cache

import (
	"context"
	"sync"
	"time"
)

// MockCacheService is a map-backed CacheService for testing. It counts
// hits and stores so callers can assert on cache traffic.
type MockCacheService struct {
	mu     sync.RWMutex
	store  map[string]mockEntry
	hits   int
	stores int
}

type mockEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMockCacheService creates a new MockCacheService.
func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		store: make(map[string]mockEntry),
	}
}

// Get retrieves a value from cache.
func (m *MockCacheService) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.store[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return nil, false
	}
	m.hits++
	return e.value, true
}

// Set stores a value in cache. A non-positive ttl never expires.
func (m *MockCacheService) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	m.store[key] = mockEntry{value: value, expiresAt: expiresAt}
	m.stores++
	return nil
}

// Hits returns how many Get calls found a live entry.
func (m *MockCacheService) Hits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits
}

// Stores returns how many Set calls were made.
func (m *MockCacheService) Stores() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stores
}

// Ensure MockCacheService implements CacheService
var _ CacheService = (*MockCacheService)(nil)

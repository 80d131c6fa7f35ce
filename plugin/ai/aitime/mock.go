package aitime

import (
	"context"
	"sync"
	"time"
)

// MockCapability is a scripted Capability for testing.
type MockCapability struct {
	// Result is returned on success.
	Result *ExtractedDateTime
	// Err is returned instead of Result when set.
	Err error
	// Delay simulates a slow provider; it honours cancellation.
	Delay time.Duration

	mu           sync.Mutex
	instructions []string
}

// ExtractDateTime implements Capability.
func (m *MockCapability) ExtractDateTime(ctx context.Context, instruction string, _ time.Time) (*ExtractedDateTime, error) {
	m.mu.Lock()
	m.instructions = append(m.instructions, instruction)
	m.mu.Unlock()

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return nil, nil
	}
	out := *m.Result
	return &out, nil
}

// Calls returns how many extractions were requested.
func (m *MockCapability) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instructions)
}

// Instructions returns every instruction received so far.
func (m *MockCapability) Instructions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.instructions...)
}

var _ Capability = (*MockCapability)(nil)

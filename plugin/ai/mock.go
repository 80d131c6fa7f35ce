package ai

import (
	"context"
	"sync"
)

// MockLLMService is a scripted LLMService for testing.
type MockLLMService struct {
	mu       sync.Mutex
	Response string
	Err      error
	calls    [][]Message
}

// NewMockLLMService creates a mock answering every call with response.
func NewMockLLMService(response string) *MockLLMService {
	return &MockLLMService{Response: response}
}

// ChatJSON records the call and returns the scripted answer.
func (m *MockLLMService) ChatJSON(ctx context.Context, messages []Message, _ *JSONSchema) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, messages)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.Response, m.Err
}

// Calls returns the messages of every call so far.
func (m *MockLLMService) Calls() [][]Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]Message(nil), m.calls...)
}

var _ LLMService = (*MockLLMService)(nil)

// ABOUTME: Mock completer for tests, returning canned responses without network calls
// ABOUTME: Records prompts so tests can assert on what was sent
package llm

import (
	"context"
	"sync"
)

// MockCompleter implements Completer for tests. Responses are returned in
// order; once exhausted, the last response repeats. A non-nil Err is returned
// from every call instead.
type MockCompleter struct {
	mu        sync.Mutex
	Responses []string
	Err       error

	calls int
	// SystemPrompts and UserPrompts record each call in order.
	SystemPrompts []string
	UserPrompts   []string
}

// NewMockCompleter creates a mock that returns the given responses in order.
func NewMockCompleter(responses ...string) *MockCompleter {
	return &MockCompleter{Responses: responses}
}

// Complete returns the next canned response.
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.next(systemPrompt, userPrompt)
}

// CompleteJSON returns the next canned response.
func (m *MockCompleter) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.next(systemPrompt, userPrompt)
}

// Calls returns how many completions were requested.
func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockCompleter) next(systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.SystemPrompts = append(m.SystemPrompts, systemPrompt)
	m.UserPrompts = append(m.UserPrompts, userPrompt)

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	idx := m.calls - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}

package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/sgaunet/auto-close/pkg/closer"
)

// MethodCall represents a tracked method call with its parameters.
type MethodCall struct {
	Method string
	Args   map[string]any
}

// Capabilities is a mock implementation of closer.Capabilities with call tracking.
type Capabilities struct {
	mu    sync.Mutex
	calls []MethodCall

	// Configurable responses
	GetDetailsResponse  *closer.Details
	DetailsByNumber     map[int]*closer.Details
	GetDetailsError     error
	GetDetailsPanic     any
	AddCommentResponse  *closer.Comment
	AddCommentError     error
	CloseEntityResponse *closer.Closed
	CloseEntityError    error
}

// NewCapabilities creates a new mock capability set.
func NewCapabilities() *Capabilities {
	return &Capabilities{
		calls:           make([]MethodCall, 0),
		DetailsByNumber: make(map[int]*closer.Details),
	}
}

// GetDetails implements closer.Capabilities.
func (m *Capabilities) GetDetails(_ context.Context, owner, repo string, number int) (*closer.Details, error) {
	m.trackCall("GetDetails", map[string]any{
		"owner":  owner,
		"repo":   repo,
		"number": number,
	})
	if m.GetDetailsPanic != nil {
		panic(m.GetDetailsPanic)
	}
	if m.GetDetailsError != nil {
		return nil, m.GetDetailsError
	}
	if d, ok := m.DetailsByNumber[number]; ok {
		return d, nil
	}
	return m.GetDetailsResponse, nil
}

// AddComment implements closer.Capabilities.
func (m *Capabilities) AddComment(_ context.Context, owner, repo string, number int, body string) (*closer.Comment, error) {
	m.trackCall("AddComment", map[string]any{
		"owner":  owner,
		"repo":   repo,
		"number": number,
		"body":   body,
	})
	if m.AddCommentError != nil {
		return nil, m.AddCommentError
	}
	if m.AddCommentResponse != nil {
		return m.AddCommentResponse, nil
	}
	return &closer.Comment{ID: "1", URL: fmt.Sprintf("https://github.com/%s/%s/issues/%d#issuecomment-1", owner, repo, number)}, nil
}

// CloseEntity implements closer.Capabilities.
func (m *Capabilities) CloseEntity(_ context.Context, owner, repo string, number int) (*closer.Closed, error) {
	m.trackCall("CloseEntity", map[string]any{
		"owner":  owner,
		"repo":   repo,
		"number": number,
	})
	if m.CloseEntityError != nil {
		return nil, m.CloseEntityError
	}
	if m.CloseEntityResponse != nil {
		return m.CloseEntityResponse, nil
	}
	return &closer.Closed{
		Number: number,
		URL:    fmt.Sprintf("https://github.com/%s/%s/issues/%d", owner, repo, number),
		Title:  fmt.Sprintf("Entity %d", number),
	}, nil
}

// GetCalls returns all tracked method calls.
func (m *Capabilities) GetCalls() []MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MethodCall{}, m.calls...)
}

// GetCallCount returns the number of times a method was called.
func (m *Capabilities) GetCallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

// GetLastCall returns the last call to the specified method, or nil if not called.
func (m *Capabilities) GetLastCall(method string) *MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Method == method {
			return &m.calls[i]
		}
	}
	return nil
}

// Methods returns the names of the tracked calls in order.
func (m *Capabilities) Methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.calls))
	for _, call := range m.calls {
		names = append(names, call.Method)
	}
	return names
}

// Reset clears all tracked calls.
func (m *Capabilities) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make([]MethodCall, 0)
}

// trackCall records a method call with its arguments.
func (m *Capabilities) trackCall(method string, args map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MethodCall{
		Method: method,
		Args:   args,
	})
}

// Ensure Capabilities implements closer.Capabilities interface.
var _ closer.Capabilities = (*Capabilities)(nil)

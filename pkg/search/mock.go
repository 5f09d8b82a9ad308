package search

import (
	"context"
	"sync"
	"time"
)

// Mock implements Provider for testing.
type Mock struct {
	// SearchFunc is called when Search is invoked.
	// If nil, returns an empty result.
	SearchFunc func(ctx context.Context, query string) (string, error)

	// HealthFunc is called when Health is invoked.
	HealthFunc func(ctx context.Context) error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method string
	Query  string
	Time   time.Time
}

// NewMock creates a mock that returns the given snippet for every query.
func NewMock(snippet string) *Mock {
	return &Mock{
		SearchFunc: func(ctx context.Context, query string) (string, error) {
			return snippet, nil
		},
	}
}

// WithError creates a mock whose Search always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		SearchFunc: func(ctx context.Context, query string) (string, error) {
			return "", err
		},
		HealthFunc: func(ctx context.Context) error {
			return err
		},
	}
}

// Search calls SearchFunc and records the call.
func (m *Mock) Search(ctx context.Context, query string) (string, error) {
	m.record("Search", query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return "", nil
}

// Health calls HealthFunc and records the call.
func (m *Mock) Health(ctx context.Context) error {
	m.record("Health", "")
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close records the call and returns nil.
func (m *Mock) Close() error {
	m.record("Close", "")
	return nil
}

// Calls returns all recorded calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns how many times method was invoked.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *Mock) record(method, query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Query: query, Time: time.Now()})
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)

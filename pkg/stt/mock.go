package stt

import (
	"context"
	"sync"
)

// Mock implements Recognizer for testing.
type Mock struct {
	// RecognizeFunc is called when Recognize is invoked. If nil, queued
	// utterances are returned in order, then ErrNoSpeech.
	RecognizeFunc func(ctx context.Context, audio []byte) (*Result, error)

	mu        sync.Mutex
	queue     []string
	callCount int
}

// NewMock creates a mock that yields the given utterances in order.
func NewMock(utterances ...string) *Mock {
	return &Mock{queue: utterances}
}

// Recognize returns the next queued utterance.
func (m *Mock) Recognize(ctx context.Context, audio []byte) (*Result, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, audio)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, ErrNoSpeech
	}
	text := m.queue[0]
	m.queue = m.queue[1:]
	return &Result{Text: text, LatencyMs: 1}, nil
}

// Close returns nil.
func (m *Mock) Close() error {
	return nil
}

// CallCount returns how many times Recognize was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Verify Mock implements Recognizer at compile time.
var _ Recognizer = (*Mock)(nil)

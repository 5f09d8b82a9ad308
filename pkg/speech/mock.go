package speech

import (
	"context"
	"sync"
	"time"

	"github.com/ucroboticslab/go-pepper/pkg/emotion"
)

// Mock implements Speaker for testing.
type Mock struct {
	// SpeakFunc is called when Speak is invoked. If nil, Speak succeeds.
	SpeakFunc func(ctx context.Context, text string, tag emotion.Tag) error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a spoken sentence for verification.
type MockCall struct {
	Text    string
	Emotion emotion.Tag
	Time    time.Time
}

// NewMock creates a mock speaker that accepts everything.
func NewMock() *Mock {
	return &Mock{}
}

// WithSpeakError creates a mock whose Speak always fails with err.
func WithSpeakError(err error) *Mock {
	return &Mock{
		SpeakFunc: func(ctx context.Context, text string, tag emotion.Tag) error {
			return err
		},
	}
}

// Speak records the sentence and calls SpeakFunc.
func (m *Mock) Speak(ctx context.Context, text string, tag emotion.Tag) error {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, Emotion: tag, Time: time.Now()})
	m.mu.Unlock()
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text, tag)
	}
	return nil
}

// Close records nothing and returns nil.
func (m *Mock) Close() error {
	return nil
}

// Spoken returns all recorded sentences in order.
func (m *Mock) Spoken() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// Texts returns just the spoken text, in order.
func (m *Mock) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Text
	}
	return out
}

// Reset clears recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify Mock implements Speaker at compile time.
var _ Speaker = (*Mock)(nil)

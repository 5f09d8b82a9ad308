package speech

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ucroboticslab/go-pepper/internal/httpc"
	"github.com/ucroboticslab/go-pepper/pkg/emotion"
)

const backendPepper = "pepper"

// Pepper speaks through the robot's onboard TTS over its HTTP bridge. The
// bridge exposes GET /say?text= and blocks until the utterance finishes, so
// Speak returning means the sentence has been spoken. The onboard voice has
// no emotion knobs; the tag is recorded in the log only.
type Pepper struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// PepperOption configures a Pepper speaker.
type PepperOption func(*Pepper)

// WithPepperClient overrides the HTTP client.
func WithPepperClient(c *http.Client) PepperOption {
	return func(p *Pepper) { p.client = c }
}

// WithPepperLogger sets the structured logger.
func WithPepperLogger(l *slog.Logger) PepperOption {
	return func(p *Pepper) { p.logger = l.With("component", "speech.pepper") }
}

// NewPepper creates a speaker for the robot bridge at baseURL, e.g.
// "http://10.0.0.244:5000".
func NewPepper(baseURL string, opts ...PepperOption) *Pepper {
	p := &Pepper{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpc.Client,
		logger:  slog.Default().With("component", "speech.pepper"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Speak sends one sentence to the robot and waits for it to be spoken.
func (p *Pepper) Speak(ctx context.Context, text string, tag emotion.Tag) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	u := p.baseURL + "/say?" + url.Values{"text": {text}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return WrapError(backendPepper, err)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return WrapError(backendPepper, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Message: string(body), Backend: backendPepper}
	}

	p.logger.Debug("spoke",
		"chars", len(text),
		"emotion", string(tag),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close releases idle connections.
func (p *Pepper) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Verify Pepper implements Speaker at compile time.
var _ Speaker = (*Pepper)(nil)

package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ucroboticslab/go-pepper/internal/httpc"
)

// Telemetry mirrors tagged sentences to an external display server. Posts
// are fire and forget: failures are logged, never propagated, and a
// disabled sink drops everything silently.
type Telemetry struct {
	endpoint string
	enabled  bool
	client   *http.Client
	logger   *slog.Logger
}

// TelemetryOption configures a Telemetry sink.
type TelemetryOption func(*Telemetry)

// WithTelemetryClient overrides the HTTP client.
func WithTelemetryClient(c *http.Client) TelemetryOption {
	return func(t *Telemetry) { t.client = c }
}

// WithTelemetryLogger sets the structured logger.
func WithTelemetryLogger(l *slog.Logger) TelemetryOption {
	return func(t *Telemetry) { t.logger = l.With("component", "emotion.telemetry") }
}

// NewTelemetry creates a sink posting to endpoint. A disabled sink is valid
// and ignores every Post call.
func NewTelemetry(endpoint string, enabled bool, opts ...TelemetryOption) *Telemetry {
	t := &Telemetry{
		endpoint: endpoint,
		enabled:  enabled,
		client:   httpc.Client,
		logger:   slog.Default().With("component", "emotion.telemetry"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type telemetryPayload struct {
	Sentence string `json:"sentence"`
	Emotion  string `json:"emotion"`
}

// Post sends a sentence and its tag to the display server.
func (t *Telemetry) Post(ctx context.Context, sentence string, tag Tag) {
	if !t.enabled {
		return
	}

	body, err := json.Marshal(telemetryPayload{Sentence: sentence, Emotion: string(tag)})
	if err != nil {
		t.logger.Warn("telemetry marshal failed", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		t.logger.Warn("telemetry request failed", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Warn("telemetry post failed", "endpoint", t.endpoint, "error", err)
		return
	}
	resp.Body.Close()
	t.logger.Debug("telemetry posted", "status", resp.StatusCode, "emotion", string(tag))
}

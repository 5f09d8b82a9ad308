package stt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultVoskURL is the standard vosk-server websocket address.
const DefaultVoskURL = "ws://localhost:2700"

// Vosk recognizes speech through a vosk-server websocket. Each Recognize
// call opens a fresh connection: the server treats one connection as one
// recognition session, finalized by an EOF marker.
type Vosk struct {
	url    string
	dialer *websocket.Dialer
	logger *slog.Logger
}

// VoskOption configures a Vosk recognizer.
type VoskOption func(*Vosk)

// WithDialer overrides the websocket dialer.
func WithDialer(d *websocket.Dialer) VoskOption {
	return func(v *Vosk) { v.dialer = d }
}

// WithVoskLogger sets the structured logger.
func WithVoskLogger(l *slog.Logger) VoskOption {
	return func(v *Vosk) { v.logger = l.With("component", "stt.vosk") }
}

// NewVosk creates a recognizer for the server at url, e.g.
// "ws://localhost:2700". An empty url selects the default.
func NewVosk(url string, opts ...VoskOption) *Vosk {
	if url == "" {
		url = DefaultVoskURL
	}
	v := &Vosk{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
		},
		logger: slog.Default().With("component", "stt.vosk"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type voskResult struct {
	Text    string `json:"text"`
	Partial string `json:"partial"`
}

// Recognize streams audio to the server and returns the final transcript.
func (v *Vosk) Recognize(ctx context.Context, audio []byte) (*Result, error) {
	start := time.Now()

	conn, _, err := v.dialer.DialContext(ctx, v.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrUnavailable, v.url, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	config := fmt.Sprintf(`{"config": {"sample_rate": %d}}`, SampleRate)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(config)); err != nil {
		return nil, fmt.Errorf("stt: send config: %w", err)
	}

	// Stream the audio in chunks. The server replies with a partial result
	// per chunk; those are drained and discarded.
	for off := 0; off < len(audio); off += ChunkBytes {
		end := off + ChunkBytes
		if end > len(audio) {
			end = len(audio)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, audio[off:end]); err != nil {
			return nil, fmt.Errorf("stt: send audio: %w", err)
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil, fmt.Errorf("stt: read partial: %w", err)
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"eof" : 1}`)); err != nil {
		return nil, fmt.Errorf("stt: send eof: %w", err)
	}

	_, final, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("stt: read final: %w", err)
	}

	var res voskResult
	if err := json.Unmarshal(final, &res); err != nil {
		return nil, fmt.Errorf("stt: parse result: %w", err)
	}

	text := strings.TrimSpace(res.Text)
	latency := time.Since(start).Milliseconds()
	if text == "" {
		return nil, ErrNoSpeech
	}

	v.logger.Debug("recognized",
		"chars", len(text),
		"audio_bytes", len(audio),
		"latency_ms", latency,
	)
	return &Result{Text: text, LatencyMs: latency}, nil
}

// Close is a no-op; connections are per call.
func (v *Vosk) Close() error {
	return nil
}

// Verify Vosk implements Recognizer at compile time.
var _ Recognizer = (*Vosk)(nil)

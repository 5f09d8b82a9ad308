package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ucroboticslab/go-pepper/pkg/emotion"
)

const (
	backendElevenLabs   = "elevenlabs"
	elevenLabsBaseURL   = "https://api.elevenlabs.io/v1"
	elevenLabsModel     = "eleven_multilingual_v2"
	elevenLabsFormat    = "mp3_44100_128"
	defaultVoiceID      = "21m00Tcm4TlvDq8ikWAM" // Rachel
	defaultSynthTimeout = 30 * time.Second
)

// VoiceSettings are the synthesis knobs ElevenLabs exposes.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// emotionSettings maps each tag to its voice character. Lower stability
// makes the voice more expressive.
var emotionSettings = map[emotion.Tag]VoiceSettings{
	emotion.Happy:   {Stability: 0.3, SimilarityBoost: 0.8},
	emotion.Sad:     {Stability: 0.7, SimilarityBoost: 0.5},
	emotion.Angry:   {Stability: 0.2, SimilarityBoost: 0.7},
	emotion.Neutral: {Stability: 0.5, SimilarityBoost: 0.75},
}

// SettingsFor returns the voice settings for a tag, neutral when unknown.
func SettingsFor(tag emotion.Tag) VoiceSettings {
	if s, ok := emotionSettings[tag]; ok {
		return s
	}
	return emotionSettings[emotion.Neutral]
}

// ElevenLabs synthesizes speech through the ElevenLabs API and hands the
// audio to a Player. The emotion tag selects voice settings per request.
type ElevenLabs struct {
	apiKey  string
	voiceID string
	modelID string
	baseURL string
	client  *http.Client
	player  Player
	logger  *slog.Logger

	maxRetries int
	retryDelay time.Duration
}

// ElevenLabsOption configures an ElevenLabs speaker.
type ElevenLabsOption func(*ElevenLabs)

// WithVoice overrides the voice ID.
func WithVoice(voiceID string) ElevenLabsOption {
	return func(e *ElevenLabs) { e.voiceID = voiceID }
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) ElevenLabsOption {
	return func(e *ElevenLabs) { e.baseURL = strings.TrimRight(u, "/") }
}

// WithPlayer overrides the playback backend.
func WithPlayer(p Player) ElevenLabsOption {
	return func(e *ElevenLabs) { e.player = p }
}

// WithElevenLabsClient overrides the HTTP client.
func WithElevenLabsClient(c *http.Client) ElevenLabsOption {
	return func(e *ElevenLabs) { e.client = c }
}

// WithElevenLabsLogger sets the structured logger.
func WithElevenLabsLogger(l *slog.Logger) ElevenLabsOption {
	return func(e *ElevenLabs) { e.logger = l.With("component", "speech.elevenlabs") }
}

// NewElevenLabs creates an ElevenLabs speaker.
func NewElevenLabs(apiKey string, opts ...ElevenLabsOption) (*ElevenLabs, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	e := &ElevenLabs{
		apiKey:     apiKey,
		voiceID:    defaultVoiceID,
		modelID:    elevenLabsModel,
		baseURL:    elevenLabsBaseURL,
		client:     &http.Client{Timeout: defaultSynthTimeout},
		player:     NewCmdPlayer(),
		logger:     slog.Default().With("component", "speech.elevenlabs"),
		maxRetries: 3,
		retryDelay: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Speak synthesizes text with the tag's voice settings and plays it.
func (e *ElevenLabs) Speak(ctx context.Context, text string, tag emotion.Tag) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	start := time.Now()
	audio, err := e.synthesize(ctx, text, tag)
	if err != nil {
		return err
	}

	e.logger.Debug("synthesized",
		"chars", len(text),
		"bytes", len(audio),
		"emotion", string(tag),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return e.player.Play(ctx, audio)
}

func (e *ElevenLabs) synthesize(ctx context.Context, text string, tag emotion.Tag) ([]byte, error) {
	payload := map[string]any{
		"text":           text,
		"model_id":       e.modelID,
		"output_format":  elevenLabsFormat,
		"voice_settings": SettingsFor(tag),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(backendElevenLabs, fmt.Errorf("marshal payload: %w", err))
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", e.baseURL, e.voiceID)
	resp, err := e.doWithRetry(ctx, url, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, e.parseError(resp)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(backendElevenLabs, fmt.Errorf("read response: %w", err))
	}
	return audio, nil
}

// doWithRetry retries rate limits and server errors with linear backoff.
func (e *ElevenLabs) doWithRetry(ctx context.Context, url string, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.retryDelay * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, WrapError(backendElevenLabs, err)
		}
		req.Header.Set("xi-api-key", e.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "audio/mpeg")

		resp, err := e.client.Do(req)
		if err != nil {
			lastErr = WrapError(backendElevenLabs, err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = e.parseError(resp)
			resp.Body.Close()
			e.logger.Warn("retrying synthesis", "attempt", attempt+1, "status", resp.StatusCode)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

func (e *ElevenLabs) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var errResp struct {
		Detail struct {
			Message string `json:"message"`
		} `json:"detail"`
	}
	message := string(body)
	if json.Unmarshal(body, &errResp) == nil && errResp.Detail.Message != "" {
		message = errResp.Detail.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message, Backend: backendElevenLabs}
}

// Health checks API connectivity and key validity.
func (e *ElevenLabs) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/user", nil)
	if err != nil {
		return WrapError(backendElevenLabs, err)
	}
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return WrapError(backendElevenLabs, fmt.Errorf("health check: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return e.parseError(resp)
	}
	return nil
}

// Close releases resources.
func (e *ElevenLabs) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// Verify ElevenLabs implements Speaker at compile time.
var _ Speaker = (*ElevenLabs)(nil)

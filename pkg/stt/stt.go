// Package stt is the speech-capture boundary.
//
// A Recognizer turns captured audio into text. The production backend is a
// Vosk websocket server; tests and keyboard-driven development use the mock.
package stt

import (
	"context"
	"errors"
)

// Captured audio format. The Vosk server expects PCM16 mono.
const (
	SampleRate = 16000
	Channels   = 1

	// ChunkBytes is the transfer unit for streaming audio to the server,
	// half a second of PCM16 at 16 kHz.
	ChunkBytes = 16000
)

// Sentinel errors for speech recognition.
var (
	// ErrUnavailable indicates the recognition backend could not be reached.
	ErrUnavailable = errors.New("stt: backend unavailable")

	// ErrNoSpeech indicates the audio contained no recognizable speech.
	ErrNoSpeech = errors.New("stt: no speech detected")
)

// Result is one recognized utterance.
type Result struct {
	// Text is the recognized transcript, trimmed.
	Text string

	// LatencyMs is the recognition time, excluding audio capture.
	LatencyMs int64
}

// Recognizer converts one utterance of captured audio to text.
type Recognizer interface {
	// Recognize transcribes PCM16 mono audio at SampleRate.
	Recognize(ctx context.Context, audio []byte) (*Result, error)

	// Close releases backend resources.
	Close() error
}

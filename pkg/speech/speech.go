// Package speech is the spoken-output boundary.
//
// A Speaker turns one sentence into audible speech. Two backends exist: the
// robot's onboard TTS reached over its HTTP bridge, and ElevenLabs synthesis
// with emotion-keyed voice settings played back locally. Callers hold the
// Speaker interface so the backend can be swapped without touching the
// pipeline.
package speech

import (
	"context"
	"errors"
	"fmt"

	"github.com/ucroboticslab/go-pepper/pkg/emotion"
)

// Sentinel errors for speech synthesis and playback.
var (
	// ErrNoAPIKey indicates a missing API key for a hosted backend.
	ErrNoAPIKey = errors.New("speech: API key not provided")

	// ErrEmptyText indicates there was nothing to speak.
	ErrEmptyText = errors.New("speech: empty text")

	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("speech: backend unavailable")
)

// Speaker converts one sentence to audible speech. Speak blocks until
// playback has been handed off to the backend.
type Speaker interface {
	Speak(ctx context.Context, text string, tag emotion.Tag) error
	Close() error
}

// APIError represents an HTTP error from a speech backend.
type APIError struct {
	StatusCode int
	Message    string
	Backend    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("speech %s: HTTP %d: %s", e.Backend, e.StatusCode, e.Message)
}

// BackendError wraps an error with backend context.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("speech %s: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// WrapError wraps err with backend context, preserving nil.
func WrapError(backend string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Err: err}
}

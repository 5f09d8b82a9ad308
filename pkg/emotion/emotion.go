// Package emotion classifies the emotional tone of sentences about to be
// spoken. The tag drives both voice modulation at the speech boundary and
// body language through the movement dispatcher.
package emotion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ucroboticslab/go-pepper/pkg/inference"
)

// Tag is one of the four emotions the robot can express.
type Tag string

const (
	Happy   Tag = "happy"
	Sad     Tag = "sad"
	Angry   Tag = "angry"
	Neutral Tag = "neutral"
)

// Valid reports whether t is a recognized emotion tag.
func (t Tag) Valid() bool {
	switch t {
	case Happy, Sad, Angry, Neutral:
		return true
	}
	return false
}

// Parse normalizes raw text into a Tag, defaulting to Neutral.
func Parse(raw string) Tag {
	t := Tag(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return Neutral
	}
	return t
}

// Classifier tags sentences with an emotion through the completion
// capability. Classification is best effort: any failure yields Neutral so
// the speech pipeline never stalls on it.
type Classifier struct {
	llm    inference.Provider
	logger *slog.Logger
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithClassifierLogger sets the structured logger.
func WithClassifierLogger(l *slog.Logger) ClassifierOption {
	return func(c *Classifier) { c.logger = l.With("component", "emotion") }
}

// NewClassifier creates an emotion classifier.
func NewClassifier(llm inference.Provider, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		llm:    llm,
		logger: slog.Default().With("component", "emotion"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the emotion tag for a sentence.
func (c *Classifier) Classify(ctx context.Context, sentence string) Tag {
	prompt := "Classify the emotion of the following sentence as one of: happy, sad, angry, or neutral. " +
		"Respond with only the tag (happy, sad, angry, or neutral) and nothing else.\n" +
		"Sentence: " + sentence

	text, err := inference.Complete(ctx, c.llm, prompt)
	if err != nil {
		c.logger.Warn("emotion classification failed", "error", err)
		return Neutral
	}
	tag := Parse(text)
	c.logger.Debug("classified", "emotion", string(tag), "sentence_len", len(sentence))
	return tag
}

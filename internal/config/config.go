// Package config provides environment-derived configuration for go-pepper
// commands. A .env file is loaded if present; real environment variables win.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Default Pepper endpoints.
const (
	DefaultPepperPort = 5000
	DefaultLogLevel   = "info"
)

// Config holds process-level configuration for the voice agent.
type Config struct {
	// Robot endpoints
	PepperIP   string `env:"PEPPER_IP" envDefault:"10.0.0.244"`
	PepperPort int    `env:"PEPPER_PORT" envDefault:"5000"`

	// Capability credentials
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY"`
	SearchURL        string `env:"SEARCH_URL" envDefault:"http://localhost:8060/search"`
	VoskURL          string `env:"VOSK_URL" envDefault:"ws://localhost:2700"`

	// Emotion telemetry sink (fire-and-forget POST of {sentence, emotion})
	EmotionEndpoint  string `env:"EMOTION_POST_ENDPOINT" envDefault:"http://localhost:5000/emotion"`
	UseEmotionServer bool   `env:"USE_EMOTION_SERVER" envDefault:"false"`

	// Behavior toggles
	EmotionSpeech bool   `env:"EMOTION_SPEECH" envDefault:"true"`
	LocalizeUnits bool   `env:"LOCALIZE_UNITS" envDefault:"true"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment, loading .env first if one
// exists. Missing credentials are not an error here; each capability client
// validates its own requirements.
func Load() (*Config, error) {
	// Ignore the error: no .env file is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// PepperBaseURL returns the robot's HTTP API base URL.
func (c *Config) PepperBaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.PepperIP, c.PepperPort)
}

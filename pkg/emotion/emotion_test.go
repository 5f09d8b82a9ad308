package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ucroboticslab/go-pepper/pkg/inference"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Tag
	}{
		{"happy", Happy},
		{"  Sad \n", Sad},
		{"ANGRY", Angry},
		{"neutral", Neutral},
		{"ecstatic", Neutral},
		{"", Neutral},
	}
	for _, tt := range tests {
		if got := Parse(tt.raw); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Run("valid tag", func(t *testing.T) {
		mock := inference.WithResponse("happy")
		c := NewClassifier(mock)

		if got := c.Classify(context.Background(), "What a wonderful day!"); got != Happy {
			t.Errorf("Classify() = %q, want happy", got)
		}
		calls := mock.Calls()
		if len(calls) != 1 {
			t.Fatalf("Chat calls = %d, want 1", len(calls))
		}
		if !strings.Contains(calls[0].Prompt, "What a wonderful day!") {
			t.Error("prompt does not carry the sentence")
		}
	})

	t.Run("unexpected answer defaults to neutral", func(t *testing.T) {
		c := NewClassifier(inference.WithResponse("I think this sentence is quite happy overall."))
		if got := c.Classify(context.Background(), "hello"); got != Neutral {
			t.Errorf("Classify() = %q, want neutral", got)
		}
	})

	t.Run("provider failure defaults to neutral", func(t *testing.T) {
		c := NewClassifier(inference.WithError(errors.New("api down")))
		if got := c.Classify(context.Background(), "hello"); got != Neutral {
			t.Errorf("Classify() = %q, want neutral", got)
		}
	})
}

func TestTelemetryPost(t *testing.T) {
	var got telemetryPayload
	received := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = true
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	sink := NewTelemetry(srv.URL, true, WithTelemetryClient(srv.Client()))
	sink.Post(context.Background(), "Great to see you!", Happy)

	if !received {
		t.Fatal("no request reached the server")
	}
	if got.Sentence != "Great to see you!" || got.Emotion != "happy" {
		t.Errorf("payload = %+v", got)
	}
}

func TestTelemetryDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("disabled sink sent a request")
	}))
	defer srv.Close()

	sink := NewTelemetry(srv.URL, false, WithTelemetryClient(srv.Client()))
	sink.Post(context.Background(), "hello", Neutral)
}

func TestTelemetryUnreachable(t *testing.T) {
	// Post must swallow connection errors.
	sink := NewTelemetry("http://127.0.0.1:1/emotion", true)
	sink.Post(context.Background(), "hello", Neutral)
}

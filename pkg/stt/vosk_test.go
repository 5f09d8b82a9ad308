package stt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeVoskServer speaks just enough of the vosk-server protocol for the
// client: a config message, binary audio chunks answered with partials, and
// a final transcript after the EOF marker.
func fakeVoskServer(t *testing.T, transcript string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		// First message must be the config.
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cfg struct {
			Config struct {
				SampleRate int `json:"sample_rate"`
			} `json:"config"`
		}
		if err := json.Unmarshal(msg, &cfg); err != nil || cfg.Config.SampleRate != SampleRate {
			t.Errorf("bad config message: %s", msg)
		}

		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt == websocket.TextMessage && strings.Contains(string(msg), "eof") {
				conn.WriteJSON(map[string]string{"text": transcript})
				return
			}
			conn.WriteJSON(map[string]string{"partial": "..."})
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestVoskRecognize(t *testing.T) {
	srv := fakeVoskServer(t, " tell me a joke ")
	defer srv.Close()

	v := NewVosk(wsURL(srv))
	audio := make([]byte, ChunkBytes*2+500)

	got, err := v.Recognize(context.Background(), audio)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if got.Text != "tell me a joke" {
		t.Errorf("Text = %q, want trimmed transcript", got.Text)
	}
	if got.LatencyMs < 0 {
		t.Errorf("LatencyMs = %d", got.LatencyMs)
	}
}

func TestVoskNoSpeech(t *testing.T) {
	srv := fakeVoskServer(t, "")
	defer srv.Close()

	v := NewVosk(wsURL(srv))
	_, err := v.Recognize(context.Background(), make([]byte, 100))
	if !errors.Is(err, ErrNoSpeech) {
		t.Errorf("Recognize() error = %v, want ErrNoSpeech", err)
	}
}

func TestVoskUnreachable(t *testing.T) {
	v := NewVosk("ws://127.0.0.1:1", WithDialer(&websocket.Dialer{
		HandshakeTimeout: 100 * time.Millisecond,
	}))
	_, err := v.Recognize(context.Background(), make([]byte, 100))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Recognize() error = %v, want ErrUnavailable", err)
	}
}

func TestMockQueue(t *testing.T) {
	m := NewMock("hello", "goodbye")

	first, err := m.Recognize(context.Background(), nil)
	if err != nil || first.Text != "hello" {
		t.Fatalf("first = %v, %v", first, err)
	}
	second, _ := m.Recognize(context.Background(), nil)
	if second.Text != "goodbye" {
		t.Errorf("second = %q", second.Text)
	}
	if _, err := m.Recognize(context.Background(), nil); !errors.Is(err, ErrNoSpeech) {
		t.Errorf("drained mock error = %v, want ErrNoSpeech", err)
	}
	if m.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", m.CallCount())
	}
}

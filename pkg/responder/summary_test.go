package responder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ucroboticslab/go-pepper/pkg/inference"
)

// fixedSummary pins the clock so date and time injection is deterministic.
func fixedSummary(llm inference.Provider) *Summary {
	s := NewSummary(llm)
	s.now = func() time.Time {
		return time.Date(2025, time.June, 16, 14, 30, 0, 0, s.tz)
	}
	return s
}

func TestSummaryRewritesThroughCompletion(t *testing.T) {
	var captured *inference.ChatRequest
	mock := inference.NewMock()
	mock.ChatFunc = func(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error) {
		captured = req
		return &inference.ChatResponse{Message: inference.NewAssistantMessage("It's a mild 18°C in Canberra today.")}, nil
	}
	s := fixedSummary(mock)

	got := s.Summarize(context.Background(), "what is the weather in Canberra", "Canberra: mild, 64 degrees fahrenheit")

	if got != "It's a mild 18 degrees Celsius in Canberra today." {
		t.Errorf("Summarize() = %q, want the phoneticized rewrite", got)
	}
	if captured == nil {
		t.Fatal("completion capability was not called")
	}
	if !strings.Contains(captured.Messages[0].Content, "Canberra, Australia") {
		t.Error("system prompt lacks the Australian persona")
	}
	// Imperial units must be converted before the rewrite sees the text.
	if strings.Contains(captured.Messages[1].Content, "fahrenheit") {
		t.Errorf("user prompt still carries imperial units: %q", captured.Messages[1].Content)
	}
	if !strings.Contains(captured.Messages[1].Content, "17.8 degrees Celsius") {
		t.Errorf("user prompt not converted to metric: %q", captured.Messages[1].Content)
	}
}

func TestSummaryFallbackWithoutCompletion(t *testing.T) {
	s := fixedSummary(inference.WithError(errors.New("api down")))

	got := s.Summarize(context.Background(), "how tall is that", "He stands 6 feet 2 inches tall and weighs 180 pounds")

	if !strings.Contains(got, "188.0 centimetres") {
		t.Errorf("height not converted: %q", got)
	}
	if !strings.Contains(got, "81.6 kilograms") {
		t.Errorf("weight not converted: %q", got)
	}
}

func TestSummaryHolidayFilter(t *testing.T) {
	s := fixedSummary(inference.WithError(errors.New("force fallback path")))

	t.Run("thanksgiving", func(t *testing.T) {
		got := s.Summarize(context.Background(),
			"is thanksgiving a public holiday",
			"Thanksgiving is celebrated on the fourth Thursday of November in the United States.")
		want := "Thanksgiving is not celebrated in Australia. Today is Monday, June 16 in Canberra."
		if got != want {
			t.Errorf("Summarize() = %q, want %q", got, want)
		}
	})

	t.Run("independence day", func(t *testing.T) {
		got := s.Summarize(context.Background(),
			"when is the independence day holiday",
			"Independence Day falls on July 4th each year.")
		if !strings.Contains(got, "Australia Day is celebrated on January 26th") {
			t.Errorf("Summarize() = %q", got)
		}
	})

	t.Run("other american holiday", func(t *testing.T) {
		got := s.Summarize(context.Background(),
			"is there a public holiday soon",
			"Memorial Day is observed on the last Monday of May.")
		if !strings.Contains(got, "not celebrated in Australia") {
			t.Errorf("Summarize() = %q", got)
		}
	})

	t.Run("non-holiday query untouched", func(t *testing.T) {
		got := s.Summarize(context.Background(),
			"tell me about american traditions",
			"Thanksgiving dinner usually features turkey.")
		if strings.Contains(got, "not celebrated") {
			t.Errorf("filter applied to a non-holiday query: %q", got)
		}
	})
}

func TestSummaryLocalContext(t *testing.T) {
	s := fixedSummary(inference.WithError(errors.New("force fallback path")))

	t.Run("weather prefix", func(t *testing.T) {
		got := s.Summarize(context.Background(), "what is the weather", "Sunny with light winds.")
		if !strings.HasPrefix(got, "In Canberra, Australia:") {
			t.Errorf("Summarize() = %q, want Canberra prefix", got)
		}
	})

	t.Run("time gets local clock", func(t *testing.T) {
		got := s.Summarize(context.Background(), "what time is it", "Clocks vary by timezone.")
		if !strings.Contains(got, "Current time: 02:30 PM") {
			t.Errorf("Summarize() = %q, want the local clock", got)
		}
	})

	t.Run("no double prefix", func(t *testing.T) {
		got := s.Summarize(context.Background(), "what is the weather", "Canberra is sunny today.")
		if strings.HasPrefix(got, "In Canberra, Australia:") {
			t.Errorf("prefix added despite existing mention: %q", got)
		}
	})
}

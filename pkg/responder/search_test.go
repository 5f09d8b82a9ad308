package responder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ucroboticslab/go-pepper/pkg/inference"
	"github.com/ucroboticslab/go-pepper/pkg/search"
)

func TestSearchPrefersSearchLeg(t *testing.T) {
	sp := search.NewMock("The weather in Canberra is 61 degrees F and partly cloudy.")
	llm := inference.WithResponse("completion leg answer")
	r := NewSimpleSearch(sp, llm)

	got, err := r.Respond(context.Background(), "what is the weather in Canberra")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if !strings.Contains(got, "Canberra") {
		t.Errorf("Respond() = %q, want the location named", got)
	}
	if got == "completion leg answer" {
		t.Error("completion leg won despite a usable search result")
	}
}

func TestSearchFallsBackToCompletion(t *testing.T) {
	t.Run("search error", func(t *testing.T) {
		sp := search.WithError(errors.New("searx down"))
		llm := inference.WithResponse("Paris is the capital of France.")
		r := NewSimpleSearch(sp, llm)

		got, _ := r.Respond(context.Background(), "random trivia")
		if got != "Paris is the capital of France." {
			t.Errorf("Respond() = %q, want the completion answer", got)
		}
	})

	t.Run("empty search result", func(t *testing.T) {
		sp := search.NewMock("")
		llm := inference.WithResponse("fallback answer")
		r := NewSimpleSearch(sp, llm)

		got, _ := r.Respond(context.Background(), "random trivia")
		if got != "fallback answer" {
			t.Errorf("Respond() = %q, want the completion answer", got)
		}
	})
}

func TestSearchApologyWhenBothLegsFail(t *testing.T) {
	sp := search.WithError(errors.New("searx down"))
	llm := inference.WithError(errors.New("api down"))
	r := NewSimpleSearch(sp, llm)

	got, err := r.Respond(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Respond() error = %v, want nil with apology", err)
	}
	if got != ApologySearch {
		t.Errorf("Respond() = %q, want the search apology", got)
	}
}

func TestSearchTimeoutAbandonsLeg(t *testing.T) {
	sp := search.NewMock("never delivered")
	sp.SearchFunc = func(ctx context.Context, query string) (string, error) {
		time.Sleep(200 * time.Millisecond)
		return "too late", nil
	}
	llm := inference.WithResponse("quick completion")
	r := NewSimpleSearch(sp, llm, WithSearchTimeout(20*time.Millisecond))

	got, _ := r.Respond(context.Background(), "slow query")
	if got != "quick completion" {
		t.Errorf("Respond() = %q, want the completion answer after search timeout", got)
	}
}

func TestSearchCachesSuccessOnly(t *testing.T) {
	t.Run("success cached", func(t *testing.T) {
		sp := search.NewMock("The population of Australia is 26 million people as of 2024.")
		r := NewSimpleSearch(sp, inference.NewMock())

		first, _ := r.Respond(context.Background(), "population of Australia")
		second, _ := r.Respond(context.Background(), "population of Australia")

		if first != second {
			t.Errorf("cached response differs: %q vs %q", first, second)
		}
		if n := sp.CallCount("Search"); n != 1 {
			t.Errorf("Search calls = %d, want 1", n)
		}
	})

	t.Run("apology not cached", func(t *testing.T) {
		sp := search.WithError(errors.New("down"))
		llm := inference.WithError(errors.New("down"))
		r := NewSimpleSearch(sp, llm)

		r.Respond(context.Background(), "anything")
		if r.Cache().Len() != 0 {
			t.Errorf("cache holds %d entries after a failed cycle", r.Cache().Len())
		}
	})
}

func TestSearchTypedFormatting(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		snippet string
		want    string
	}{
		{
			name:    "weather",
			query:   "what is the weather in London",
			snippet: "Current conditions show 59 degrees fahrenheit with light rain across the city",
			want:    "It's about 59 degrees fahrenheit in London right now.",
		},
		{
			name:    "time",
			query:   "what time is it in Tokyo",
			snippet: "The local time is 3:42 PM on Friday",
			want:    "The current time in Tokyo is 3:42 PM.",
		},
		{
			name:    "population",
			query:   "population of India",
			snippet: "India has a population of about 1.4 billion people",
			want:    "The population of India is 1.4 billion.",
		},
		{
			name:    "declaration year",
			query:   "when was the declaration of independence signed",
			snippet: "The document was adopted by the Continental Congress in 1776 after much debate",
			want:    "The Declaration of Independence was signed in 1776.",
		},
		{
			name:    "weather miss",
			query:   "what is the weather in London",
			snippet: "no numbers here at all",
			want:    "Sorry, I couldn't find the current temperature for London.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := formatTyped(tt.query, tt.snippet)
			if !ok {
				t.Fatal("formatTyped() matched no query type")
			}
			if got != tt.want {
				t.Errorf("formatTyped() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchGenericFallbackFirstSentence(t *testing.T) {
	got, ok := formatTyped("tell me trivia about koalas", "irrelevant")
	if ok {
		t.Fatalf("formatTyped() matched unexpectedly: %q", got)
	}

	first := firstConcise("Koalas sleep up to 20 hours a day. They eat eucalyptus leaves.")
	if first != "Koalas sleep up to 20 hours a day." {
		t.Errorf("firstConcise() = %q", first)
	}

	// A fragment under three words is not worth speaking on its own.
	short := firstConcise("Yes. Much more follows here in a second sentence.")
	if short == "Yes." {
		t.Error("firstConcise() returned a fragment under three words")
	}
}

func TestCleanSnippet(t *testing.T) {
	got := cleanSnippet("It is 61°F [citation needed] (approx) in  Canberra today!")
	if strings.ContainsAny(got, "[]()") {
		t.Errorf("markup survived cleaning: %q", got)
	}
	if !strings.Contains(got, "61 degrees") {
		t.Errorf("degree sign not expanded: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

package intent_test

import (
	"testing"

	"github.com/ucroboticslab/go-pepper/pkg/intent"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		utterance string
		want      intent.Intent
	}{
		{"Where am I", intent.ExceptionLookup},
		{"  where are we  ", intent.ExceptionLookup},
		{"who is the VC of UC", intent.ExceptionLookup},
		{"Can you summarize the news for me", intent.SummaryRequest},
		{"give me a brief overview", intent.SummaryRequest},
		{"What's the weather in Canberra?", intent.FactualAdvanced},
		{"what is the population of France", intent.FactualAdvanced},
		{"latest news about robotics", intent.FactualAdvanced},
		{"Tell me a joke", intent.Conversational},
		{"hello there", intent.Conversational},
		{"make me laugh", intent.Conversational},
		{"fold my laundry please", intent.Default},
	}
	for _, tc := range cases {
		if got := intent.Classify(tc.utterance); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.utterance, got, tc.want)
		}
	}
}

func TestPrecedence(t *testing.T) {
	// Summary keywords win over factual keywords.
	if got := intent.Classify("summarize the latest weather data"); got != intent.SummaryRequest {
		t.Errorf("summary should outrank factual, got %v", got)
	}
	// Factual keywords win over conversational keywords.
	if got := intent.Classify("what is a good joke"); got != intent.FactualAdvanced {
		t.Errorf("factual should outrank conversational, got %v", got)
	}
	// Exception lookups require an exact phrase, not a substring.
	if got := intent.Classify("where am i supposed to go today"); got == intent.ExceptionLookup {
		t.Error("partial phrase must not trigger an exception lookup")
	}
}

func TestLookup(t *testing.T) {
	answer, ok := intent.Lookup("Where am I")
	if !ok {
		t.Fatal("expected a fixed answer")
	}
	if answer != "You are at the UC Collaborative Robotics Lab in Canberra, Australia." {
		t.Errorf("unexpected answer %q", answer)
	}

	if _, ok := intent.Lookup("what's the weather"); ok {
		t.Error("non-exception utterance should have no fixed answer")
	}
}

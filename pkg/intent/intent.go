// Package intent classifies an utterance into the response strategy bucket
// the orchestrator should consult.
//
// Classification is a pure function over fixed keyword sets with
// case-insensitive substring matching. Rule order is part of the contract:
// exception lookups beat summary keywords beat factual keywords beat
// conversational keywords, and anything unmatched is conversational.
package intent

import "strings"

// Intent is the classification bucket controlling responder selection.
type Intent int

const (
	// Conversational routes to the personality responder.
	Conversational Intent = iota
	// FactualSimple routes to the plain search responder. Produced only on
	// the fallback path, never directly from keywords.
	FactualSimple
	// FactualAdvanced routes to the advanced search responder.
	FactualAdvanced
	// SummaryRequest routes to the summary responder.
	SummaryRequest
	// ExceptionLookup bypasses all responders with a fixed answer.
	ExceptionLookup
	// Default is treated as Conversational.
	Default
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case Conversational:
		return "conversational"
	case FactualSimple:
		return "factual-simple"
	case FactualAdvanced:
		return "factual-advanced"
	case SummaryRequest:
		return "summary-request"
	case ExceptionLookup:
		return "exception-lookup"
	default:
		return "default"
	}
}

// Fixed answers for exact-phrase exception lookups. These bypass every other
// component: the robot is installed in one lab and some questions about it
// have exactly one correct answer.
var exceptions = map[string]string{
	"where am i":                       "You are at the UC Collaborative Robotics Lab in Canberra, Australia.",
	"where are we":                     "You are at the UC Collaborative Robotics Lab in Canberra, Australia.",
	"what is my location":              "You are at the UC Collaborative Robotics Lab in Canberra, Australia.",
	"where are you":                    "You are at the UC Collaborative Robotics Lab in Canberra, Australia.",
	"who is the vc of uc":              "The Vice Chancellor of the University of Canberra is Bill Shorten.",
	"who is the vice chancellor of uc": "The Vice Chancellor of the University of Canberra is Bill Shorten.",
	"who is the vice chancellor of university of canberra": "The Vice Chancellor of the University of Canberra is Bill Shorten.",
	"who is the vc of university of canberra":              "The Vice Chancellor of the University of Canberra is Bill Shorten.",
}

var summaryKeywords = []string{
	"summarize", "summary", "brief", "overview", "sum up",
}

var factualKeywords = []string{
	"detailed", "comprehensive", "in-depth", "research", "advanced", "extensive",
	"tell me more about", "what is", "who is", "when is", "where is", "why is", "how is",
	"current", "latest", "recent", "today", "now", "weather", "time", "population",
	"news", "information", "facts", "data", "statistics",
}

var conversationalKeywords = []string{
	"how are you", "hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening",
	"how's it going", "what's up", "how do you feel", "tell me about yourself", "who are you",
	"what are you", "what can you do", "what do you like", "what's your favorite",
	"joke", "funny", "story", "riddle", "poem", "let's talk", "let's chat",
	"make me laugh", "something interesting", "something exciting",
}

// Classify labels an utterance. It is cheap and side-effect free; call it
// fresh for every utterance.
func Classify(utterance string) Intent {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	if _, ok := exceptions[lower]; ok {
		return ExceptionLookup
	}
	if containsAny(lower, summaryKeywords) {
		return SummaryRequest
	}
	if containsAny(lower, factualKeywords) {
		return FactualAdvanced
	}
	if containsAny(lower, conversationalKeywords) {
		return Conversational
	}
	return Default
}

// Lookup returns the fixed answer for an exception utterance.
func Lookup(utterance string) (string, bool) {
	answer, ok := exceptions[strings.ToLower(strings.TrimSpace(utterance))]
	return answer, ok
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

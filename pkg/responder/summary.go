package responder

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ucroboticslab/go-pepper/pkg/inference"
	"github.com/ucroboticslab/go-pepper/pkg/units"
)

const summaryPersona = `You are a helpful assistant at the UC Collaborative Robotics Lab in Canberra, Australia. ` +
	`Summarize information to be relevant to Australians, using metric units and Australian context. ` +
	`Keep responses under 200 characters, natural and engaging. ` +
	`Focus on information that would be useful to someone in Canberra, Australia.`

// Words in a query that make holiday filtering apply.
var holidayQueryWords = []string{"holiday", "public holiday", "bank holiday"}

// Holidays that are not observed in Australia. A raw result naming one of
// these gets replaced with local context instead of read out verbatim.
var nonAustralianHolidays = []string{
	"thanksgiving", "independence day", "memorial day", "labor day",
	"columbus day", "veterans day", "presidents day", "martin luther king day",
	"groundhog day", "super bowl", "black friday", "cyber monday",
}

// Summary localizes a raw search result for an Australian audience: metric
// units, holiday relevance, Canberra context, then one low-temperature
// completion rewrite, and finally phonetic symbol expansion for speech.
type Summary struct {
	llm    inference.Provider
	logger *slog.Logger
	tz     *time.Location
	now    func() time.Time
}

// SummaryOption configures a Summary responder.
type SummaryOption func(*Summary)

// WithSummaryLogger sets the structured logger.
func WithSummaryLogger(l *slog.Logger) SummaryOption {
	return func(s *Summary) { s.logger = l.With("component", "responder.summary") }
}

// NewSummary creates a Summary responder bound to the Canberra timezone.
func NewSummary(llm inference.Provider, opts ...SummaryOption) *Summary {
	tz, err := time.LoadLocation("Australia/Canberra")
	if err != nil {
		tz = time.FixedZone("AEST", 10*60*60)
	}
	s := &Summary{
		llm:    llm,
		logger: slog.Default().With("component", "responder.summary"),
		tz:     tz,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize rewrites raw search text for the given query. It never fails:
// when the completion capability is unavailable the locally filtered text
// is returned, phoneticized.
func (s *Summary) Summarize(ctx context.Context, query, raw string) string {
	filtered := units.ToMetric(raw)
	filtered = s.filterHolidays(query, filtered)
	filtered = s.addLocalContext(query, filtered)

	resp, err := s.llm.Chat(ctx, &inference.ChatRequest{
		Messages: []inference.Message{
			inference.NewSystemMessage(summaryPersona),
			inference.NewUserMessage("Original query: " + query + "\nSearch response: " + filtered + "\n\nCreate an Australian-focused summary:"),
		},
		Temperature: 0.2,
	})
	if err != nil || strings.TrimSpace(resp.Message.Content) == "" {
		s.logger.Warn("summary rewrite failed, using filtered text", "error", err)
		return units.ToPhonetic(filtered)
	}
	return units.ToPhonetic(resp.Message.Content)
}

// filterHolidays replaces mentions of holidays not observed in Australia
// with today's date in Canberra. Only applies when the query is about
// holidays.
func (s *Summary) filterHolidays(query, text string) string {
	queryLower := strings.ToLower(query)
	asked := false
	for _, w := range holidayQueryWords {
		if strings.Contains(queryLower, w) {
			asked = true
			break
		}
	}
	if !asked {
		return text
	}

	textLower := strings.ToLower(text)
	for _, h := range nonAustralianHolidays {
		if !strings.Contains(textLower, h) {
			continue
		}
		today := s.now().In(s.tz).Format("Monday, January 02")
		switch {
		case strings.Contains(textLower, "thanksgiving"):
			return "Thanksgiving is not celebrated in Australia. Today is " + today + " in Canberra."
		case strings.Contains(textLower, "independence day"):
			return "Independence Day is not an Australian holiday. Australia Day is celebrated on January 26th."
		default:
			return "That holiday is not celebrated in Australia. Today is " + today + " in Canberra."
		}
	}
	return text
}

// addLocalContext prefixes weather and time answers with the Canberra
// location when the text does not already mention it. Time answers also get
// the current local clock.
func (s *Summary) addLocalContext(query, text string) string {
	queryLower := strings.ToLower(query)
	textLower := strings.ToLower(text)
	mentions := strings.Contains(textLower, "canberra") || strings.Contains(textLower, "australia")

	if strings.Contains(queryLower, "weather") && !mentions {
		return "In Canberra, Australia: " + text
	}
	if strings.Contains(queryLower, "time") && !mentions {
		clock := s.now().In(s.tz).Format("03:04 PM")
		return "In Canberra, Australia: " + text + " (Current time: " + clock + ")"
	}
	return text
}

package responder

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ucroboticslab/go-pepper/pkg/cache"
	"github.com/ucroboticslab/go-pepper/pkg/extract"
	"github.com/ucroboticslab/go-pepper/pkg/inference"
	"github.com/ucroboticslab/go-pepper/pkg/search"
	"github.com/ucroboticslab/go-pepper/pkg/textproc"
)

// Default bounds for the search-vs-completion race.
const (
	DefaultSearchTimeout     = 5 * time.Second
	DefaultCompletionTimeout = 2 * time.Second
)

const searchRewritePrompt = `You are a helpful assistant that converts search results into conversational responses. ` +
	`Keep responses under 200 characters, natural and engaging. ` +
	`Focus on the most relevant information from the search results.`

var (
	bracketsRe = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	symbolsRe  = regexp.MustCompile(`[^\w\s.,?!:']`)
)

// Search is the factual strategy. It races the search capability against a
// direct completion: the search leg gets the longer bound and always wins
// when it yields non-empty content; the completion leg is the fallback. The
// losing leg is abandoned, not cancelled, and its result is discarded.
type Search struct {
	search search.Provider
	llm    inference.Provider
	cache  *cache.Cache
	logger *slog.Logger

	searchTimeout     time.Duration
	completionTimeout time.Duration

	// rewrite selects conversational rewriting of snippets through the
	// completion capability. Without it, snippets are rendered purely by
	// typed extraction templates.
	rewrite bool
}

// SearchOption configures a Search responder.
type SearchOption func(*Search)

// WithSearchTimeout bounds the search leg.
func WithSearchTimeout(d time.Duration) SearchOption {
	return func(s *Search) { s.searchTimeout = d }
}

// WithCompletionTimeout bounds the completion fallback leg.
func WithCompletionTimeout(d time.Duration) SearchOption {
	return func(s *Search) { s.completionTimeout = d }
}

// WithSearchLogger sets the structured logger.
func WithSearchLogger(l *slog.Logger) SearchOption {
	return func(s *Search) { s.logger = l.With("component", "responder.search") }
}

// NewAdvancedSearch creates the search responder that rewrites snippets
// conversationally through the completion capability.
func NewAdvancedSearch(sp search.Provider, llm inference.Provider, opts ...SearchOption) *Search {
	s := newSearch(sp, llm, opts...)
	s.rewrite = true
	return s
}

// NewSimpleSearch creates the search responder that renders snippets with
// typed-extraction templates only.
func NewSimpleSearch(sp search.Provider, llm inference.Provider, opts ...SearchOption) *Search {
	return newSearch(sp, llm, opts...)
}

func newSearch(sp search.Provider, llm inference.Provider, opts ...SearchOption) *Search {
	s := &Search{
		search:            sp,
		llm:               llm,
		cache:             cache.New(cache.DefaultTTL),
		logger:            slog.Default().With("component", "responder.search"),
		searchTimeout:     DefaultSearchTimeout,
		completionTimeout: DefaultCompletionTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type legResult struct {
	text string
	err  error
}

// Respond races the two legs and renders the winner. It never returns an
// error; if both legs fail the fixed search apology comes back.
func (s *Search) Respond(ctx context.Context, prompt string) (string, error) {
	if cached, ok := s.cache.Get(prompt); ok {
		s.logger.Debug("cache hit", "prompt_len", len(prompt))
		return cached, nil
	}

	// Both legs start immediately on their own goroutines. Channels are
	// buffered so an abandoned leg can still deliver and exit.
	searchCh := make(chan legResult, 1)
	llmCh := make(chan legResult, 1)

	go func() {
		text, err := s.search.Search(ctx, prompt)
		searchCh <- legResult{text: text, err: err}
	}()
	go func() {
		text, err := inference.Complete(ctx, s.llm, "Please provide a factual response to: "+prompt)
		llmCh <- legResult{text: text, err: err}
	}()

	response := s.awaitLegs(ctx, prompt, searchCh, llmCh)
	response = textproc.TruncateAtSentence(response, ResponseCharBudget)

	if response != ApologySearch {
		s.cache.Put(prompt, response)
	}
	return response, nil
}

// awaitLegs applies the search-preferred policy: wait out the search leg's
// full bound first, and only consult the completion leg when search failed,
// timed out, or came back empty. Both legs run from dispatch, so when the
// completion leg is consulted its result is usually already buffered; the
// timers themselves are sequential, so a total miss is bounded by
// searchTimeout+completionTimeout, not their max.
func (s *Search) awaitLegs(ctx context.Context, prompt string, searchCh, llmCh <-chan legResult) string {
	searchTimer := time.NewTimer(s.searchTimeout)
	defer searchTimer.Stop()

	select {
	case res := <-searchCh:
		if res.err == nil && strings.TrimSpace(res.text) != "" {
			return s.render(ctx, prompt, res.text)
		}
		if res.err != nil {
			s.logger.Warn("search leg failed", "error", res.err)
		} else {
			s.logger.Debug("search leg empty, falling back to completion")
		}
	case <-searchTimer.C:
		s.logger.Warn("search leg timed out", "timeout", s.searchTimeout)
	case <-ctx.Done():
		return ApologySearch
	}

	llmTimer := time.NewTimer(s.completionTimeout)
	defer llmTimer.Stop()

	select {
	case res := <-llmCh:
		if res.err == nil && strings.TrimSpace(res.text) != "" {
			return res.text
		}
		s.logger.Warn("completion leg failed", "error", res.err)
	case <-llmTimer.C:
		s.logger.Warn("completion leg timed out", "timeout", s.completionTimeout)
	case <-ctx.Done():
	}
	return ApologySearch
}

// render turns a raw snippet into a speakable sentence for the query type.
func (s *Search) render(ctx context.Context, prompt, snippet string) string {
	cleaned := cleanSnippet(snippet)
	if text, ok := formatTyped(prompt, cleaned); ok {
		return text
	}
	if s.rewrite {
		if text, err := s.rewriteConversational(ctx, prompt, cleaned); err == nil {
			return text
		}
	}
	return firstConcise(cleaned)
}

// rewriteConversational asks the completion capability for a short
// conversational rendering of the snippet.
func (s *Search) rewriteConversational(ctx context.Context, prompt, cleaned string) (string, error) {
	if len(cleaned) > 1000 {
		cleaned = cleaned[:1000]
	}
	resp, err := s.llm.Chat(ctx, &inference.ChatRequest{
		Messages: []inference.Message{
			inference.NewSystemMessage(searchRewritePrompt),
			inference.NewUserMessage("Query: " + prompt + "\nSearch results: " + cleaned + "\n\nCreate a conversational response:"),
		},
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warn("snippet rewrite failed", "error", err)
		return "", err
	}
	return resp.Message.Content, nil
}

// cleanSnippet strips markup leftovers so extraction patterns see prose.
func cleanSnippet(text string) string {
	text = strings.ReplaceAll(text, "°", " degrees")
	text = bracketsRe.ReplaceAllString(text, "")
	text = symbolsRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, ":", "")
	return textproc.Sanitize(text)
}

// formatTyped renders the query-type-specific templates. The second return
// is false when the query matches no known type.
func formatTyped(prompt, cleaned string) (string, bool) {
	lower := strings.ToLower(prompt)
	location := extract.Location(prompt)

	switch {
	case strings.Contains(lower, "weather"):
		if temp, ok := extract.Temperature(cleaned); ok {
			return "It's about " + temp + " in " + location + " right now.", true
		}
		return "Sorry, I couldn't find the current temperature for " + location + ".", true

	case strings.Contains(lower, "time"):
		if t, ok := extract.ClockTime(cleaned); ok {
			return "The current time in " + location + " is " + t + ".", true
		}
		return "Sorry, I couldn't find the current time for " + location + ".", true

	case strings.Contains(lower, "population"):
		if pop, ok := extract.Population(cleaned); ok {
			return "The population of " + location + " is " + pop + ".", true
		}
		return "Sorry, I couldn't find the population for " + location + ".", true

	case strings.Contains(lower, "capital"):
		if city, ok := extract.ProperName(cleaned); ok && !strings.EqualFold(city, location) {
			return "The capital is " + city + ".", true
		}
		return "Sorry, I couldn't find the capital for " + location + ".", true

	case strings.Contains(lower, "president"):
		if name, ok := extract.ProperName(cleaned); ok && !strings.Contains(strings.ToLower(location), strings.ToLower(name)) {
			return "The president is " + name + ".", true
		}
		return "Sorry, I couldn't find the president for " + location + ".", true

	case strings.Contains(lower, "mount everest"):
		if h, ok := extract.Population(cleaned); ok {
			return "Mount Everest is " + h + " tall.", true
		}
		return "Sorry, I couldn't find the height of Mount Everest.", true

	case strings.Contains(lower, "speed of light"):
		if v, ok := extract.Population(cleaned); ok {
			return "The speed of light is " + v + ".", true
		}
		return "Sorry, I couldn't find the speed of light.", true

	case strings.Contains(lower, "declaration of independence"):
		if y, ok := extract.Year(cleaned); ok {
			return "The Declaration of Independence was signed in " + y + ".", true
		}
		return "Sorry, I couldn't find the year the Declaration of Independence was signed.", true
	}
	return "", false
}

// firstConcise returns the first sentence of cleaned text, or the whole
// text when that sentence is under three words.
func firstConcise(cleaned string) string {
	first, _, _ := strings.Cut(cleaned, ".")
	if len(strings.Fields(first)) > 2 {
		return strings.TrimSpace(first) + "."
	}
	if len(cleaned) > 150 {
		return cleaned[:150]
	}
	return cleaned
}

// Cache exposes the response cache, mainly for tests.
func (s *Search) Cache() *cache.Cache {
	return s.cache
}

// Verify Search implements Responder at compile time.
var _ Responder = (*Search)(nil)

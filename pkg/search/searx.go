package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ucroboticslab/go-pepper/internal/httpc"
)

// How many results are flattened into the snippet.
const maxResults = 3

// Searx queries a SearxNG-style metasearch instance over its JSON API.
type Searx struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	// Minimum spacing between searches, to stay polite to the instance.
	minInterval time.Duration
	mu          sync.Mutex
	lastSearch  time.Time
}

// SearxOption configures a Searx provider.
type SearxOption func(*Searx)

// WithHTTPClient overrides the HTTP client (tests use httptest servers).
func WithHTTPClient(c *http.Client) SearxOption {
	return func(s *Searx) { s.http = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) SearxOption {
	return func(s *Searx) { s.logger = l.With("component", "search.searx") }
}

// WithMinInterval sets the minimum spacing between searches.
func WithMinInterval(d time.Duration) SearxOption {
	return func(s *Searx) { s.minInterval = d }
}

// NewSearx creates a search provider for the given instance URL,
// e.g. "http://192.168.194.33:8060/search".
func NewSearx(baseURL string, opts ...SearxOption) *Searx {
	s := &Searx{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		http:        httpc.Client,
		logger:      slog.Default().With("component", "search.searx"),
		minInterval: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Search runs the query and flattens the top results into one snippet of
// content and title text. Returns "" when nothing usable came back.
func (s *Searx) Search(ctx context.Context, query string) (string, error) {
	s.throttle(ctx)

	u := fmt.Sprintf("%s?q=%s&format=json", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return "", fmt.Errorf("search: create request: %w", err)
	}

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var body searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("search: decode response: %w", err)
	}

	s.logger.Debug("search complete",
		"query", query,
		"results", len(body.Results),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	var b strings.Builder
	n := len(body.Results)
	if n > maxResults {
		n = maxResults
	}
	for i := 0; i < n; i++ {
		r := body.Results[i]
		if r.Content != "" {
			b.WriteString(r.Content)
			b.WriteString(" ")
		}
		if r.Title != "" {
			b.WriteString(r.Title)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// Health issues an empty query to confirm the instance answers.
func (s *Searx) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"?q=ping&format=json", nil)
	if err != nil {
		return err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (s *Searx) Close() error {
	s.http.CloseIdleConnections()
	return nil
}

// throttle enforces the minimum spacing between searches.
func (s *Searx) throttle(ctx context.Context) {
	s.mu.Lock()
	wait := s.minInterval - time.Since(s.lastSearch)
	s.lastSearch = time.Now().Add(wait)
	s.mu.Unlock()

	if wait <= 0 {
		return
	}
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}

// Verify Searx implements Provider at compile time.
var _ Provider = (*Searx)(nil)

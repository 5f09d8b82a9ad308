package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ucroboticslab/go-pepper/pkg/search"
)

func newSearx(t *testing.T, handler http.HandlerFunc) *search.Searx {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return search.NewSearx(srv.URL+"/search",
		search.WithHTTPClient(srv.Client()),
		search.WithMinInterval(0),
	)
}

func TestSearxFlattensTopResults(t *testing.T) {
	s := newSearx(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "canberra weather" {
			t.Errorf("query not forwarded: %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format param missing: %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "BOM", "content": "Sunny, 17 degrees celsius."},
				{"title": "Weatherzone", "content": "Clear skies."},
				{"title": "Third", "content": "Wind light."},
				{"title": "Fourth", "content": "must not appear"},
			},
		})
	})
	defer s.Close()

	got, err := s.Search(context.Background(), "canberra weather")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !strings.Contains(got, "Sunny, 17 degrees celsius.") || !strings.Contains(got, "BOM") {
		t.Errorf("snippet missing content: %q", got)
	}
	if strings.Contains(got, "must not appear") {
		t.Errorf("more than 3 results flattened: %q", got)
	}
}

func TestSearxEmptyResults(t *testing.T) {
	s := newSearx(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})
	defer s.Close()

	got, err := s.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("empty results must not be an error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty snippet, got %q", got)
	}
}

func TestSearxBadStatus(t *testing.T) {
	s := newSearx(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer s.Close()

	_, err := s.Search(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error on bad status")
	}
}

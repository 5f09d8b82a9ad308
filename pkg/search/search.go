// Package search provides the web-search capability.
//
// A Provider turns a query into a flat text snippet. An empty result means
// "no usable content" and is a first-class outcome, distinct from an error:
// responders treat it as a branch, not a failure.
package search

import (
	"context"
	"errors"
)

// Sentinel errors.
var (
	// ErrUnavailable is returned when the search service cannot be reached.
	ErrUnavailable = errors.New("search: service unavailable")

	// ErrBadStatus is returned on a non-200 response.
	ErrBadStatus = errors.New("search: unexpected status")
)

// Provider is the search capability interface.
type Provider interface {
	// Search returns flattened snippet text for the query. An empty string
	// with a nil error means the search ran but found nothing usable.
	Search(ctx context.Context, query string) (string, error)

	// Health checks service connectivity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// QuoteService defines the interface for fetching ethical inspiration
// quotes about trust and financial honesty.
type QuoteService interface {
	// EthicalInspirations returns a handful of short quotes. Implementations
	// fall back to static quotes when the upstream provider fails.
	EthicalInspirations(ctx context.Context) ([]string, error)

	// IsAvailable checks if the quote provider is configured.
	IsAvailable() bool
}

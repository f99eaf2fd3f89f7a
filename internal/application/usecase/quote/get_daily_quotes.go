// Package quote holds the use case for ethical inspiration quotes.
package quote

import (
	"context"

	"github.com/amaanah/backend/internal/application/adapter"
)

// GetDailyQuotesOutput represents a batch of inspiration quotes.
type GetDailyQuotesOutput struct {
	Quotes []string
}

// GetDailyQuotesUseCase fetches short quotes about trust and honoring
// one's commitments.
type GetDailyQuotesUseCase struct {
	quoteService adapter.QuoteService
}

// NewGetDailyQuotesUseCase creates a new GetDailyQuotesUseCase instance.
func NewGetDailyQuotesUseCase(quoteService adapter.QuoteService) *GetDailyQuotesUseCase {
	return &GetDailyQuotesUseCase{quoteService: quoteService}
}

// Execute returns the quotes. The service itself falls back to a static
// set when the provider is unavailable, so this never fails on provider
// outages alone.
func (uc *GetDailyQuotesUseCase) Execute(ctx context.Context) (*GetDailyQuotesOutput, error) {
	quotes, err := uc.quoteService.EthicalInspirations(ctx)
	if err != nil {
		return nil, err
	}
	return &GetDailyQuotesOutput{Quotes: quotes}, nil
}

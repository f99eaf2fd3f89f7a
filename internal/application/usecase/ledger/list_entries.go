package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// ListEntriesInput represents the input for listing a user's ledger.
type ListEntriesInput struct {
	UserID uuid.UUID
	Status *entity.EntryStatus
	Type   *entity.EntryType
	Page   int
	Limit  int
}

// ListEntriesOutput represents one page of the user's ledger.
type ListEntriesOutput struct {
	Entries    []*entity.LedgerEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListEntriesUseCase handles ledger listing logic.
type ListEntriesUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(ledgerRepo adapter.LedgerRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute lists entries where the user is creator or counterpart.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	result, err := uc.ledgerRepo.FindByParticipant(ctx, input.UserID, adapter.LedgerEntryFilter{
		Status: input.Status,
		Type:   input.Type,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &ListEntriesOutput{
		Entries:    result.Entries,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}, nil
}

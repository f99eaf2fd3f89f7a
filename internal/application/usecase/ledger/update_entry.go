package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// UpdateEntryInput represents the input for editing an entry's details.
type UpdateEntryInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
	Notes   string
	DueDate *time.Time
}

// UpdateEntryOutput represents the output of an edit.
type UpdateEntryOutput struct {
	Entry *entity.LedgerEntry
}

// UpdateEntryUseCase edits the notes and due date of an entry.
type UpdateEntryUseCase struct {
	ledgerRepo adapter.LedgerRepository
	clock      adapter.Clock
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(ledgerRepo adapter.LedgerRepository, clock adapter.Clock) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{
		ledgerRepo: ledgerRepo,
		clock:      clock,
	}
}

// Execute applies the edit on behalf of the creator.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if err := entry.UpdateDetails(input.ActorID, input.Notes, input.DueDate); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return &UpdateEntryOutput{Entry: entry}, nil
}

package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// DeleteEntryInput represents the input for deleting an entry.
type DeleteEntryInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
}

// DeleteEntryUseCase removes an entry and its reminder bookkeeping.
type DeleteEntryUseCase struct {
	ledgerRepo    adapter.LedgerRepository
	reminderState adapter.ReminderStateRepository
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(
	ledgerRepo adapter.LedgerRepository,
	reminderState adapter.ReminderStateRepository,
) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		ledgerRepo:    ledgerRepo,
		reminderState: reminderState,
	}
}

// Execute deletes the entry on behalf of the creator. Triggered reminder
// keys are cleared so a future entry reusing the ID cannot inherit them.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) error {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return err
	}

	if input.ActorID != entry.CreatorID {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeNotCreator,
			"Only the creator can delete this entry",
			domainerror.ErrNotCreator,
		)
	}

	if err := uc.ledgerRepo.Delete(ctx, entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if err := uc.reminderState.ClearEntry(ctx, entry.ID); err != nil {
		slog.Error("Failed to clear reminder state", "entry_id", entry.ID, "error", err)
	}

	return nil
}

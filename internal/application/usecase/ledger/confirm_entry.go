package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// ConfirmEntryInput represents the input for confirming an entry.
type ConfirmEntryInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
}

// ConfirmEntryOutput represents the output of a confirmation.
type ConfirmEntryOutput struct {
	Entry *entity.LedgerEntry
}

// ConfirmEntryUseCase handles counterpart confirmation of a pending entry.
type ConfirmEntryUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	clock            adapter.Clock
}

// NewConfirmEntryUseCase creates a new ConfirmEntryUseCase instance.
func NewConfirmEntryUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	clock adapter.Clock,
) *ConfirmEntryUseCase {
	return &ConfirmEntryUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		clock:            clock,
	}
}

// Execute confirms the entry on behalf of the counterpart. The entry is
// only persisted after the transition succeeds, so a rejected confirmation
// leaves the stored entry untouched.
func (uc *ConfirmEntryUseCase) Execute(ctx context.Context, input ConfirmEntryInput) (*ConfirmEntryOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if err := entry.Confirm(input.ActorID, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save confirmed entry: %w", err)
	}

	actorName := "Your partner"
	if actor, err := uc.userRepo.FindByID(ctx, input.ActorID); err == nil {
		actorName = actor.Name
	}

	notification := entity.NewAppNotification(
		entry.CreatorID,
		entry.ID,
		"Terms Confirmed",
		fmt.Sprintf("%s confirmed the commitment of %s.", actorName, entry.Amount),
		uc.clock.Now(),
	)
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("Failed to store confirmation notification", "entry_id", entry.ID, "error", err)
	}

	return &ConfirmEntryOutput{Entry: entry}, nil
}

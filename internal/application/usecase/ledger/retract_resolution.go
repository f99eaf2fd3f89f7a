package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// RetractResolutionInput represents the input for retracting a resolution.
type RetractResolutionInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
}

// RetractResolutionOutput represents the output of a retraction.
type RetractResolutionOutput struct {
	Entry *entity.LedgerEntry
}

// RetractResolutionUseCase reopens a resolved entry, recomputing its state
// from the payment log.
type RetractResolutionUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	clock            adapter.Clock
}

// NewRetractResolutionUseCase creates a new RetractResolutionUseCase instance.
func NewRetractResolutionUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	clock adapter.Clock,
) *RetractResolutionUseCase {
	return &RetractResolutionUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		clock:            clock,
	}
}

// Execute retracts the most recent resolution and notifies the other
// participant that the balance was recalculated.
func (uc *RetractResolutionUseCase) Execute(ctx context.Context, input RetractResolutionInput) (*RetractResolutionOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if err := entry.RetractResolution(input.ActorID, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save retraction: %w", err)
	}

	if recipientID := entry.CounterpartID(input.ActorID); recipientID != nil {
		actorName := "Your partner"
		if actor, err := uc.userRepo.FindByID(ctx, input.ActorID); err == nil {
			actorName = actor.Name
		}

		notification := entity.NewAppNotification(
			*recipientID,
			entry.ID,
			"Resolution Retracted",
			fmt.Sprintf("%s retracted the resolution of the commitment of %s. The balance has been recalculated.", actorName, entry.Amount),
			uc.clock.Now(),
		)
		if err := uc.notificationRepo.Create(ctx, notification); err != nil {
			slog.Error("Failed to store retraction notification", "entry_id", entry.ID, "error", err)
		}
	}

	return &RetractResolutionOutput{Entry: entry}, nil
}

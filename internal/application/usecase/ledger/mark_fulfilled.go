package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// MarkFulfilledInput represents the input for settling an entry in full.
type MarkFulfilledInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
}

// MarkFulfilledOutput represents the output of a fulfillment.
type MarkFulfilledOutput struct {
	Entry *entity.LedgerEntry
}

// MarkFulfilledUseCase settles an entry in full on behalf of either
// participant.
type MarkFulfilledUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	clock            adapter.Clock
}

// NewMarkFulfilledUseCase creates a new MarkFulfilledUseCase instance.
func NewMarkFulfilledUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	clock adapter.Clock,
) *MarkFulfilledUseCase {
	return &MarkFulfilledUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		clock:            clock,
	}
}

// Execute marks the entry fulfilled and notifies the other participant
// when they hold an account.
func (uc *MarkFulfilledUseCase) Execute(ctx context.Context, input MarkFulfilledInput) (*MarkFulfilledOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if err := entry.MarkFulfilled(input.ActorID, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save fulfilled entry: %w", err)
	}

	uc.notifyCounterpartOf(ctx, entry, input.ActorID)

	return &MarkFulfilledOutput{Entry: entry}, nil
}

func (uc *MarkFulfilledUseCase) notifyCounterpartOf(ctx context.Context, entry *entity.LedgerEntry, actorID uuid.UUID) {
	recipientID := entry.CreatorID
	if actorID == entry.CreatorID {
		if entry.TargetUserID == nil {
			return
		}
		recipientID = *entry.TargetUserID
	}

	actorName := "Your partner"
	if actor, err := uc.userRepo.FindByID(ctx, actorID); err == nil {
		actorName = actor.Name
	}

	notification := entity.NewAppNotification(
		recipientID,
		entry.ID,
		"Commitment Fulfilled",
		fmt.Sprintf("%s marked the commitment of %s as fulfilled.", actorName, entry.Amount),
		uc.clock.Now(),
	)
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("Failed to store fulfillment notification", "entry_id", entry.ID, "error", err)
	}
}

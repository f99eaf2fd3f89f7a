package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// ClaimEntryInput represents the input for claiming an unresolved entry.
type ClaimEntryInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
}

// ClaimEntryOutput represents the output of a claim.
type ClaimEntryOutput struct {
	Entry *entity.LedgerEntry
}

// ClaimEntryUseCase lets an invited user bind themselves as the counterpart
// of an entry created against a free-text partner name, confirming the terms
// in the same action.
type ClaimEntryUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	clock            adapter.Clock
}

// NewClaimEntryUseCase creates a new ClaimEntryUseCase instance.
func NewClaimEntryUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	clock adapter.Clock,
) *ClaimEntryUseCase {
	return &ClaimEntryUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		clock:            clock,
	}
}

// Execute binds the actor as counterpart and confirms the entry. Both
// changes are applied to the entity before a single save, so a failed
// confirmation never leaves a half-claimed entry behind.
func (uc *ClaimEntryUseCase) Execute(ctx context.Context, input ClaimEntryInput) (*ClaimEntryOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if err := entry.Claim(input.ActorID); err != nil {
		return nil, err
	}
	if err := entry.Confirm(input.ActorID, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save claimed entry: %w", err)
	}

	actorName := entry.PartnerName
	if actor, err := uc.userRepo.FindByID(ctx, input.ActorID); err == nil {
		actorName = actor.Name
	}

	notification := entity.NewAppNotification(
		entry.CreatorID,
		entry.ID,
		"Terms Confirmed",
		fmt.Sprintf("%s accepted and confirmed the commitment of %s.", actorName, entry.Amount),
		uc.clock.Now(),
	)
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("Failed to store claim notification", "entry_id", entry.ID, "error", err)
	}

	return &ClaimEntryOutput{Entry: entry}, nil
}

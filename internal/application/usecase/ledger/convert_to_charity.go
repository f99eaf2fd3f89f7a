package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// ConvertToCharityInput represents the input for converting an entry to charity.
type ConvertToCharityInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
}

// ConvertToCharityOutput represents the output of a charity conversion.
type ConvertToCharityOutput struct {
	Entry *entity.LedgerEntry
}

// ConvertToCharityUseCase rededicates an open obligation as charity on
// behalf of the creditor.
type ConvertToCharityUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	clock            adapter.Clock
}

// NewConvertToCharityUseCase creates a new ConvertToCharityUseCase instance.
func NewConvertToCharityUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	clock adapter.Clock,
) *ConvertToCharityUseCase {
	return &ConvertToCharityUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		clock:            clock,
	}
}

// Execute converts the entry to charity and notifies the debtor when they
// hold an account.
func (uc *ConvertToCharityUseCase) Execute(ctx context.Context, input ConvertToCharityInput) (*ConvertToCharityOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if err := entry.ConvertToCharity(input.ActorID, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save charity conversion: %w", err)
	}

	if debtorID := entry.DebtorUserID(); debtorID != nil {
		creditorName := entry.PartnerName
		if actor, err := uc.userRepo.FindByID(ctx, input.ActorID); err == nil {
			creditorName = actor.Name
		}

		notification := entity.NewAppNotification(
			*debtorID,
			entry.ID,
			"Converted to Charity",
			fmt.Sprintf("%s dedicated the commitment of %s as charity.", creditorName, entry.Amount),
			uc.clock.Now(),
		)
		if err := uc.notificationRepo.Create(ctx, notification); err != nil {
			slog.Error("Failed to store charity notification", "entry_id", entry.ID, "error", err)
		}
	}

	return &ConvertToCharityOutput{Entry: entry}, nil
}

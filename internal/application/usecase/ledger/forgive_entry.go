package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// ForgiveEntryInput represents the input for forgiving an entry.
type ForgiveEntryInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
}

// ForgiveEntryOutput represents the output of a forgiveness.
type ForgiveEntryOutput struct {
	Entry *entity.LedgerEntry
}

// ForgiveEntryUseCase releases the debtor from an obligation as an act of
// grace by the creditor.
type ForgiveEntryUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	emailService     adapter.EmailService
	clock            adapter.Clock
}

// NewForgiveEntryUseCase creates a new ForgiveEntryUseCase instance.
func NewForgiveEntryUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *ForgiveEntryUseCase {
	return &ForgiveEntryUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		clock:            clock,
	}
}

// Execute forgives the entry and tells the debtor, in-app and by email,
// that nothing further is owed.
func (uc *ForgiveEntryUseCase) Execute(ctx context.Context, input ForgiveEntryInput) (*ForgiveEntryOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if err := entry.Forgive(input.ActorID, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save forgiven entry: %w", err)
	}

	uc.notifyDebtor(ctx, entry, input.ActorID)

	return &ForgiveEntryOutput{Entry: entry}, nil
}

func (uc *ForgiveEntryUseCase) notifyDebtor(ctx context.Context, entry *entity.LedgerEntry, actorID uuid.UUID) {
	debtorID := entry.DebtorUserID()
	if debtorID == nil {
		return
	}

	creditorName := entry.PartnerName
	if actor, err := uc.userRepo.FindByID(ctx, actorID); err == nil {
		creditorName = actor.Name
	}

	notification := entity.NewAppNotification(
		*debtorID,
		entry.ID,
		"Act of Grace",
		fmt.Sprintf("%s has forgiven the commitment of %s. Nothing further is owed.", creditorName, entry.Amount),
		uc.clock.Now(),
	)
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("Failed to store forgiveness notification", "entry_id", entry.ID, "error", err)
	}

	debtor, err := uc.userRepo.FindByID(ctx, *debtorID)
	if err != nil {
		slog.Error("Failed to load debtor for forgiveness email", "entry_id", entry.ID, "error", err)
		return
	}

	err = uc.emailService.QueueActOfGraceEmail(ctx, adapter.QueueActOfGraceInput{
		UserEmail:    debtor.Email,
		UserName:     debtor.Name,
		CreditorName: creditorName,
		Amount:       entry.Amount,
		EntryURL:     fmt.Sprintf("/ledger/%s", entry.ID),
	})
	if err != nil {
		slog.Error("Failed to queue forgiveness email", "entry_id", entry.ID, "error", err)
	}
}

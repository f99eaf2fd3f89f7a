package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// RecordPaymentInput represents the input for logging a partial payment.
type RecordPaymentInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
	Amount  decimal.Decimal
}

// RecordPaymentOutput represents the output of a payment.
type RecordPaymentOutput struct {
	Entry *entity.LedgerEntry
}

// RecordPaymentUseCase applies a partial payment against a divisible entry.
type RecordPaymentUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	clock            adapter.Clock
}

// NewRecordPaymentUseCase creates a new RecordPaymentUseCase instance.
func NewRecordPaymentUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	clock adapter.Clock,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		clock:            clock,
	}
}

// Execute records the payment. When the payment clears the remaining
// balance the entry is settled in full, and the other participant is told
// either way.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, input RecordPaymentInput) (*RecordPaymentOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if !entry.IsParticipant(input.ActorID) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeNotParticipant,
			"Only a participant of the entry can record a payment",
			domainerror.ErrNotParticipant,
		)
	}

	if err := entry.RecordPayment(input.Amount, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	uc.notifyCounterpart(ctx, entry, input.ActorID, input.Amount)

	return &RecordPaymentOutput{Entry: entry}, nil
}

func (uc *RecordPaymentUseCase) notifyCounterpart(ctx context.Context, entry *entity.LedgerEntry, actorID uuid.UUID, amount decimal.Decimal) {
	recipientID := entry.CounterpartID(actorID)
	if recipientID == nil {
		return
	}

	actorName := "Your partner"
	if actor, err := uc.userRepo.FindByID(ctx, actorID); err == nil {
		actorName = actor.Name
	}

	title := "Payment Recorded"
	message := fmt.Sprintf("%s recorded a payment of %s toward the commitment of %s.", actorName, amount.String(), entry.Amount)
	if entry.Status == entity.StatusFulfilled {
		title = "Commitment Fulfilled"
		message = fmt.Sprintf("%s recorded a payment of %s, settling the commitment of %s in full.", actorName, amount.String(), entry.Amount)
	}

	notification := entity.NewAppNotification(*recipientID, entry.ID, title, message, uc.clock.Now())
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("Failed to store payment notification", "entry_id", entry.ID, "error", err)
	}
}

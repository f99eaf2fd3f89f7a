package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// ListPaymentsInput represents the input for listing the payment log.
type ListPaymentsInput struct {
	EntryID uuid.UUID
	ActorID uuid.UUID
}

// ListPaymentsOutput represents the payment log of an entry.
type ListPaymentsOutput struct {
	Payments []entity.PaymentRecord
}

// ListPaymentsUseCase returns the payment log of a divisible entry.
type ListPaymentsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(ledgerRepo adapter.LedgerRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{ledgerRepo: ledgerRepo}
}

// Execute lists payments for a participant. Entries without a numeric
// balance simply have an empty log.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if !entry.IsParticipant(input.ActorID) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeNotParticipant,
			"Only a participant of the entry can view its payments",
			domainerror.ErrNotParticipant,
		)
	}

	if entry.Money == nil {
		return &ListPaymentsOutput{Payments: []entity.PaymentRecord{}}, nil
	}
	return &ListPaymentsOutput{Payments: entry.Money.Payments}, nil
}

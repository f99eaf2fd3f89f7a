package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// GetEntryInput represents the input for fetching one entry.
type GetEntryInput struct {
	EntryID  uuid.UUID
	ViewerID uuid.UUID
}

// GetEntryOutput represents the fetched entry with viewer-relative fields.
type GetEntryOutput struct {
	Entry           *entity.LedgerEntry
	ViewerRole      entity.Role
	ProgressPercent int
}

// GetEntryUseCase handles fetching a single ledger entry.
type GetEntryUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetEntryUseCase creates a new GetEntryUseCase instance.
func NewGetEntryUseCase(ledgerRepo adapter.LedgerRepository) *GetEntryUseCase {
	return &GetEntryUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute fetches the entry. An entry with an unresolved counterpart is
// visible to any authenticated viewer so it can be claimed through a
// verification link; otherwise only the two parties may see it.
func (uc *GetEntryUseCase) Execute(ctx context.Context, input GetEntryInput) (*GetEntryOutput, error) {
	entry, err := uc.ledgerRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if entry.TargetUserID != nil && !entry.IsParticipant(input.ViewerID) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeNotParticipant,
			"actor is not a party to this entry",
			domainerror.ErrNotParticipant,
		)
	}

	return &GetEntryOutput{
		Entry:           entry,
		ViewerRole:      entry.RoleOf(input.ViewerID),
		ProgressPercent: entry.ProgressPercent(),
	}, nil
}

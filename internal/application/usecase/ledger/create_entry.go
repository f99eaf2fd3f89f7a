// Package ledger contains ledger entry lifecycle use cases.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// CreateEntryInput represents the input for entry creation.
type CreateEntryInput struct {
	CreatorID           uuid.UUID
	TargetUserEmail     string
	PartnerName         string
	Amount              string
	Type                entity.EntryType
	Direction           entity.Direction
	RequireVerification bool
	DueDate             *time.Time
	Notes               string
	Valuation           *decimal.Decimal
}

// CreateEntryOutput represents the output of entry creation.
type CreateEntryOutput struct {
	Entry *entity.LedgerEntry
}

// CreateEntryUseCase handles ledger entry creation logic.
type CreateEntryUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	emailService     adapter.EmailService
	clock            adapter.Clock
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		clock:            clock,
	}
}

// Execute performs the entry creation. When the counterpart is a registered
// user and verification is required, they are asked to confirm the terms.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	partnerName := input.PartnerName

	// A resolved counterpart must exist; their registered name wins over
	// whatever the form carried.
	var target *entity.User
	var targetUserID *uuid.UUID
	if input.TargetUserEmail != "" {
		var err error
		target, err = uc.userRepo.FindByEmail(ctx, input.TargetUserEmail)
		if err != nil {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"counterpart user not found",
				domainerror.ErrUserNotFound,
			)
		}
		targetUserID = &target.ID
		partnerName = target.Name
	}

	entry, err := entity.NewLedgerEntry(
		input.CreatorID,
		targetUserID,
		partnerName,
		input.Amount,
		input.Type,
		input.Direction,
		input.RequireVerification,
		input.DueDate,
		input.Notes,
		input.Valuation,
		uc.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	// A pending entry asks the counterpart for confirmation. Failures past
	// this point must not undo the recorded entry.
	if target != nil && entry.Status == entity.StatusPending {
		creator, err := uc.userRepo.FindByID(ctx, input.CreatorID)
		creatorName := "A community member"
		if err == nil {
			creatorName = creator.Name
		}

		notification := entity.NewAppNotification(
			target.ID,
			entry.ID,
			"Verification Requested",
			fmt.Sprintf("%s recorded a commitment of %s and asks you to confirm the terms.", creatorName, entry.Amount),
			uc.clock.Now(),
		)
		if err := uc.notificationRepo.Create(ctx, notification); err != nil {
			slog.Error("Failed to store verification notification", "entry_id", entry.ID, "error", err)
		}

		if err := uc.emailService.QueueVerificationRequestEmail(ctx, adapter.QueueVerificationRequestInput{
			UserEmail:   target.Email,
			UserName:    target.Name,
			CreatorName: creatorName,
			Amount:      entry.Amount,
			VerifyURL:   fmt.Sprintf("/verify/%s", entry.ID),
		}); err != nil {
			slog.Error("Failed to queue verification email", "entry_id", entry.ID, "error", err)
		}
	}

	return &CreateEntryOutput{Entry: entry}, nil
}

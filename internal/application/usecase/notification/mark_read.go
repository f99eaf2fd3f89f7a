package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// MarkReadInput represents the input for marking a notification as read.
type MarkReadInput struct {
	NotificationID uuid.UUID
	UserID         uuid.UUID
}

// MarkReadOutput represents the output of marking a notification as read.
type MarkReadOutput struct {
	Notification *entity.AppNotification
}

// MarkReadUseCase marks a notification as read on behalf of its recipient.
type MarkReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(notificationRepo adapter.NotificationRepository) *MarkReadUseCase {
	return &MarkReadUseCase{notificationRepo: notificationRepo}
}

// Execute marks the notification as read. Marking an already-read
// notification is a no-op.
func (uc *MarkReadUseCase) Execute(ctx context.Context, input MarkReadInput) (*MarkReadOutput, error) {
	notification, err := uc.notificationRepo.FindByID(ctx, input.NotificationID)
	if err != nil {
		return nil, err
	}

	if notification.UserID != input.UserID {
		return nil, domainerror.NewNotificationError(
			domainerror.ErrCodeNotRecipient,
			"Notification belongs to another user",
			domainerror.ErrNotNotificationRecipient,
		)
	}

	if !notification.IsRead {
		notification.MarkRead()
		if err := uc.notificationRepo.Update(ctx, notification); err != nil {
			return nil, fmt.Errorf("failed to mark notification as read: %w", err)
		}
	}

	return &MarkReadOutput{Notification: notification}, nil
}

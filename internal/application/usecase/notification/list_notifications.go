// Package notification holds use cases for the in-app notification feed.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// ListNotificationsInput represents the input for listing a user's feed.
type ListNotificationsInput struct {
	UserID     uuid.UUID
	UnreadOnly bool
}

// ListNotificationsOutput represents a user's notification feed.
type ListNotificationsOutput struct {
	Notifications []*entity.AppNotification
	UnreadCount   int
}

// ListNotificationsUseCase returns a user's notifications, newest first.
type ListNotificationsUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewListNotificationsUseCase creates a new ListNotificationsUseCase instance.
func NewListNotificationsUseCase(notificationRepo adapter.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notificationRepo: notificationRepo}
}

// Execute lists the feed. The unread count always covers the whole feed,
// even when only unread items are returned.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, input ListNotificationsInput) (*ListNotificationsOutput, error) {
	notifications, err := uc.notificationRepo.FindByRecipient(ctx, input.UserID, input.UnreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread := 0
	if input.UnreadOnly {
		unread = len(notifications)
	} else {
		for _, n := range notifications {
			if !n.IsRead {
				unread++
			}
		}
	}

	return &ListNotificationsOutput{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/domain/entity"
)

// NotificationRepository defines the interface for notification persistence operations.
type NotificationRepository interface {
	// Create stores a new notification.
	Create(ctx context.Context, notification *entity.AppNotification) error

	// CreateBatch stores several notifications at once.
	CreateBatch(ctx context.Context, notifications []*entity.AppNotification) error

	// FindByID retrieves a notification by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AppNotification, error)

	// FindByRecipient retrieves a user's notifications, newest first.
	FindByRecipient(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.AppNotification, error)

	// Update persists changes to a notification.
	Update(ctx context.Context, notification *entity.AppNotification) error
}

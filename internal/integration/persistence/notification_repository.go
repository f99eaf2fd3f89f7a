// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
	"github.com/amaanah/backend/internal/integration/persistence/model"
)

// notificationRepository implements the adapter.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository instance.
func NewNotificationRepository(db *gorm.DB) adapter.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create stores a new notification.
func (r *notificationRepository) Create(ctx context.Context, notification *entity.AppNotification) error {
	notificationModel := model.NotificationFromEntity(notification)
	result := r.db.WithContext(ctx).Create(notificationModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateBatch stores several notifications at once.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*entity.AppNotification) error {
	if len(notifications) == 0 {
		return nil
	}
	notificationModels := make([]*model.NotificationModel, len(notifications))
	for i, n := range notifications {
		notificationModels[i] = model.NotificationFromEntity(n)
	}
	result := r.db.WithContext(ctx).Create(&notificationModels)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a notification by its ID.
func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AppNotification, error) {
	var notificationModel model.NotificationModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&notificationModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewNotificationError(
				domainerror.ErrCodeNotificationNotFound,
				"Notification not found",
				domainerror.ErrNotificationNotFound,
			)
		}
		return nil, result.Error
	}
	return notificationModel.ToEntity(), nil
}

// FindByRecipient retrieves a user's notifications, newest first.
func (r *notificationRepository) FindByRecipient(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.AppNotification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notificationModels []model.NotificationModel
	result := query.Order("created_at DESC").Find(&notificationModels)
	if result.Error != nil {
		return nil, result.Error
	}

	notifications := make([]*entity.AppNotification, len(notificationModels))
	for i, nm := range notificationModels {
		notifications[i] = nm.ToEntity()
	}
	return notifications, nil
}

// Update persists changes to a notification.
func (r *notificationRepository) Update(ctx context.Context, notification *entity.AppNotification) error {
	notificationModel := model.NotificationFromEntity(notification)
	result := r.db.WithContext(ctx).Save(notificationModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

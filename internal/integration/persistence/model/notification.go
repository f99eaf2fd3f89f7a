// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/domain/entity"
)

// NotificationModel represents the notifications table in the database.
type NotificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EntryID   uuid.UUID `gorm:"type:uuid;index"`
	Title     string    `gorm:"type:varchar(100);not null"`
	Message   string    `gorm:"type:text;not null"`
	IsRead    bool      `gorm:"default:false;index"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain AppNotification entity.
func (m *NotificationModel) ToEntity() *entity.AppNotification {
	return &entity.AppNotification{
		ID:        m.ID,
		UserID:    m.UserID,
		EntryID:   m.EntryID,
		Title:     m.Title,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// NotificationFromEntity creates a NotificationModel from a domain AppNotification entity.
func NotificationFromEntity(notification *entity.AppNotification) *NotificationModel {
	return &NotificationModel{
		ID:        notification.ID,
		UserID:    notification.UserID,
		EntryID:   notification.EntryID,
		Title:     notification.Title,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}

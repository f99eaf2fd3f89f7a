// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/amaanah/backend/internal/domain/entity"
)

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse represents a user's notification feed.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// ToNotificationResponse converts a domain AppNotification to a NotificationResponse DTO.
func ToNotificationResponse(notification *entity.AppNotification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID.String(),
		EntryID:   notification.EntryID.String(),
		Title:     notification.Title,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}

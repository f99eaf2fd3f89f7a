// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppNotification is an in-app message addressed to one user about one
// ledger entry. Delivery transport is the caller's concern.
type AppNotification struct {
	ID        uuid.UUID
	UserID    uuid.UUID // Recipient
	EntryID   uuid.UUID
	Title     string
	Message   string
	CreatedAt time.Time
	IsRead    bool
}

// NewAppNotification creates a new unread notification.
func NewAppNotification(userID, entryID uuid.UUID, title, message string, now time.Time) *AppNotification {
	return &AppNotification{
		ID:        uuid.New(),
		UserID:    userID,
		EntryID:   entryID,
		Title:     title,
		Message:   message,
		CreatedAt: now,
	}
}

// MarkRead flags the notification as seen.
func (n *AppNotification) MarkRead() {
	n.IsRead = true
}

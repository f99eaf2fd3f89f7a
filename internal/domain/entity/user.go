// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReminderSettings controls which due-date reminder thresholds a user
// receives. Enabled is the master switch.
type ReminderSettings struct {
	Enabled  bool
	SevenDay bool
	OneDay   bool
}

// DefaultReminderSettings returns the settings applied at registration.
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		Enabled:  true,
		SevenDay: true,
		OneDay:   true,
	}
}

// User represents a registered user of the Amaanah ledger.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Reminders    ReminderSettings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Reminders:    DefaultReminderSettings(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

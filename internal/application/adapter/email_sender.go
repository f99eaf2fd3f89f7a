// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueDueReminderEmail queues a due-date reminder for the debtor.
	QueueDueReminderEmail(ctx context.Context, input QueueDueReminderInput) error

	// QueueActOfGraceEmail queues a forgiveness notice for the debtor.
	QueueActOfGraceEmail(ctx context.Context, input QueueActOfGraceInput) error

	// QueueVerificationRequestEmail queues a request for the counterpart to
	// confirm a newly recorded entry.
	QueueVerificationRequestEmail(ctx context.Context, input QueueVerificationRequestInput) error
}

// QueueDueReminderInput represents the input for queueing a due-date reminder email.
type QueueDueReminderInput struct {
	UserEmail   string
	UserName    string
	PartnerName string
	Amount      string
	DueDate     string
	DueIn       string // "tomorrow" or "in N days"
	EntryURL    string
}

// QueueActOfGraceInput represents the input for queueing a forgiveness notice email.
type QueueActOfGraceInput struct {
	UserEmail    string
	UserName     string
	CreditorName string
	Amount       string
	EntryURL     string
}

// QueueVerificationRequestInput represents the input for queueing a verification request email.
type QueueVerificationRequestInput struct {
	UserEmail   string
	UserName    string
	CreatorName string
	Amount      string
	VerifyURL   string
}

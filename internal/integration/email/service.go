// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueDueReminderEmail queues a due-date reminder for the debtor.
func (s *Service) QueueDueReminderEmail(ctx context.Context, input adapter.QueueDueReminderInput) error {
	subject := fmt.Sprintf("Reminder: your commitment to %s is due %s - Amaanah", input.PartnerName, input.DueIn)

	templateData := map[string]interface{}{
		"user_name":    input.UserName,
		"partner_name": input.PartnerName,
		"amount":       input.Amount,
		"due_date":     input.DueDate,
		"due_in":       input.DueIn,
		"entry_url":    s.appBaseURL + input.EntryURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateDueReminder,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue due reminder email",
			err,
		)
	}

	return nil
}

// QueueActOfGraceEmail queues a forgiveness notice for the debtor.
func (s *Service) QueueActOfGraceEmail(ctx context.Context, input adapter.QueueActOfGraceInput) error {
	subject := fmt.Sprintf("%s has forgiven your commitment - Amaanah", input.CreditorName)

	templateData := map[string]interface{}{
		"user_name":     input.UserName,
		"creditor_name": input.CreditorName,
		"amount":        input.Amount,
		"entry_url":     s.appBaseURL + input.EntryURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateActOfGrace,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue act of grace email",
			err,
		)
	}

	return nil
}

// QueueVerificationRequestEmail queues a request for the counterpart to
// confirm a newly recorded entry.
func (s *Service) QueueVerificationRequestEmail(ctx context.Context, input adapter.QueueVerificationRequestInput) error {
	subject := fmt.Sprintf("%s recorded a commitment with you - Amaanah", input.CreatorName)

	templateData := map[string]interface{}{
		"user_name":    input.UserName,
		"creator_name": input.CreatorName,
		"amount":       input.Amount,
		"verify_url":   s.appBaseURL + input.VerifyURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateVerificationRequest,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue verification request email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)

package entity

import (
	"errors"
	"testing"
	"time"
)

func TestNewEmailJob(t *testing.T) {
	job := NewEmailJob(TemplateDueReminder, "fatima@example.com", "Fatima", "Due Date Reminder", map[string]interface{}{
		"Amount": "$100",
	})

	if job.Status != EmailStatusPending {
		t.Errorf("expected status pending, got %s", job.Status)
	}
	if job.Attempts != 0 || job.MaxAttempts != 3 {
		t.Errorf("unexpected attempt counters: %d/%d", job.Attempts, job.MaxAttempts)
	}
	if job.ScheduledAt.IsZero() {
		t.Error("expected ScheduledAt to be set")
	}
	if job.ProcessedAt != nil {
		t.Error("expected ProcessedAt to be unset")
	}
}

func TestEmailJob_Lifecycle(t *testing.T) {
	t.Run("processing then sent", func(t *testing.T) {
		job := NewEmailJob(TemplateActOfGrace, "fatima@example.com", "Fatima", "An Act of Grace", nil)

		job.MarkProcessing()
		if job.Status != EmailStatusProcessing {
			t.Errorf("expected status processing, got %s", job.Status)
		}

		job.MarkSent("re_12345")
		if job.Status != EmailStatusSent {
			t.Errorf("expected status sent, got %s", job.Status)
		}
		if job.ResendID != "re_12345" {
			t.Errorf("expected the Resend ID to be recorded, got %q", job.ResendID)
		}
		if job.ProcessedAt == nil {
			t.Error("expected ProcessedAt to be stamped")
		}
	})

	t.Run("transient failure schedules a retry with backoff", func(t *testing.T) {
		job := NewEmailJob(TemplateDueReminder, "fatima@example.com", "Fatima", "Due Date Reminder", nil)

		job.MarkFailed(errors.New("rate limited"), false)
		if job.Status != EmailStatusPending {
			t.Errorf("expected status pending for retry, got %s", job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
		if job.LastError != "rate limited" {
			t.Errorf("expected the error to be recorded, got %q", job.LastError)
		}
		if !job.CanRetry() {
			t.Error("expected the job to be retryable")
		}
		// A second failure backs off further, so the job is not ready yet.
		job.MarkFailed(errors.New("rate limited"), false)
		if job.ScheduledAt.Before(time.Now().UTC().Add(30 * time.Second)) {
			t.Errorf("expected a backoff delay, got %v", job.ScheduledAt)
		}
		if job.IsReadyToProcess() {
			t.Error("expected the job to wait for its retry window")
		}
	})

	t.Run("permanent failure stops retries", func(t *testing.T) {
		job := NewEmailJob(TemplateVerificationRequest, "fatima@example.com", "Fatima", "Verification Requested", nil)

		job.MarkFailed(errors.New("invalid recipient"), true)
		if job.Status != EmailStatusFailed {
			t.Errorf("expected status failed, got %s", job.Status)
		}
		if job.ProcessedAt == nil {
			t.Error("expected ProcessedAt to be stamped")
		}
	})

	t.Run("attempts exhaust after max failures", func(t *testing.T) {
		job := NewEmailJob(TemplateDueReminder, "fatima@example.com", "Fatima", "Due Date Reminder", nil)

		for i := 0; i < 3; i++ {
			job.MarkFailed(errors.New("timeout"), false)
		}
		if job.Status != EmailStatusFailed {
			t.Errorf("expected status failed after %d attempts, got %s", job.Attempts, job.Status)
		}
		if job.CanRetry() {
			t.Error("expected no further retries")
		}
	})
}

package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// ScanDueDatesOutput summarizes one reminder sweep.
type ScanDueDatesOutput struct {
	EntriesScanned int
	RemindersSent  int
}

// ScanDueDatesUseCase sweeps all open entries with due dates and delivers
// the reminders their debtors are owed, at most once per entry and window.
type ScanDueDatesUseCase struct {
	ledgerRepo       adapter.LedgerRepository
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
	reminderState    adapter.ReminderStateRepository
	emailService     adapter.EmailService
	clock            adapter.Clock
}

// NewScanDueDatesUseCase creates a new ScanDueDatesUseCase instance.
func NewScanDueDatesUseCase(
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	notificationRepo adapter.NotificationRepository,
	reminderState adapter.ReminderStateRepository,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *ScanDueDatesUseCase {
	return &ScanDueDatesUseCase{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		reminderState:    reminderState,
		emailService:     emailService,
		clock:            clock,
	}
}

// Execute runs one sweep. A reminder that fails to persist does not mark
// its key as fired, so it is retried on the next sweep.
func (uc *ScanDueDatesUseCase) Execute(ctx context.Context) (*ScanDueDatesOutput, error) {
	entries, err := uc.ledgerRepo.FindActiveWithDueDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for reminder scan: %w", err)
	}

	entryIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		entryIDs = append(entryIDs, entry.ID)
	}
	triggered, err := uc.reminderState.LoadTriggered(ctx, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder state: %w", err)
	}

	now := uc.clock.Now()
	debtors := map[uuid.UUID]*entity.User{}
	output := &ScanDueDatesOutput{EntriesScanned: len(entries)}

	for _, entry := range entries {
		debtorID := entry.DebtorUserID()
		if debtorID == nil {
			continue
		}

		debtor, ok := debtors[*debtorID]
		if !ok {
			debtor, err = uc.userRepo.FindByID(ctx, *debtorID)
			if err != nil {
				slog.Error("Failed to load debtor during reminder scan", "entry_id", entry.ID, "error", err)
				continue
			}
			debtors[*debtorID] = debtor
		}

		for _, due := range ComputeDueReminders(entry, debtor.Reminders, triggered, now) {
			if err := uc.deliver(ctx, due, debtor, now); err != nil {
				slog.Error("Failed to deliver reminder", "key", due.Key, "error", err)
				continue
			}
			if err := uc.reminderState.MarkTriggered(ctx, []string{due.Key}); err != nil {
				slog.Error("Failed to mark reminder as fired", "key", due.Key, "error", err)
				continue
			}
			triggered[due.Key] = true
			output.RemindersSent++
		}
	}

	return output, nil
}

func (uc *ScanDueDatesUseCase) deliver(ctx context.Context, due DueReminder, debtor *entity.User, now time.Time) error {
	entry := due.Entry

	creditorName := entry.PartnerName
	if creditorID := entry.CreditorUserID(); creditorID != nil {
		if creditor, err := uc.userRepo.FindByID(ctx, *creditorID); err == nil {
			creditorName = creditor.Name
		}
	}

	notification := entity.NewAppNotification(
		debtor.ID,
		entry.ID,
		"Due Date Reminder",
		fmt.Sprintf("Your commitment of %s to %s is due %s.", entry.Amount, creditorName, due.DueIn()),
		now,
	)
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to store reminder notification: %w", err)
	}

	err := uc.emailService.QueueDueReminderEmail(ctx, adapter.QueueDueReminderInput{
		UserEmail:   debtor.Email,
		UserName:    debtor.Name,
		PartnerName: creditorName,
		Amount:      entry.Amount,
		DueDate:     entry.DueDate.Format("January 2, 2006"),
		DueIn:       due.DueIn(),
		EntryURL:    fmt.Sprintf("/ledger/%s", entry.ID),
	})
	if err != nil {
		slog.Error("Failed to queue reminder email", "key", due.Key, "error", err)
	}
	return nil
}

// Package reminder schedules due-date reminders for open obligations.
package reminder

import (
	"fmt"
	"time"

	"github.com/amaanah/backend/internal/domain/entity"
)

// Thresholds are evaluated in this order; a single scan may produce one
// reminder per threshold when an entry enters both windows between scans.
var reminderThresholds = []int{7, 1}

// DueReminder is one reminder owed to a debtor for an entry entering a
// due-date window.
type DueReminder struct {
	Entry     *entity.LedgerEntry
	Threshold int    // window that fired, in days
	DaysLeft  int    // calendar days until the due date
	Key       string // dedup key, "<entryID>_<threshold>"
}

// DueIn renders the time left in the phrasing used in reminder messages.
func (r DueReminder) DueIn() string {
	if r.DaysLeft == 1 {
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", r.DaysLeft)
}

// calendarDaysUntil counts whole calendar days from now to due, ignoring
// the time of day on both ends. A due date later today yields zero.
func calendarDaysUntil(now, due time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay).Hours() / 24)
}

// thresholdEnabled maps each window onto the debtor's reminder settings.
func thresholdEnabled(settings entity.ReminderSettings, threshold int) bool {
	switch threshold {
	case 7:
		return settings.SevenDay
	case 1:
		return settings.OneDay
	}
	return false
}

// ComputeDueReminders returns the reminders an entry owes right now: one
// per enabled threshold whose window contains the due date and whose key
// has not fired before. Entries without a due date, or already resolved,
// produce nothing. The triggered set is read, never written.
func ComputeDueReminders(entry *entity.LedgerEntry, settings entity.ReminderSettings, triggered map[string]bool, now time.Time) []DueReminder {
	if !settings.Enabled || entry.DueDate == nil {
		return nil
	}
	if entry.Resolved() {
		return nil
	}

	daysLeft := calendarDaysUntil(now, *entry.DueDate)
	if daysLeft <= 0 {
		return nil
	}

	var due []DueReminder
	for _, threshold := range reminderThresholds {
		if daysLeft > threshold || !thresholdEnabled(settings, threshold) {
			continue
		}
		key := fmt.Sprintf("%s_%d", entry.ID, threshold)
		if triggered[key] {
			continue
		}
		due = append(due, DueReminder{
			Entry:     entry,
			Threshold: threshold,
			DaysLeft:  daysLeft,
			Key:       key,
		})
	}
	return due
}

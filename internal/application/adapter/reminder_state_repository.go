// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// ReminderStateRepository tracks which due-date thresholds have already
// fired per entry, so a reminder is delivered at most once per threshold.
// Keys take the form "<entryID>_<days>".
type ReminderStateRepository interface {
	// LoadTriggered returns the set of already-fired keys for the given
	// entries.
	LoadTriggered(ctx context.Context, entryIDs []uuid.UUID) (map[string]bool, error)

	// MarkTriggered records keys as fired. Each key is applied atomically.
	MarkTriggered(ctx context.Context, keys []string) error

	// ClearEntry removes all fired keys for an entry (on delete/purge).
	ClearEntry(ctx context.Context, entryID uuid.UUID) error
}

// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/amaanah/backend/internal/application/adapter"
)

// reminderStateRepository tracks fired reminder keys in Redis, one set per
// entry under "reminder:fired:<entryID>".
type reminderStateRepository struct {
	client *redis.Client
}

// NewReminderStateRepository creates a new reminder state repository instance.
func NewReminderStateRepository(client *redis.Client) adapter.ReminderStateRepository {
	return &reminderStateRepository{
		client: client,
	}
}

func entrySetKey(entryID uuid.UUID) string {
	return fmt.Sprintf("reminder:fired:%s", entryID)
}

// LoadTriggered returns the set of already-fired keys for the given entries.
func (r *reminderStateRepository) LoadTriggered(ctx context.Context, entryIDs []uuid.UUID) (map[string]bool, error) {
	triggered := make(map[string]bool)
	if len(entryIDs) == 0 {
		return triggered, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringSliceCmd, len(entryIDs))
	for i, entryID := range entryIDs {
		commands[i] = pipe.SMembers(ctx, entrySetKey(entryID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load reminder state: %w", err)
	}

	for _, cmd := range commands {
		for _, key := range cmd.Val() {
			triggered[key] = true
		}
	}
	return triggered, nil
}

// MarkTriggered records keys as fired. Each key names its entry in the
// "<entryID>_<days>" form, so it lands in that entry's set.
func (r *reminderStateRepository) MarkTriggered(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, key := range keys {
		idx := strings.LastIndex(key, "_")
		if idx <= 0 {
			return fmt.Errorf("malformed reminder key %q", key)
		}
		entryID, err := uuid.Parse(key[:idx])
		if err != nil {
			return fmt.Errorf("malformed reminder key %q: %w", key, err)
		}
		pipe.SAdd(ctx, entrySetKey(entryID), key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark reminders as fired: %w", err)
	}
	return nil
}

// ClearEntry removes all fired keys for an entry.
func (r *reminderStateRepository) ClearEntry(ctx context.Context, entryID uuid.UUID) error {
	if err := r.client.Del(ctx, entrySetKey(entryID)).Err(); err != nil {
		return fmt.Errorf("failed to clear reminder state: %w", err)
	}
	return nil
}

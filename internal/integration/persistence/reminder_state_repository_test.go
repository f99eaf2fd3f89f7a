// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/amaanah/backend/internal/application/adapter"
)

func newTestReminderState(t *testing.T) adapter.ReminderStateRepository {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReminderStateRepository(client)
}

func TestReminderStateRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("marked keys come back as triggered", func(t *testing.T) {
		repo := newTestReminderState(t)
		entryID := uuid.New()
		key7 := fmt.Sprintf("%s_7", entryID)
		key1 := fmt.Sprintf("%s_1", entryID)

		if err := repo.MarkTriggered(ctx, []string{key7, key1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		triggered, err := repo.LoadTriggered(ctx, []uuid.UUID{entryID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !triggered[key7] || !triggered[key1] {
			t.Errorf("expected both keys triggered, got %v", triggered)
		}
	})

	t.Run("entries are isolated from each other", func(t *testing.T) {
		repo := newTestReminderState(t)
		first := uuid.New()
		second := uuid.New()

		if err := repo.MarkTriggered(ctx, []string{fmt.Sprintf("%s_7", first)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		triggered, err := repo.LoadTriggered(ctx, []uuid.UUID{second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(triggered) != 0 {
			t.Errorf("expected no triggered keys for other entry, got %v", triggered)
		}
	})

	t.Run("load with no entries returns an empty set", func(t *testing.T) {
		repo := newTestReminderState(t)

		triggered, err := repo.LoadTriggered(ctx, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(triggered) != 0 {
			t.Errorf("expected empty set, got %v", triggered)
		}
	})

	t.Run("marking the same key twice is idempotent", func(t *testing.T) {
		repo := newTestReminderState(t)
		entryID := uuid.New()
		key := fmt.Sprintf("%s_7", entryID)

		if err := repo.MarkTriggered(ctx, []string{key}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.MarkTriggered(ctx, []string{key}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		triggered, err := repo.LoadTriggered(ctx, []uuid.UUID{entryID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(triggered) != 1 {
			t.Errorf("expected exactly 1 key, got %d", len(triggered))
		}
	})

	t.Run("malformed keys are rejected", func(t *testing.T) {
		repo := newTestReminderState(t)

		if err := repo.MarkTriggered(ctx, []string{"no-separator"}); err == nil {
			t.Error("expected error for key without separator")
		}
		if err := repo.MarkTriggered(ctx, []string{"not-a-uuid_7"}); err == nil {
			t.Error("expected error for key with invalid entry ID")
		}
	})

	t.Run("clearing an entry removes its keys", func(t *testing.T) {
		repo := newTestReminderState(t)
		entryID := uuid.New()
		key := fmt.Sprintf("%s_7", entryID)

		if err := repo.MarkTriggered(ctx, []string{key}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.ClearEntry(ctx, entryID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		triggered, err := repo.LoadTriggered(ctx, []uuid.UUID{entryID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(triggered) != 0 {
			t.Errorf("expected keys cleared, got %v", triggered)
		}
	})
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/domain/entity"
)

// LedgerEntryFilter narrows a ledger listing.
type LedgerEntryFilter struct {
	Status *entity.EntryStatus
	Type   *entity.EntryType
	Page   int
	Limit  int
}

// LedgerEntryListResult represents one page of ledger entries.
type LedgerEntryListResult struct {
	Entries    []*entity.LedgerEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// LedgerRepository defines the interface for ledger entry persistence operations.
type LedgerRepository interface {
	// Create stores a new ledger entry with its payment and retraction history.
	Create(ctx context.Context, entry *entity.LedgerEntry) error

	// FindByID retrieves a ledger entry by its ID, including payment log
	// and retraction history.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error)

	// FindByParticipant retrieves entries where the user is creator or
	// counterpart, newest first.
	FindByParticipant(ctx context.Context, userID uuid.UUID, filter LedgerEntryFilter) (*LedgerEntryListResult, error)

	// FindActiveWithDueDate retrieves unresolved entries that carry a due
	// date, across all users. Used by the reminder scan.
	FindActiveWithDueDate(ctx context.Context) ([]*entity.LedgerEntry, error)

	// Update persists changes to an entry, its payment log and retraction
	// history in one transaction.
	Update(ctx context.Context, entry *entity.LedgerEntry) error

	// Delete removes an entry and its history permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Package ledger contains ledger entry lifecycle use cases.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// In-memory stand-ins for the persistence and delivery adapters. Each fake
// records what it was asked to do so tests can assert on side effects.

type fakeLedgerRepo struct {
	entries   map[uuid.UUID]*entity.LedgerEntry
	updated   []*entity.LedgerEntry
	deleted   []uuid.UUID
	updateErr error
}

func newFakeLedgerRepo(entries ...*entity.LedgerEntry) *fakeLedgerRepo {
	repo := &fakeLedgerRepo{entries: map[uuid.UUID]*entity.LedgerEntry{}}
	for _, e := range entries {
		repo.entries[e.ID] = e
	}
	return repo
}

func (f *fakeLedgerRepo) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeLedgerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeEntryNotFound,
			"ledger entry not found",
			domainerror.ErrEntryNotFound,
		)
	}
	return entry, nil
}

func (f *fakeLedgerRepo) FindByParticipant(ctx context.Context, userID uuid.UUID, filter adapter.LedgerEntryFilter) (*adapter.LedgerEntryListResult, error) {
	var matches []*entity.LedgerEntry
	for _, e := range f.entries {
		if e.IsParticipant(userID) {
			matches = append(matches, e)
		}
	}
	return &adapter.LedgerEntryListResult{
		Entries:    matches,
		Total:      int64(len(matches)),
		Page:       1,
		Limit:      len(matches),
		TotalPages: 1,
	}, nil
}

func (f *fakeLedgerRepo) FindActiveWithDueDate(ctx context.Context) ([]*entity.LedgerEntry, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLedgerRepo) Update(ctx context.Context, entry *entity.LedgerEntry) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.entries[entry.ID] = entry
	f.updated = append(f.updated, entry)
	return nil
}

func (f *fakeLedgerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.entries, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

type fakeNotificationRepo struct {
	created []*entity.AppNotification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.AppNotification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, ns []*entity.AppNotification) error {
	f.created = append(f.created, ns...)
	return nil
}

func (f *fakeNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.AppNotification, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNotificationRepo) FindByRecipient(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.AppNotification, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNotificationRepo) Update(ctx context.Context, n *entity.AppNotification) error {
	return nil
}

// lastFor returns the most recent notification created for a user.
func (f *fakeNotificationRepo) lastFor(userID uuid.UUID) *entity.AppNotification {
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			return f.created[i]
		}
	}
	return nil
}

type fakeReminderState struct {
	cleared []uuid.UUID
}

func (f *fakeReminderState) LoadTriggered(ctx context.Context, entryIDs []uuid.UUID) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (f *fakeReminderState) MarkTriggered(ctx context.Context, keys []string) error {
	return nil
}

func (f *fakeReminderState) ClearEntry(ctx context.Context, entryID uuid.UUID) error {
	f.cleared = append(f.cleared, entryID)
	return nil
}

type fakeEmailService struct {
	graceEmails        []adapter.QueueActOfGraceInput
	verificationEmails []adapter.QueueVerificationRequestInput
}

func (f *fakeEmailService) QueueDueReminderEmail(ctx context.Context, input adapter.QueueDueReminderInput) error {
	return nil
}

func (f *fakeEmailService) QueueActOfGraceEmail(ctx context.Context, input adapter.QueueActOfGraceInput) error {
	f.graceEmails = append(f.graceEmails, input)
	return nil
}

func (f *fakeEmailService) QueueVerificationRequestEmail(ctx context.Context, input adapter.QueueVerificationRequestInput) error {
	f.verificationEmails = append(f.verificationEmails, input)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

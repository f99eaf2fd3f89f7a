package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

var feedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeNotificationRepo struct {
	notifications []*entity.AppNotification
	updated       []*entity.AppNotification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.AppNotification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) CreateBatch(_ context.Context, ns []*entity.AppNotification) error {
	r.notifications = append(r.notifications, ns...)
	return nil
}

func (r *fakeNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.AppNotification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, domainerror.NewNotificationError(
		domainerror.ErrCodeNotificationNotFound,
		"Notification not found",
		domainerror.ErrNotificationNotFound,
	)
}

func (r *fakeNotificationRepo) FindByRecipient(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.AppNotification, error) {
	var result []*entity.AppNotification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (r *fakeNotificationRepo) Update(_ context.Context, n *entity.AppNotification) error {
	r.updated = append(r.updated, n)
	return nil
}

func seedFeed(repo *fakeNotificationRepo, userID uuid.UUID) (*entity.AppNotification, *entity.AppNotification) {
	unread := entity.NewAppNotification(userID, uuid.New(), "Terms Confirmed", "Fatima confirmed the terms.", feedNow)
	read := entity.NewAppNotification(userID, uuid.New(), "Payment Recorded", "Fatima paid $40.", feedNow.Add(-time.Hour))
	read.MarkRead()
	repo.notifications = append(repo.notifications, unread, read)
	return unread, read
}

func TestListNotificationsUseCase_Execute(t *testing.T) {
	t.Run("lists the full feed with the unread count", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		userID := uuid.New()
		seedFeed(repo, userID)
		seedFeed(repo, uuid.New()) // another user's feed

		output, err := NewListNotificationsUseCase(repo).Execute(context.Background(), ListNotificationsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Notifications) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(output.Notifications))
		}
		if output.UnreadCount != 1 {
			t.Errorf("expected unread count 1, got %d", output.UnreadCount)
		}
	})

	t.Run("filters to unread only", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		userID := uuid.New()
		unread, _ := seedFeed(repo, userID)

		output, err := NewListNotificationsUseCase(repo).Execute(context.Background(), ListNotificationsInput{
			UserID:     userID,
			UnreadOnly: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Notifications) != 1 || output.Notifications[0].ID != unread.ID {
			t.Fatalf("expected only the unread notification, got %d", len(output.Notifications))
		}
		if output.UnreadCount != 1 {
			t.Errorf("expected unread count 1, got %d", output.UnreadCount)
		}
	})

	t.Run("empty feed", func(t *testing.T) {
		output, err := NewListNotificationsUseCase(&fakeNotificationRepo{}).Execute(context.Background(), ListNotificationsInput{UserID: uuid.New()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Notifications) != 0 || output.UnreadCount != 0 {
			t.Errorf("expected an empty feed, got %d/%d", len(output.Notifications), output.UnreadCount)
		}
	})
}

func TestMarkReadUseCase_Execute(t *testing.T) {
	t.Run("marks an unread notification as read", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		userID := uuid.New()
		unread, _ := seedFeed(repo, userID)

		output, err := NewMarkReadUseCase(repo).Execute(context.Background(), MarkReadInput{
			NotificationID: unread.ID,
			UserID:         userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Notification.IsRead {
			t.Error("expected the notification to be read")
		}
		if len(repo.updated) != 1 {
			t.Errorf("expected 1 update, got %d", len(repo.updated))
		}
	})

	t.Run("marking an already-read notification is a no-op", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		userID := uuid.New()
		_, read := seedFeed(repo, userID)

		output, err := NewMarkReadUseCase(repo).Execute(context.Background(), MarkReadInput{
			NotificationID: read.ID,
			UserID:         userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Notification.IsRead {
			t.Error("expected the notification to stay read")
		}
		if len(repo.updated) != 0 {
			t.Errorf("expected no update, got %d", len(repo.updated))
		}
	})

	t.Run("rejects another user's notification", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		unread, _ := seedFeed(repo, uuid.New())

		_, err := NewMarkReadUseCase(repo).Execute(context.Background(), MarkReadInput{
			NotificationID: unread.ID,
			UserID:         uuid.New(),
		})
		var notifErr *domainerror.NotificationError
		if !errors.As(err, &notifErr) {
			t.Fatalf("expected NotificationError, got %T: %v", err, err)
		}
		if notifErr.Code != domainerror.ErrCodeNotRecipient {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNotRecipient, notifErr.Code)
		}
		if len(repo.updated) != 0 {
			t.Errorf("expected no update, got %d", len(repo.updated))
		}
	})

	t.Run("unknown notification", func(t *testing.T) {
		_, err := NewMarkReadUseCase(&fakeNotificationRepo{}).Execute(context.Background(), MarkReadInput{
			NotificationID: uuid.New(),
			UserID:         uuid.New(),
		})
		var notifErr *domainerror.NotificationError
		if !errors.As(err, &notifErr) {
			t.Fatalf("expected NotificationError, got %T: %v", err, err)
		}
		if notifErr.Code != domainerror.ErrCodeNotificationNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNotificationNotFound, notifErr.Code)
		}
	})
}

package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
)

var profileNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeUserRepo struct {
	users   map[uuid.UUID]*entity.User
	updated []*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	r.updated = append(r.updated, user)
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestGetProfileUseCase_Execute(t *testing.T) {
	t.Run("returns the profile", func(t *testing.T) {
		owner := entity.NewUser("omar@example.com", "Omar", "hash")
		uc := NewGetProfileUseCase(newFakeUserRepo(owner))

		output, err := uc.Execute(context.Background(), GetProfileInput{UserID: owner.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Email != "omar@example.com" {
			t.Errorf("unexpected user: %s", output.User.Email)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := NewGetProfileUseCase(newFakeUserRepo())

		if _, err := uc.Execute(context.Background(), GetProfileInput{UserID: uuid.New()}); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})
}

func TestUpdateProfileUseCase_Execute(t *testing.T) {
	t.Run("updates name and reminder settings", func(t *testing.T) {
		owner := entity.NewUser("omar@example.com", "Omar", "hash")
		repo := newFakeUserRepo(owner)
		uc := NewUpdateProfileUseCase(repo, fixedClock{now: profileNow})

		name := "Omar al-Farouq"
		output, err := uc.Execute(context.Background(), UpdateProfileInput{
			UserID: owner.ID,
			Name:   &name,
			Reminders: &entity.ReminderSettings{
				Enabled:  true,
				SevenDay: false,
				OneDay:   true,
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Name != "Omar al-Farouq" {
			t.Errorf("expected the new name, got %s", output.User.Name)
		}
		if output.User.Reminders.SevenDay {
			t.Error("expected seven-day reminders to be disabled")
		}
		if !output.User.UpdatedAt.Equal(profileNow) {
			t.Errorf("expected UpdatedAt to be stamped, got %v", output.User.UpdatedAt)
		}
		if len(repo.updated) != 1 {
			t.Errorf("expected 1 update, got %d", len(repo.updated))
		}
	})

	t.Run("nil fields leave the profile unchanged", func(t *testing.T) {
		owner := entity.NewUser("omar@example.com", "Omar", "hash")
		repo := newFakeUserRepo(owner)
		uc := NewUpdateProfileUseCase(repo, fixedClock{now: profileNow})

		output, err := uc.Execute(context.Background(), UpdateProfileInput{UserID: owner.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Name != "Omar" {
			t.Errorf("expected the name to be kept, got %s", output.User.Name)
		}
		if !output.User.Reminders.Enabled {
			t.Error("expected reminder settings to be kept")
		}
	})

	t.Run("empty name is ignored", func(t *testing.T) {
		owner := entity.NewUser("omar@example.com", "Omar", "hash")
		repo := newFakeUserRepo(owner)
		uc := NewUpdateProfileUseCase(repo, fixedClock{now: profileNow})

		empty := ""
		output, err := uc.Execute(context.Background(), UpdateProfileInput{UserID: owner.ID, Name: &empty})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Name != "Omar" {
			t.Errorf("expected the name to be kept, got %s", output.User.Name)
		}
	})
}

package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// UpdateProfileInput represents the input for updating the user's profile.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID    uuid.UUID
	Name      *string
	Reminders *entity.ReminderSettings
}

// UpdateProfileOutput represents the updated profile.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase updates the user's display name and reminder
// preferences.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
	clock    adapter.Clock
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository, clock adapter.Clock) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		clock:    clock,
	}
}

// Execute applies the update. Disabling reminders does not clear fired
// reminder keys, so re-enabling them never re-delivers old reminders.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Reminders != nil {
		user.Reminders = *input.Reminders
	}
	user.UpdatedAt = uc.clock.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return &UpdateProfileOutput{User: user}, nil
}

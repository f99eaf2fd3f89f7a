// Package user holds use cases for the authenticated user's own profile.
package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// GetProfileInput represents the input for fetching the user's profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput represents the user's profile.
type GetProfileOutput struct {
	User *entity.User
}

// GetProfileUseCase returns the authenticated user's profile.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute fetches the profile.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetProfileOutput{User: user}, nil
}

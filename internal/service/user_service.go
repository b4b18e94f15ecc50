package service

import (
	"context"

	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileInput struct {
	Name  *string
	Image *string
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound()
	}

	summary := mapUser(*user)
	return &summary, nil
}

// UpdateProfile applies a partial profile update. An empty input returns
// the current record without a write.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound()
	}

	if input.Name == nil && input.Image == nil {
		summary := mapUser(*user)
		return &summary, nil
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Image != nil {
		user.Image = input.Image
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	summary := mapUser(*user)
	return &summary, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
)

type UserUpdateInput struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
	TeamID    *int            `json:"team_id,omitempty"`
}

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int, input UserUpdateInput) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapUserError(err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Update(ctx context.Context, id int, input UserUpdateInput) (*models.User, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrValidationFailed)
	}
	switch input.Role {
	case models.RoleAdmin, models.RoleCaptain, models.RolePlayer:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, input.Role)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapUserError(err)
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Role = input.Role
	user.TeamID = input.TeamID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, s.mapUserError(err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	return s.mapUserError(s.userRepo.Delete(ctx, id))
}

func (s *userService) mapUserError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrUserEmailConflict):
		return ErrUserEmailConflict
	}
	return err
}

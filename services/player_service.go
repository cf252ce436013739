package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
)

type PlayerInput struct {
	TeamID    int               `json:"team_id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Nickname  *string           `json:"nickname,omitempty"`
	Role      models.PlayerRole `json:"role,omitempty"`
	BirthDate *time.Time        `json:"birth_date,omitempty"`
}

type PlayerService interface {
	Create(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Update(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	logger     *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository, logger *slog.Logger) PlayerService {
	return &playerService{playerRepo: playerRepo, teamRepo: teamRepo, logger: logger}
}

func validatePlayerInput(input PlayerInput) error {
	if input.FirstName == "" || input.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrValidationFailed)
	}
	if input.TeamID < 1 {
		return fmt.Errorf("%w: a player must belong to a team", ErrValidationFailed)
	}
	if input.Role != "" && input.Role != models.PlayerRoleMember && input.Role != models.PlayerRoleCaptain {
		return fmt.Errorf("%w: unknown player role %q", ErrValidationFailed, input.Role)
	}
	return nil
}

func (s *playerService) Create(ctx context.Context, input PlayerInput) (*models.Player, error) {
	if err := validatePlayerInput(input); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.PlayerRoleMember
	}
	player := &models.Player{
		TeamID:    input.TeamID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Nickname:  input.Nickname,
		Role:      role,
		BirthDate: input.BirthDate,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, s.mapPlayerError(err)
	}

	s.logger.Info("player created",
		slog.Int("player_id", player.ID), slog.Int("team_id", player.TeamID))
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapPlayerError(err)
	}
	return player, nil
}

func (s *playerService) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	return s.playerRepo.ListByTeam(ctx, teamID)
}

func (s *playerService) Update(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	if err := validatePlayerInput(input); err != nil {
		return nil, err
	}

	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapPlayerError(err)
	}

	player.TeamID = input.TeamID
	player.FirstName = input.FirstName
	player.LastName = input.LastName
	player.Nickname = input.Nickname
	if input.Role != "" {
		player.Role = input.Role
	}
	player.BirthDate = input.BirthDate
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, s.mapPlayerError(err)
	}
	return player, nil
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	return s.mapPlayerError(s.playerRepo.Delete(ctx, id))
}

func (s *playerService) mapPlayerError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerTeamInvalid):
		return ErrTeamNotFound
	}
	return err
}

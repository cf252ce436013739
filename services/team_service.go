package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
	"github.com/dartsliga/league-system/storage"
)

type TeamInput struct {
	SeasonID  int    `json:"season_id"`
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
	City      string `json:"city"`
}

type TeamService interface {
	Create(ctx context.Context, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListBySeason(ctx context.Context, seasonID int) ([]*models.Team, error)
	Update(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	// SetCaptain assigns the team captain; the player must belong to the team.
	SetCaptain(ctx context.Context, teamID int, playerID *int) error
	// SetPin hashes and stores the captain PIN used for venue result entry.
	SetPin(ctx context.Context, teamID int, pin string) error
	UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error)
	RemoveLogo(ctx context.Context, teamID int) error
	Delete(ctx context.Context, id int) error
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *teamService) Create(ctx context.Context, input TeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	if input.SeasonID < 1 {
		return nil, fmt.Errorf("%w: a team must belong to a season", ErrValidationFailed)
	}

	team := &models.Team{
		SeasonID:  input.SeasonID,
		Name:      input.Name,
		ShortCode: input.ShortCode,
		City:      input.City,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, s.mapTeamError(err)
	}

	s.logger.Info("team created", slog.Int("team_id", team.ID), slog.String("name", team.Name))
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}

	players, err := s.playerRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}

	s.resolveLogoURL(team)
	return team, nil
}

func (s *teamService) ListBySeason(ctx context.Context, seasonID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		s.resolveLogoURL(team)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}

	team.Name = input.Name
	team.ShortCode = input.ShortCode
	team.City = input.City
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, s.mapTeamError(err)
	}

	s.resolveLogoURL(team)
	return team, nil
}

func (s *teamService) SetCaptain(ctx context.Context, teamID int, playerID *int) error {
	if playerID != nil {
		player, err := s.playerRepo.GetByID(ctx, *playerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}
		if player.TeamID != teamID {
			return ErrCaptainNotTeamMember
		}
	}
	return s.mapTeamError(s.teamRepo.UpdateCaptain(ctx, teamID, playerID))
}

func (s *teamService) SetPin(ctx context.Context, teamID int, pin string) error {
	if len(pin) < minPinLength {
		return ErrPinTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}
	if err := s.teamRepo.UpdatePinHash(ctx, teamID, string(hash)); err != nil {
		return s.mapTeamError(err)
	}

	s.logger.Info("team PIN updated", slog.Int("team_id", teamID))
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, s.mapTeamError(err)
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", ErrValidationFailed)
	}

	ext := extensionForContentType(contentType)
	if ext == "" {
		return nil, fmt.Errorf("%w: unsupported logo content type %q", ErrValidationFailed, contentType)
	}

	key := path.Join("team-logos", fmt.Sprintf("%d-%s%s", teamID, uuid.NewString(), ext))
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, s.mapTeamError(err)
	}
	if oldKey != nil && *oldKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous team logo",
				slog.String("key", *oldKey), slog.String("error", delErr.Error()))
		}
	}

	team.LogoKey = &result.Key
	s.resolveLogoURL(team)
	return team, nil
}

func (s *teamService) RemoveLogo(ctx context.Context, teamID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return s.mapTeamError(err)
	}
	if team.LogoKey == nil {
		return nil
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, nil); err != nil {
		return s.mapTeamError(err)
	}
	if s.uploader != nil {
		if delErr := s.uploader.Delete(ctx, *team.LogoKey); delErr != nil {
			s.logger.Warn("failed to delete team logo",
				slog.String("key", *team.LogoKey), slog.String("error", delErr.Error()))
		}
	}
	return nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return s.mapTeamError(err)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return s.mapTeamError(err)
	}
	if team.LogoKey != nil && s.uploader != nil {
		if delErr := s.uploader.Delete(ctx, *team.LogoKey); delErr != nil {
			s.logger.Warn("failed to delete team logo",
				slog.String("key", *team.LogoKey), slog.String("error", delErr.Error()))
		}
	}
	return nil
}

func (s *teamService) resolveLogoURL(team *models.Team) {
	if team.LogoKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	if url != "" {
		team.LogoURL = &url
	}
}

func (s *teamService) mapTeamError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamSeasonInvalid):
		return ErrSeasonNotFound
	case errors.Is(err, repositories.ErrTeamCaptainInvalid):
		return ErrCaptainNotTeamMember
	}
	return err
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	}
	return ""
}

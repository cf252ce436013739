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

type MatchInput struct {
	SeasonID   int        `json:"season_id"`
	HomeTeamID int        `json:"home_team_id"`
	AwayTeamID int        `json:"away_team_id"`
	Round      *int       `json:"round,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
}

type MatchService interface {
	Schedule(ctx context.Context, input MatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// GetDetail loads a match together with its games and per-game events.
	GetDetail(ctx context.Context, id int) (*models.Match, error)
	ListBySeason(ctx context.Context, seasonID int, status *models.MatchStatus) ([]*models.Match, error)
	Reschedule(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	gameRepo  repositories.GameRepository
	eventRepo repositories.GameEventRepository
	logger    *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	eventRepo repositories.GameEventRepository,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		gameRepo:  gameRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (s *matchService) validateMatchInput(ctx context.Context, input MatchInput) error {
	if input.SeasonID < 1 {
		return fmt.Errorf("%w: a match must belong to a season", ErrValidationFailed)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return ErrMatchTeamsNotDistinct
	}
	for _, teamID := range []int{input.HomeTeamID, input.AwayTeamID} {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		if team.SeasonID != input.SeasonID {
			return fmt.Errorf("%w: team %d does not play in season %d", ErrValidationFailed, teamID, input.SeasonID)
		}
	}
	return nil
}

func (s *matchService) Schedule(ctx context.Context, input MatchInput) (*models.Match, error) {
	if err := s.validateMatchInput(ctx, input); err != nil {
		return nil, err
	}

	match := &models.Match{
		SeasonID:   input.SeasonID,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		Round:      input.Round,
		StartTime:  input.StartTime,
		Status:     models.MatchStatusScheduled,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, s.mapMatchError(err)
	}

	s.logger.Info("match scheduled",
		slog.Int("match_id", match.ID),
		slog.Int("home_team_id", match.HomeTeamID),
		slog.Int("away_team_id", match.AwayTeamID))
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, s.mapMatchError(err)
	}
	return match, nil
}

func (s *matchService) GetDetail(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	games, err := s.gameRepo.ListByMatch(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByMatch(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	eventsByGame := make(map[int][]models.GameEvent, len(games))
	for _, ev := range events {
		eventsByGame[ev.GameID] = append(eventsByGame[ev.GameID], *ev)
	}
	match.Games = make([]models.Game, 0, len(games))
	for _, g := range games {
		game := *g
		game.Events = eventsByGame[g.ID]
		match.Games = append(match.Games, game)
	}

	if homeTeam, err := s.teamRepo.GetByID(ctx, match.HomeTeamID); err == nil {
		match.HomeTeam = homeTeam
	}
	if awayTeam, err := s.teamRepo.GetByID(ctx, match.AwayTeamID); err == nil {
		match.AwayTeam = awayTeam
	}
	return match, nil
}

func (s *matchService) ListBySeason(ctx context.Context, seasonID int, status *models.MatchStatus) ([]*models.Match, error) {
	return s.matchRepo.ListBySeason(ctx, seasonID, status)
}

func (s *matchService) Reschedule(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.SeasonID == 0 {
		input.SeasonID = match.SeasonID
	}
	if input.SeasonID != match.SeasonID {
		return nil, fmt.Errorf("%w: a match cannot move between seasons", ErrValidationFailed)
	}
	if err := s.validateMatchInput(ctx, input); err != nil {
		return nil, err
	}

	match.HomeTeamID = input.HomeTeamID
	match.AwayTeamID = input.AwayTeamID
	match.Round = input.Round
	match.StartTime = input.StartTime
	if err := s.matchRepo.UpdateSchedule(ctx, match); err != nil {
		return nil, s.mapMatchError(err)
	}
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	return s.mapMatchError(s.matchRepo.Delete(ctx, id))
}

func (s *matchService) mapMatchError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchSeasonInvalid):
		return ErrSeasonNotFound
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return ErrTeamNotFound
	}
	return err
}

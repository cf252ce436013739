package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/dartsliga/league-system/league"
	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
)

type StandingsService interface {
	// GetTable computes the season standings from completed matches.
	GetTable(ctx context.Context, seasonID int) ([]league.TableRow, error)
	// GetCurrentTable computes the standings of the active season.
	GetCurrentTable(ctx context.Context) ([]league.TableRow, error)
}

type standingsService struct {
	seasonRepo repositories.SeasonRepository
	teamRepo   repositories.TeamRepository
	matchRepo  repositories.MatchRepository
}

func NewStandingsService(
	seasonRepo repositories.SeasonRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
	}
}

func (s *standingsService) GetTable(ctx context.Context, seasonID int) ([]league.TableRow, error) {
	if _, err := s.seasonRepo.GetByID(ctx, seasonID); err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	var (
		teams   []*models.Team
		matches []*models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListBySeason(gctx, seasonID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListCompletedBySeason(gctx, seasonID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	teamSeeds := make([]league.TeamSeed, 0, len(teams))
	for _, t := range teams {
		teamSeeds = append(teamSeeds, league.TeamSeed{ID: t.ID, Name: t.Name})
	}

	matchSeeds := make([]league.MatchSeed, 0, len(matches))
	for _, m := range matches {
		// The repository filters on result and end_time, but a defensive
		// check keeps a malformed row out of the table.
		if m.Result == nil || m.EndTime == nil {
			continue
		}
		matchSeeds = append(matchSeeds, league.MatchSeed{
			HomeTeamID:  m.HomeTeamID,
			AwayTeamID:  m.AwayTeamID,
			HomeLegs:    m.Result.HomeLegs,
			AwayLegs:    m.Result.AwayLegs,
			CompletedAt: *m.EndTime,
		})
	}

	return league.BuildTable(teamSeeds, matchSeeds), nil
}

func (s *standingsService) GetCurrentTable(ctx context.Context) ([]league.TableRow, error) {
	season, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNoActiveSeason) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}
	return s.GetTable(ctx, season.ID)
}

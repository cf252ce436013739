package services

import (
	"context"
	"errors"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
)

// PlayerStatsEntry joins a stats row with its player for leaderboard views.
type PlayerStatsEntry struct {
	Player *models.Player      `json:"player"`
	Stats  *models.PlayerStats `json:"stats"`
}

type StatsService interface {
	// SeasonLeaderboard returns a season's player stats ordered by BPI.
	SeasonLeaderboard(ctx context.Context, seasonID int) ([]PlayerStatsEntry, error)
	// TeamStats returns one team's player stats for a season, ordered by BPI.
	TeamStats(ctx context.Context, teamID, seasonID int) ([]PlayerStatsEntry, error)
	PlayerStats(ctx context.Context, playerID, seasonID int) (*PlayerStatsEntry, error)
}

type statsService struct {
	statsRepo  repositories.PlayerStatsRepository
	playerRepo repositories.PlayerRepository
}

func NewStatsService(statsRepo repositories.PlayerStatsRepository, playerRepo repositories.PlayerRepository) StatsService {
	return &statsService{statsRepo: statsRepo, playerRepo: playerRepo}
}

func (s *statsService) SeasonLeaderboard(ctx context.Context, seasonID int) ([]PlayerStatsEntry, error) {
	statsList, err := s.statsRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return s.joinPlayers(ctx, statsList)
}

func (s *statsService) TeamStats(ctx context.Context, teamID, seasonID int) ([]PlayerStatsEntry, error) {
	statsList, err := s.statsRepo.ListByTeam(ctx, teamID, seasonID)
	if err != nil {
		return nil, err
	}
	return s.joinPlayers(ctx, statsList)
}

func (s *statsService) PlayerStats(ctx context.Context, playerID, seasonID int) (*PlayerStatsEntry, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	stats, err := s.statsRepo.GetByPlayerAndSeason(ctx, nil, playerID, seasonID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerStatsNotFound) {
			// A player without recorded games has an all-zero line.
			stats = &models.PlayerStats{PlayerID: playerID, SeasonID: seasonID}
		} else {
			return nil, err
		}
	}
	return &PlayerStatsEntry{Player: player, Stats: stats}, nil
}

func (s *statsService) joinPlayers(ctx context.Context, statsList []*models.PlayerStats) ([]PlayerStatsEntry, error) {
	ids := make([]int, 0, len(statsList))
	for _, st := range statsList {
		ids = append(ids, st.PlayerID)
	}
	players, err := s.playerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	entries := make([]PlayerStatsEntry, 0, len(statsList))
	for _, st := range statsList {
		entries = append(entries, PlayerStatsEntry{Player: byID[st.PlayerID], Stats: st})
	}
	return entries, nil
}

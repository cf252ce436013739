package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dartsliga/league-system/models"
)

var ErrPlayerStatsNotFound = errors.New("player stats not found")

type PlayerStatsRepository interface {
	Create(ctx context.Context, exec SQLExecutor, stats *models.PlayerStats) error
	GetByPlayerAndSeason(ctx context.Context, exec SQLExecutor, playerID, seasonID int) (*models.PlayerStats, error)
	GetOrCreate(ctx context.Context, exec SQLExecutor, playerID, seasonID int) (*models.PlayerStats, error)
	Update(ctx context.Context, exec SQLExecutor, stats *models.PlayerStats) error
	ListBySeason(ctx context.Context, seasonID int) ([]*models.PlayerStats, error)
	ListByTeam(ctx context.Context, teamID, seasonID int) ([]*models.PlayerStats, error)
}

type postgresPlayerStatsRepository struct {
	db *sql.DB
}

func NewPostgresPlayerStatsRepository(db *sql.DB) PlayerStatsRepository {
	return &postgresPlayerStatsRepository{db: db}
}

func (r *postgresPlayerStatsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerStatsColumns = `
	id, player_id, season_id,
	games_played, games_won, singles_played, singles_won, legs_won, legs_lost,
	score_95, score_133, score_170,
	checkout_3, checkout_4, checkout_5, checkout_6,
	highest_checkout, bpi, hsl_index, updated_at`

func (r *postgresPlayerStatsRepository) Create(ctx context.Context, exec SQLExecutor, stats *models.PlayerStats) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO player_stats
			(player_id, season_id,
			 games_played, games_won, singles_played, singles_won, legs_won, legs_lost,
			 score_95, score_133, score_170,
			 checkout_3, checkout_4, checkout_5, checkout_6,
			 highest_checkout, bpi, hsl_index, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`

	if stats.UpdatedAt.IsZero() {
		stats.UpdatedAt = time.Now()
	}
	return executor.QueryRowContext(ctx, query,
		stats.PlayerID, stats.SeasonID,
		stats.GamesPlayed, stats.GamesWon, stats.SinglesPlayed, stats.SinglesWon,
		stats.LegsWon, stats.LegsLost,
		stats.Score95, stats.Score133, stats.Score170,
		stats.Checkout3, stats.Checkout4, stats.Checkout5, stats.Checkout6,
		stats.HighestCheckout, stats.BPI, stats.HSLIndex, stats.UpdatedAt,
	).Scan(&stats.ID)
}

func (r *postgresPlayerStatsRepository) GetByPlayerAndSeason(ctx context.Context, exec SQLExecutor, playerID, seasonID int) (*models.PlayerStats, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + playerStatsColumns + ` FROM player_stats WHERE player_id = $1 AND season_id = $2`
	return r.scanStats(executor.QueryRowContext(ctx, query, playerID, seasonID))
}

func (r *postgresPlayerStatsRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, playerID, seasonID int) (*models.PlayerStats, error) {
	stats, err := r.GetByPlayerAndSeason(ctx, exec, playerID, seasonID)
	if err != nil {
		if errors.Is(err, ErrPlayerStatsNotFound) {
			fresh := &models.PlayerStats{
				PlayerID:  playerID,
				SeasonID:  seasonID,
				UpdatedAt: time.Now(),
			}
			if createErr := r.Create(ctx, exec, fresh); createErr != nil {
				return nil, fmt.Errorf("failed to create stats for player %d season %d: %w", playerID, seasonID, createErr)
			}
			return fresh, nil
		}
		return nil, fmt.Errorf("failed to get stats for player %d season %d: %w", playerID, seasonID, err)
	}
	return stats, nil
}

func (r *postgresPlayerStatsRepository) Update(ctx context.Context, exec SQLExecutor, stats *models.PlayerStats) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE player_stats SET
			games_played = $1, games_won = $2, singles_played = $3, singles_won = $4,
			legs_won = $5, legs_lost = $6,
			score_95 = $7, score_133 = $8, score_170 = $9,
			checkout_3 = $10, checkout_4 = $11, checkout_5 = $12, checkout_6 = $13,
			highest_checkout = $14, bpi = $15, hsl_index = $16, updated_at = $17
		WHERE id = $18`

	stats.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, query,
		stats.GamesPlayed, stats.GamesWon, stats.SinglesPlayed, stats.SinglesWon,
		stats.LegsWon, stats.LegsLost,
		stats.Score95, stats.Score133, stats.Score170,
		stats.Checkout3, stats.Checkout4, stats.Checkout5, stats.Checkout6,
		stats.HighestCheckout, stats.BPI, stats.HSLIndex, stats.UpdatedAt,
		stats.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerStatsNotFound)
}

func (r *postgresPlayerStatsRepository) ListBySeason(ctx context.Context, seasonID int) ([]*models.PlayerStats, error) {
	query := `SELECT ` + playerStatsColumns + ` FROM player_stats WHERE season_id = $1 ORDER BY bpi DESC, singles_won DESC`
	return r.queryStats(ctx, query, seasonID)
}

func (r *postgresPlayerStatsRepository) ListByTeam(ctx context.Context, teamID, seasonID int) ([]*models.PlayerStats, error) {
	query := `
		SELECT ps.id, ps.player_id, ps.season_id,
			ps.games_played, ps.games_won, ps.singles_played, ps.singles_won, ps.legs_won, ps.legs_lost,
			ps.score_95, ps.score_133, ps.score_170,
			ps.checkout_3, ps.checkout_4, ps.checkout_5, ps.checkout_6,
			ps.highest_checkout, ps.bpi, ps.hsl_index, ps.updated_at
		FROM player_stats ps
		JOIN players p ON p.id = ps.player_id
		WHERE p.team_id = $1 AND ps.season_id = $2
		ORDER BY ps.bpi DESC`
	return r.queryStats(ctx, query, teamID, seasonID)
}

func (r *postgresPlayerStatsRepository) queryStats(ctx context.Context, query string, args ...interface{}) ([]*models.PlayerStats, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats: %w", err)
	}
	defer rows.Close()

	statsList := make([]*models.PlayerStats, 0)
	for rows.Next() {
		stats, scanErr := r.scanStats(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		statsList = append(statsList, stats)
	}
	return statsList, rows.Err()
}

func (r *postgresPlayerStatsRepository) scanStats(row interface{ Scan(...interface{}) error }) (*models.PlayerStats, error) {
	var s models.PlayerStats
	err := row.Scan(
		&s.ID, &s.PlayerID, &s.SeasonID,
		&s.GamesPlayed, &s.GamesWon, &s.SinglesPlayed, &s.SinglesWon, &s.LegsWon, &s.LegsLost,
		&s.Score95, &s.Score133, &s.Score170,
		&s.Checkout3, &s.Checkout4, &s.Checkout5, &s.Checkout6,
		&s.HighestCheckout, &s.BPI, &s.HSLIndex, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerStatsNotFound
		}
		return nil, fmt.Errorf("failed to scan player stats: %w", err)
	}
	return &s, nil
}

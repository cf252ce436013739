package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dartsliga/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameMatchInvalid = errors.New("game match conflict or invalid")
)

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Game, error)
	// DeleteByMatch removes every game of a match; dependent game events go
	// with them via ON DELETE CASCADE.
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO games (match_id, position, type, format, result, participants)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		game.MatchID, game.Position, game.Type, game.Format,
		game.Result, game.Participants,
	).Scan(&game.ID, &game.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "games_match_id_fkey" {
			return ErrGameMatchInvalid
		}
		return fmt.Errorf("failed to create game at position %d: %w", game.Position, err)
	}
	return nil
}

func (r *postgresGameRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Game, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, position, type, format, result, participants, created_at
		FROM games
		WHERE match_id = $1
		ORDER BY position ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games for match %d: %w", matchID, err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		var g models.Game
		if scanErr := rows.Scan(
			&g.ID, &g.MatchID, &g.Position, &g.Type, &g.Format,
			&g.Result, &g.Participants, &g.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", scanErr)
		}
		games = append(games, &g)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM games WHERE match_id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete games for match %d: %w", matchID, err)
	}
	return nil
}

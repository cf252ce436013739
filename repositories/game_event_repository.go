package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dartsliga/league-system/models"
)

var ErrGameEventNotFound = errors.New("game event not found")

type GameEventRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, events []*models.GameEvent) error
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.GameEvent, error)
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
}

type postgresGameEventRepository struct {
	db *sql.DB
}

func NewPostgresGameEventRepository(db *sql.DB) GameEventRepository {
	return &postgresGameEventRepository{db: db}
}

func (r *postgresGameEventRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameEventRepository) CreateBatch(ctx context.Context, exec SQLExecutor, events []*models.GameEvent) error {
	if len(events) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO game_events (game_id, player_id, kind, value)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for _, ev := range events {
		if err := executor.QueryRowContext(ctx, query,
			ev.GameID, ev.PlayerID, ev.Kind, ev.Value,
		).Scan(&ev.ID); err != nil {
			return fmt.Errorf("failed to create game event (game %d, player %d): %w", ev.GameID, ev.PlayerID, err)
		}
	}
	return nil
}

func (r *postgresGameEventRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.GameEvent, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT ge.id, ge.game_id, ge.player_id, ge.kind, ge.value
		FROM game_events ge
		JOIN games g ON g.id = ge.game_id
		WHERE g.match_id = $1
		ORDER BY ge.id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game events for match %d: %w", matchID, err)
	}
	defer rows.Close()

	events := make([]*models.GameEvent, 0)
	for rows.Next() {
		var ev models.GameEvent
		if scanErr := rows.Scan(&ev.ID, &ev.GameID, &ev.PlayerID, &ev.Kind, &ev.Value); scanErr != nil {
			return nil, fmt.Errorf("failed to scan game event row: %w", scanErr)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func (r *postgresGameEventRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	executor := r.getExecutor(exec)
	query := `
		DELETE FROM game_events
		WHERE game_id IN (SELECT id FROM games WHERE match_id = $1)`

	if _, err := executor.ExecContext(ctx, query, matchID); err != nil {
		return fmt.Errorf("failed to delete game events for match %d: %w", matchID, err)
	}
	return nil
}

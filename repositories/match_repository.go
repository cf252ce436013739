package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dartsliga/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchSeasonInvalid = errors.New("match season conflict or invalid")
	ErrMatchTeamInvalid   = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	// GetByIDForUpdate locks the match row for the duration of the caller's
	// transaction, serializing concurrent detailed-result submissions.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListBySeason(ctx context.Context, seasonID int, status *models.MatchStatus) ([]*models.Match, error)
	// ListCompletedBySeason returns completed matches with a result payload,
	// ordered by completion time ascending.
	ListCompletedBySeason(ctx context.Context, seasonID int) ([]*models.Match, error)
	UpdateSchedule(ctx context.Context, match *models.Match) error
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, result *models.MatchResult, status models.MatchStatus, startTime, endTime *time.Time) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, season_id, home_team_id, away_team_id, round, start_time, end_time, status, result, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (season_id, home_team_id, away_team_id, round, start_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.SeasonID, match.HomeTeamID, match.AwayTeamID,
		match.Round, match.StartTime, match.Status,
	).Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListBySeason(ctx context.Context, seasonID int, status *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE season_id = $1`)

	args := []interface{}{seasonID}
	if status != nil {
		queryBuilder.WriteString(` AND status = $` + strconv.Itoa(len(args)+1))
		args = append(args, *status)
	}
	queryBuilder.WriteString(` ORDER BY round ASC NULLS LAST, start_time ASC NULLS LAST, id ASC`)

	return r.queryMatches(ctx, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListCompletedBySeason(ctx context.Context, seasonID int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE season_id = $1 AND status = $2 AND end_time IS NOT NULL AND result IS NOT NULL
		ORDER BY end_time ASC, id ASC`
	return r.queryMatches(ctx, query, seasonID, models.MatchStatusCompleted)
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET home_team_id = $1, away_team_id = $2, round = $3, start_time = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		match.HomeTeamID, match.AwayTeamID, match.Round, match.StartTime, match.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, result *models.MatchResult, status models.MatchStatus, startTime, endTime *time.Time) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET result = $1, status = $2, start_time = $3, end_time = $4
		WHERE id = $5`

	var resultArg interface{}
	if result != nil {
		resultArg = *result
	}
	res, err := executor.ExecContext(ctx, query, resultArg, status, startTime, endTime, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	var rawResult []byte
	err := row.Scan(
		&m.ID, &m.SeasonID, &m.HomeTeamID, &m.AwayTeamID,
		&m.Round, &m.StartTime, &m.EndTime, &m.Status, &rawResult, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	if rawResult != nil {
		var result models.MatchResult
		if err := result.Scan(rawResult); err != nil {
			return nil, fmt.Errorf("failed to decode match result payload: %w", err)
		}
		m.Result = &result
	}
	return &m, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matches_season_id_fkey":
			return ErrMatchSeasonInvalid
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey", "matches_distinct_teams_check":
			return ErrMatchTeamInvalid
		}
	}
	return err
}

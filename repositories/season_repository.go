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
	ErrSeasonNotFound     = errors.New("season not found")
	ErrSeasonNameConflict = errors.New("season name already exists")
	ErrNoActiveSeason     = errors.New("no active season")
)

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id int) (*models.Season, error)
	GetActive(ctx context.Context) (*models.Season, error)
	List(ctx context.Context) ([]*models.Season, error)
	Update(ctx context.Context, season *models.Season) error
	Activate(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, id int) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) Create(ctx context.Context, season *models.Season) error {
	query := `
		INSERT INTO seasons (name, start_date, end_date, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		season.Name, season.StartDate, season.EndDate, season.Active,
	).Scan(&season.ID, &season.CreatedAt)
	return r.handleSeasonError(err)
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id int) (*models.Season, error) {
	query := `
		SELECT id, name, start_date, end_date, active, created_at
		FROM seasons WHERE id = $1`

	return r.scanSeason(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSeasonRepository) GetActive(ctx context.Context) (*models.Season, error) {
	query := `
		SELECT id, name, start_date, end_date, active, created_at
		FROM seasons WHERE active = TRUE`

	season, err := r.scanSeason(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, ErrSeasonNotFound) {
		return nil, ErrNoActiveSeason
	}
	return season, err
}

func (r *postgresSeasonRepository) List(ctx context.Context) ([]*models.Season, error) {
	query := `
		SELECT id, name, start_date, end_date, active, created_at
		FROM seasons ORDER BY start_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	seasons := make([]*models.Season, 0)
	for rows.Next() {
		season, scanErr := r.scanSeason(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

func (r *postgresSeasonRepository) Update(ctx context.Context, season *models.Season) error {
	query := `
		UPDATE seasons SET name = $1, start_date = $2, end_date = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		season.Name, season.StartDate, season.EndDate, season.ID)
	if err != nil {
		return r.handleSeasonError(err)
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

// Activate flips the currently active season off and the given one on inside
// the caller's transaction, keeping the at-most-one-active invariant.
func (r *postgresSeasonRepository) Activate(ctx context.Context, exec SQLExecutor, id int) error {
	if _, err := exec.ExecContext(ctx, `UPDATE seasons SET active = FALSE WHERE active = TRUE`); err != nil {
		return fmt.Errorf("failed to deactivate current season: %w", err)
	}
	result, err := exec.ExecContext(ctx, `UPDATE seasons SET active = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to activate season %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) scanSeason(row interface{ Scan(...interface{}) error }) (*models.Season, error) {
	var s models.Season
	err := row.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to scan season: %w", err)
	}
	return &s, nil
}

func (r *postgresSeasonRepository) handleSeasonError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Constraint == "seasons_name_key" {
			return ErrSeasonNameConflict
		}
	}
	return err
}

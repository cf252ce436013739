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
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNameConflict   = errors.New("team name is already in use")
	ErrTeamSeasonInvalid  = errors.New("team season conflict or invalid")
	ErrTeamCaptainInvalid = errors.New("team captain conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListBySeason(ctx context.Context, seasonID int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateCaptain(ctx context.Context, teamID int, captainID *int) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	UpdatePinHash(ctx context.Context, teamID int, pinHash string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, season_id, name, short_code, city, captain_id, pin_hash, logo_key, created_at`

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (season_id, name, short_code, city, captain_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.SeasonID, team.Name, team.ShortCode, team.City, team.CaptainID,
	).Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) ListBySeason(ctx context.Context, seasonID int) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE season_id = $1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for season %d: %w", seasonID, err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := r.scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET name = $1, short_code = $2, city = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, team.Name, team.ShortCode, team.City, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateCaptain(ctx context.Context, teamID int, captainID *int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET captain_id = $1 WHERE id = $2`, captainID, teamID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdatePinHash(ctx context.Context, teamID int, pinHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET pin_hash = $1 WHERE id = $2`, pinHash, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(
		&t.ID, &t.SeasonID, &t.Name, &t.ShortCode, &t.City,
		&t.CaptainID, &t.PinHash, &t.LogoKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return &t, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "teams_season_id_name_key":
			return ErrTeamNameConflict
		case "teams_season_id_fkey":
			return ErrTeamSeasonInvalid
		case "teams_captain_id_fkey":
			return ErrTeamCaptainInvalid
		}
	}
	return err
}

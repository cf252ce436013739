package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
)

type SeasonInput struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type SeasonService interface {
	Create(ctx context.Context, input SeasonInput) (*models.Season, error)
	GetByID(ctx context.Context, id int) (*models.Season, error)
	// Current returns the single active season.
	Current(ctx context.Context) (*models.Season, error)
	List(ctx context.Context) ([]*models.Season, error)
	Update(ctx context.Context, id int, input SeasonInput) (*models.Season, error)
	// Activate makes the given season the active one, deactivating any other.
	Activate(ctx context.Context, id int) (*models.Season, error)
	Delete(ctx context.Context, id int) error
}

type seasonService struct {
	seasonRepo repositories.SeasonRepository
	txManager  repositories.TxManager
	logger     *slog.Logger
}

func NewSeasonService(seasonRepo repositories.SeasonRepository, txManager repositories.TxManager, logger *slog.Logger) SeasonService {
	return &seasonService{seasonRepo: seasonRepo, txManager: txManager, logger: logger}
}

func validateSeasonInput(input SeasonInput) error {
	if input.Name == "" {
		return ErrValidationFailed
	}
	if !input.EndDate.After(input.StartDate) {
		return ErrSeasonDateRangeInvalid
	}
	return nil
}

func (s *seasonService) Create(ctx context.Context, input SeasonInput) (*models.Season, error) {
	if err := validateSeasonInput(input); err != nil {
		return nil, err
	}

	season := &models.Season{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		return nil, s.mapSeasonError(err)
	}

	s.logger.Info("season created", slog.Int("season_id", season.ID), slog.String("name", season.Name))
	return season, nil
}

func (s *seasonService) GetByID(ctx context.Context, id int) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapSeasonError(err)
	}
	return season, nil
}

func (s *seasonService) Current(ctx context.Context) (*models.Season, error) {
	season, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return nil, s.mapSeasonError(err)
	}
	return season, nil
}

func (s *seasonService) List(ctx context.Context) ([]*models.Season, error) {
	return s.seasonRepo.List(ctx)
}

func (s *seasonService) Update(ctx context.Context, id int, input SeasonInput) (*models.Season, error) {
	if err := validateSeasonInput(input); err != nil {
		return nil, err
	}

	season, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapSeasonError(err)
	}

	season.Name = input.Name
	season.StartDate = input.StartDate
	season.EndDate = input.EndDate
	if err := s.seasonRepo.Update(ctx, season); err != nil {
		return nil, s.mapSeasonError(err)
	}
	return season, nil
}

func (s *seasonService) Activate(ctx context.Context, id int) (*models.Season, error) {
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.seasonRepo.Activate(ctx, exec, id)
	})
	if err != nil {
		return nil, s.mapSeasonError(err)
	}

	s.logger.Info("season activated", slog.Int("season_id", id))
	return s.GetByID(ctx, id)
}

func (s *seasonService) Delete(ctx context.Context, id int) error {
	if err := s.seasonRepo.Delete(ctx, id); err != nil {
		return s.mapSeasonError(err)
	}
	return nil
}

func (s *seasonService) mapSeasonError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSeasonNotFound):
		return ErrSeasonNotFound
	case errors.Is(err, repositories.ErrSeasonNameConflict):
		return ErrSeasonNameConflict
	case errors.Is(err, repositories.ErrNoActiveSeason):
		return ErrNoActiveSeason
	}
	return err
}

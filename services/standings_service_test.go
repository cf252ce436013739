package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dartsliga/league-system/models"
)

func TestStandingsService(t *testing.T) {
	store := newFakeStore()
	store.seasons[1] = &models.Season{ID: 1, Name: "2026/27", Active: true}
	store.teams[1] = &models.Team{ID: 1, SeasonID: 1, Name: "Bulls Eye"}
	store.teams[2] = &models.Team{ID: 2, SeasonID: 1, Name: "Triple Trouble"}
	store.teams[3] = &models.Team{ID: 3, SeasonID: 1, Name: "Oche Raiders"}

	completed := func(id, home, away, homeLegs, awayLegs int, end time.Time) *models.Match {
		homePoints, awayPoints := 3, 0
		if homeLegs < awayLegs {
			homePoints, awayPoints = 0, 3
		}
		return &models.Match{
			ID: id, SeasonID: 1, HomeTeamID: home, AwayTeamID: away,
			Status:  models.MatchStatusCompleted,
			EndTime: &end,
			Result: &models.MatchResult{
				HomeLegs: homeLegs, AwayLegs: awayLegs,
				HomePoints: homePoints, AwayPoints: awayPoints,
			},
		}
	}
	base := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	store.matches[1] = completed(1, 1, 2, 24, 12, base)
	store.matches[2] = completed(2, 3, 1, 19, 20, base.AddDate(0, 0, 7))

	service := NewStandingsService(
		&fakeSeasonRepo{store: store},
		&fakeTeamRepo{store: store},
		&fakeMatchRepo{store: store},
	)

	table, err := service.GetCurrentTable(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentTable: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("table has %d rows, want 3", len(table))
	}

	// Team 1: clear win plus a one-leg away win, 3 + 2 points.
	if table[0].TeamID != 1 || table[0].Points != 5 {
		t.Errorf("top row = team %d with %d points, want team 1 with 5", table[0].TeamID, table[0].Points)
	}
	// Team 3 holds a penalty point, team 2 has none.
	if table[1].TeamID != 3 || table[1].Points != 1 {
		t.Errorf("second row = team %d with %d points, want team 3 with 1", table[1].TeamID, table[1].Points)
	}
	if table[2].TeamID != 2 || table[2].Played != 1 {
		t.Errorf("third row = team %d played %d, want team 2 played 1", table[2].TeamID, table[2].Played)
	}

	if _, err := service.GetTable(context.Background(), 404); !errors.Is(err, ErrSeasonNotFound) {
		t.Errorf("unknown season err = %v, want ErrSeasonNotFound", err)
	}
}

func TestStandingsServiceNoActiveSeason(t *testing.T) {
	store := newFakeStore()
	service := NewStandingsService(
		&fakeSeasonRepo{store: store},
		&fakeTeamRepo{store: store},
		&fakeMatchRepo{store: store},
	)
	if _, err := service.GetCurrentTable(context.Background()); !errors.Is(err, ErrNoActiveSeason) {
		t.Errorf("err = %v, want ErrNoActiveSeason", err)
	}
}

package league

import (
	"testing"
	"time"
)

func seedTeams() []TeamSeed {
	return []TeamSeed{
		{ID: 1, Name: "Dartpiraten"},
		{ID: 2, Name: "Bullseye Bären"},
		{ID: 3, Name: "Triple Trouble"},
	}
}

func at(day int) time.Time {
	return time.Date(2025, 9, day, 20, 0, 0, 0, time.UTC)
}

func rowByTeam(t *testing.T, table []TableRow, teamID int) TableRow {
	t.Helper()
	for _, row := range table {
		if row.TeamID == teamID {
			return row
		}
	}
	t.Fatalf("team %d not in table", teamID)
	return TableRow{}
}

func TestClassifyPointsLaw(t *testing.T) {
	tests := []struct {
		name       string
		d          int
		homePoints int
		awayPoints int
	}{
		{"clear home win", 12, 3, 0},
		{"clear home win narrow", 2, 3, 0},
		{"penalty home win", 1, 2, 1},
		{"penalty away win", -1, 1, 2},
		{"clear away win", -2, 0, 3},
		{"clear away win wide", -15, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, away := classify(tt.d)
			if home.points != tt.homePoints || away.points != tt.awayPoints {
				t.Errorf("d=%d: got (%d,%d), want (%d,%d)",
					tt.d, home.points, away.points, tt.homePoints, tt.awayPoints)
			}
			if home.points+away.points != 3 {
				t.Errorf("d=%d: points sum %d, want 3", tt.d, home.points+away.points)
			}
		})
	}
}

func TestClassifyDrawFallback(t *testing.T) {
	home, away := classify(0)
	if home.points != 1 || away.points != 1 {
		t.Errorf("d=0: got (%d,%d), want 1-1 fallback", home.points, away.points)
	}
	if home.form != FormDraw || away.form != FormDraw {
		t.Errorf("d=0: form codes %q/%q, want draws", home.form, away.form)
	}
}

func TestBuildTableClearWin(t *testing.T) {
	table := BuildTable(seedTeams(), []MatchSeed{
		{HomeTeamID: 1, AwayTeamID: 2, HomeLegs: 24, AwayLegs: 12, CompletedAt: at(1)},
	})

	home := rowByTeam(t, table, 1)
	away := rowByTeam(t, table, 2)

	if home.Won != 1 || home.Points != 3 || home.Lost != 0 {
		t.Errorf("home row: won=%d points=%d lost=%d", home.Won, home.Points, home.Lost)
	}
	if away.Lost != 1 || away.Points != 0 {
		t.Errorf("away row: lost=%d points=%d", away.Lost, away.Points)
	}
	if home.LegsFor != 24 || home.LegsAgainst != 12 || home.LegDifference != 12 {
		t.Errorf("home legs: for=%d against=%d diff=%d", home.LegsFor, home.LegsAgainst, home.LegDifference)
	}
	if away.LegsFor != 12 || away.LegsAgainst != 24 {
		t.Errorf("away legs: for=%d against=%d", away.LegsFor, away.LegsAgainst)
	}
}

func TestBuildTablePenaltyWin(t *testing.T) {
	table := BuildTable(seedTeams(), []MatchSeed{
		{HomeTeamID: 1, AwayTeamID: 2, HomeLegs: 20, AwayLegs: 19, CompletedAt: at(1)},
	})

	home := rowByTeam(t, table, 1)
	away := rowByTeam(t, table, 2)

	if home.WonPenalty != 1 || home.Points != 2 {
		t.Errorf("home row: wonPenalty=%d points=%d, want 1/2", home.WonPenalty, home.Points)
	}
	if away.LostPenalty != 1 || away.Points != 1 {
		t.Errorf("away row: lostPenalty=%d points=%d, want 1/1", away.LostPenalty, away.Points)
	}
}

func TestBuildTablePlayedConservation(t *testing.T) {
	matches := []MatchSeed{
		{HomeTeamID: 1, AwayTeamID: 2, HomeLegs: 20, AwayLegs: 10, CompletedAt: at(1)},
		{HomeTeamID: 2, AwayTeamID: 3, HomeLegs: 15, AwayLegs: 16, CompletedAt: at(2)},
		{HomeTeamID: 3, AwayTeamID: 1, HomeLegs: 18, AwayLegs: 12, CompletedAt: at(3)},
	}
	table := BuildTable(seedTeams(), matches)

	want := map[int]int{1: 2, 2: 2, 3: 2}
	for teamID, played := range want {
		if row := rowByTeam(t, table, teamID); row.Played != played {
			t.Errorf("team %d: played=%d, want %d", teamID, row.Played, played)
		}
	}
}

func TestBuildTableOrdering(t *testing.T) {
	// Team 1: one clear win (3 pts, +10). Team 3: one penalty win (2 pts).
	// Team 2: penalty loss and clear loss (1 pt).
	matches := []MatchSeed{
		{HomeTeamID: 1, AwayTeamID: 2, HomeLegs: 20, AwayLegs: 10, CompletedAt: at(1)},
		{HomeTeamID: 3, AwayTeamID: 2, HomeLegs: 14, AwayLegs: 13, CompletedAt: at(2)},
	}
	table := BuildTable(seedTeams(), matches)

	wantOrder := []int{1, 3, 2}
	for i, teamID := range wantOrder {
		if table[i].TeamID != teamID {
			t.Fatalf("position %d: team %d, want %d (table %+v)", i, table[i].TeamID, teamID, table)
		}
	}

	// Pairwise ordering invariant across the whole table.
	for i := 0; i < len(table)-1; i++ {
		a, b := table[i], table[i+1]
		if a.Points < b.Points {
			t.Errorf("row %d points %d below row %d points %d", i, a.Points, i+1, b.Points)
		}
		if a.Points == b.Points && a.LegDifference < b.LegDifference {
			t.Errorf("row %d leg difference out of order", i)
		}
	}
}

func TestBuildTableNameTieBreak(t *testing.T) {
	// No matches: every row identical, ordering falls through to team name.
	table := BuildTable(seedTeams(), nil)
	if table[0].TeamName != "Bullseye Bären" || table[1].TeamName != "Dartpiraten" || table[2].TeamName != "Triple Trouble" {
		t.Errorf("name tie-break order: %q, %q, %q", table[0].TeamName, table[1].TeamName, table[2].TeamName)
	}
}

func TestBuildTableFormCappedAndOrdered(t *testing.T) {
	matches := make([]MatchSeed, 0, 7)
	for i := 0; i < 6; i++ {
		// Team 1 wins six in a row against team 2.
		matches = append(matches, MatchSeed{
			HomeTeamID: 1, AwayTeamID: 2, HomeLegs: 20, AwayLegs: 10, CompletedAt: at(i + 1),
		})
	}
	// Most recent match is a penalty loss at home.
	matches = append(matches, MatchSeed{
		HomeTeamID: 1, AwayTeamID: 2, HomeLegs: 12, AwayLegs: 13, CompletedAt: at(20),
	})

	row := rowByTeam(t, BuildTable(seedTeams(), matches), 1)
	if len(row.Form) != formLength {
		t.Fatalf("form length %d, want %d", len(row.Form), formLength)
	}
	if row.Form[0] != FormPenaltyLoss {
		t.Errorf("most recent form code %q, want %q", row.Form[0], FormPenaltyLoss)
	}
	for _, code := range row.Form[1:] {
		if code != FormWin {
			t.Errorf("older form code %q, want %q", code, FormWin)
		}
	}
}

func TestBuildTableSkipsUnknownTeams(t *testing.T) {
	table := BuildTable(seedTeams(), []MatchSeed{
		{HomeTeamID: 1, AwayTeamID: 99, HomeLegs: 20, AwayLegs: 10, CompletedAt: at(1)},
	})
	if row := rowByTeam(t, table, 1); row.Played != 0 {
		t.Errorf("match against unknown team counted: played=%d", row.Played)
	}
}

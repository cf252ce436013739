package league

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// formLength caps the recent-form sequence shown per team.
const formLength = 5

// Points awarded per match outcome. A one-leg margin splits the three points
// between winner and loser instead of awarding them outright.
const (
	pointsClearWin    = 3
	pointsPenaltyWin  = 2
	pointsPenaltyLoss = 1
	pointsClearLoss   = 0
	pointsDraw        = 1
)

// Form codes, most recent first in TableRow.Form.
const (
	FormWin         = "W"
	FormPenaltyWin  = "PW"
	FormPenaltyLoss = "PL"
	FormLoss        = "L"
	FormDraw        = "D"
)

// TeamSeed is the standings input view of a team.
type TeamSeed struct {
	ID   int
	Name string
}

// MatchSeed is the standings input view of one completed match. Callers must
// only pass matches with a decided result payload; CompletedAt orders the
// form sequence.
type MatchSeed struct {
	HomeTeamID  int
	AwayTeamID  int
	HomeLegs    int
	AwayLegs    int
	CompletedAt time.Time
}

// TableRow is one team's standing.
type TableRow struct {
	TeamID        int      `json:"team_id"`
	TeamName      string   `json:"team_name"`
	Played        int      `json:"played"`
	Won           int      `json:"won"`
	WonPenalty    int      `json:"won_penalty"`
	LostPenalty   int      `json:"lost_penalty"`
	Lost          int      `json:"lost"`
	LegsFor       int      `json:"legs_for"`
	LegsAgainst   int      `json:"legs_against"`
	LegDifference int      `json:"leg_difference"`
	Points        int      `json:"points"`
	Form          []string `json:"form"`
}

// outcome is one side's share of a classified match.
type outcome struct {
	points int
	form   string
}

// classify maps the leg difference (home minus away) onto the home and away
// outcomes. A margin of more than one leg is a clear win, exactly one leg a
// penalty win. d == 0 cannot occur with the league's odd card structure; the
// branch mirrors the quick-result draw fallback so a malformed row degrades
// to a 1-1 split instead of corrupting the table.
func classify(d int) (home, away outcome) {
	switch {
	case d > 1:
		return outcome{pointsClearWin, FormWin}, outcome{pointsClearLoss, FormLoss}
	case d == 1:
		return outcome{pointsPenaltyWin, FormPenaltyWin}, outcome{pointsPenaltyLoss, FormPenaltyLoss}
	case d == -1:
		return outcome{pointsPenaltyLoss, FormPenaltyLoss}, outcome{pointsPenaltyWin, FormPenaltyWin}
	case d < -1:
		return outcome{pointsClearLoss, FormLoss}, outcome{pointsClearWin, FormWin}
	default:
		return outcome{pointsDraw, FormDraw}, outcome{pointsDraw, FormDraw}
	}
}

// MatchPoints returns the points split for a completed match with home-minus-
// away leg difference d, following the same law the table uses.
func MatchPoints(d int) (home, away int) {
	homeOut, awayOut := classify(d)
	return homeOut.points, awayOut.points
}

// BuildTable computes the season table from the full team list and the
// completed matches. Counts are order-independent; the form sequence is not,
// so matches are replayed in completion order. Matches referencing unknown
// teams are skipped.
func BuildTable(teams []TeamSeed, matches []MatchSeed) []TableRow {
	rows := make(map[int]*TableRow, len(teams))
	for _, t := range teams {
		rows[t.ID] = &TableRow{TeamID: t.ID, TeamName: t.Name, Form: []string{}}
	}

	ordered := make([]MatchSeed, len(matches))
	copy(ordered, matches)
	slices.SortFunc(ordered, func(a, b MatchSeed) int {
		return a.CompletedAt.Compare(b.CompletedAt)
	})

	for _, m := range ordered {
		home, okHome := rows[m.HomeTeamID]
		away, okAway := rows[m.AwayTeamID]
		if !okHome || !okAway {
			continue
		}

		home.Played++
		away.Played++
		home.LegsFor += m.HomeLegs
		home.LegsAgainst += m.AwayLegs
		away.LegsFor += m.AwayLegs
		away.LegsAgainst += m.HomeLegs

		d := m.HomeLegs - m.AwayLegs
		homeOut, awayOut := classify(d)
		home.Points += homeOut.points
		away.Points += awayOut.points

		switch homeOut.form {
		case FormWin:
			home.Won++
			away.Lost++
		case FormPenaltyWin:
			home.WonPenalty++
			away.LostPenalty++
		case FormPenaltyLoss:
			home.LostPenalty++
			away.WonPenalty++
		case FormLoss:
			home.Lost++
			away.Won++
		}

		prependForm(home, homeOut.form)
		prependForm(away, awayOut.form)
	}

	table := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		row.LegDifference = row.LegsFor - row.LegsAgainst
		table = append(table, *row)
	}

	collator := collate.New(language.German)
	slices.SortFunc(table, func(a, b TableRow) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(b.LegDifference, a.LegDifference); c != 0 {
			return c
		}
		if c := cmp.Compare(b.LegsFor, a.LegsFor); c != 0 {
			return c
		}
		return collator.CompareString(a.TeamName, b.TeamName)
	})

	return table
}

func prependForm(row *TableRow, code string) {
	row.Form = append([]string{code}, row.Form...)
	if len(row.Form) > formLength {
		row.Form = row.Form[:formLength]
	}
}

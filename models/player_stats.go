package models

import (
	"time"

	"github.com/dartsliga/league-system/league"
)

// PlayerStats is the per-(player, season) aggregate. Rows are written only by
// the result reconciler; the two indices are derived from the counters on
// every write and are never set directly.
type PlayerStats struct {
	ID       int `json:"id"`
	PlayerID int `json:"player_id"`
	SeasonID int `json:"season_id"`

	GamesPlayed   int `json:"games_played"`
	GamesWon      int `json:"games_won"`
	SinglesPlayed int `json:"singles_played"`
	SinglesWon    int `json:"singles_won"`
	LegsWon       int `json:"legs_won"`
	LegsLost      int `json:"legs_lost"`

	Score95  int `json:"score_95"`
	Score133 int `json:"score_133"`
	Score170 int `json:"score_170"`

	Checkout3 int `json:"checkout_3"`
	Checkout4 int `json:"checkout_4"`
	Checkout5 int `json:"checkout_5"`
	Checkout6 int `json:"checkout_6"`

	// HighestCheckout is a running maximum; a re-entered match cannot lower it.
	HighestCheckout int `json:"highest_checkout"`

	BPI      float64 `json:"bpi"`
	HSLIndex float64 `json:"hsl_index"`

	UpdatedAt time.Time `json:"updated_at"`
}

// StatLine converts the aggregate into the reconciler's counter shape.
func (s *PlayerStats) StatLine() league.StatLine {
	return league.StatLine{
		GamesPlayed:     s.GamesPlayed,
		GamesWon:        s.GamesWon,
		SinglesPlayed:   s.SinglesPlayed,
		SinglesWon:      s.SinglesWon,
		LegsWon:         s.LegsWon,
		LegsLost:        s.LegsLost,
		Score95:         s.Score95,
		Score133:        s.Score133,
		Score170:        s.Score170,
		Checkout3:       s.Checkout3,
		Checkout4:       s.Checkout4,
		Checkout5:       s.Checkout5,
		Checkout6:       s.Checkout6,
		HighestCheckout: s.HighestCheckout,
	}
}

// SetStatLine writes a reconciled counter set back onto the aggregate and
// recomputes both derived indices.
func (s *PlayerStats) SetStatLine(line league.StatLine) {
	s.GamesPlayed = line.GamesPlayed
	s.GamesWon = line.GamesWon
	s.SinglesPlayed = line.SinglesPlayed
	s.SinglesWon = line.SinglesWon
	s.LegsWon = line.LegsWon
	s.LegsLost = line.LegsLost
	s.Score95 = line.Score95
	s.Score133 = line.Score133
	s.Score170 = line.Score170
	s.Checkout3 = line.Checkout3
	s.Checkout4 = line.Checkout4
	s.Checkout5 = line.Checkout5
	s.Checkout6 = line.Checkout6
	s.HighestCheckout = line.HighestCheckout
	s.BPI = league.BPI(line)
	s.HSLIndex = league.HSLIndex(line)
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dartsliga/league-system/league"
)

// GameResult is the per-game result payload (JSONB). Leg scores are only
// meaningful for singles; the other game types record the winner only.
type GameResult struct {
	Winner   league.Side `json:"winner"`
	HomeLegs int         `json:"home_legs"`
	AwayLegs int         `json:"away_legs"`
}

func (r GameResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *GameResult) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into GameResult", src)
	}
}

// GameParticipants holds the ordered player ids per side (JSONB).
type GameParticipants struct {
	Home []int `json:"home"`
	Away []int `json:"away"`
}

func (p GameParticipants) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *GameParticipants) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into GameParticipants", src)
	}
}

// Game is one slot of a match card. Games are fully deleted and recreated on
// every detailed re-entry of their match, never patched.
type Game struct {
	ID           int              `json:"id"`
	MatchID      int              `json:"match_id"`
	Position     int              `json:"position"` // 1-based order on the card
	Type         league.GameType  `json:"type"`
	Format       string           `json:"format"`
	Result       GameResult       `json:"result"`
	Participants GameParticipants `json:"participants"`
	CreatedAt    time.Time        `json:"created_at"`

	Events []GameEvent `json:"events,omitempty"`
}

// GameEvent is one discrete achievement occurrence in a singles game, one row
// per occurrence. Value is set only for the highest-checkout kind.
type GameEvent struct {
	ID       int              `json:"id"`
	GameID   int              `json:"game_id"`
	PlayerID int              `json:"player_id"`
	Kind     league.EventKind `json:"kind"`
	Value    int              `json:"value,omitempty"`
}

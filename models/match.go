package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// MatchResult is the aggregate result payload stored on the match row as
// JSONB. For quick entries it is the submission itself; for detailed entries
// it is derived from the games.
type MatchResult struct {
	HomeWins      int  `json:"home_wins"`
	AwayWins      int  `json:"away_wins"`
	HomeLegs      int  `json:"home_legs"`
	AwayLegs      int  `json:"away_legs"`
	HomePoints    int  `json:"home_points"`
	AwayPoints    int  `json:"away_points"`
	LegDifference int  `json:"leg_difference"`
	IsQuickResult bool `json:"is_quick_result"`
}

func (r MatchResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *MatchResult) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into MatchResult", src)
	}
}

type Match struct {
	ID         int          `json:"id"`
	SeasonID   int          `json:"season_id"`
	HomeTeamID int          `json:"home_team_id"`
	AwayTeamID int          `json:"away_team_id"`
	Round      *int         `json:"round,omitempty"`
	StartTime  *time.Time   `json:"start_time,omitempty"`
	EndTime    *time.Time   `json:"end_time,omitempty"` // non-nil iff status is completed
	Status     MatchStatus  `json:"status"`
	Result     *MatchResult `json:"result,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`

	HomeTeam *Team  `json:"home_team,omitempty"`
	AwayTeam *Team  `json:"away_team,omitempty"`
	Games    []Game `json:"games,omitempty"`
}

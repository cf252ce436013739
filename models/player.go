package models

import "time"

type PlayerRole string

const (
	PlayerRoleMember  PlayerRole = "player"
	PlayerRoleCaptain PlayerRole = "captain"
)

type Player struct {
	ID        int        `json:"id"`
	TeamID    int        `json:"team_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Nickname  *string    `json:"nickname,omitempty"`
	Role      PlayerRole `json:"role"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

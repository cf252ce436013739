package models

import "time"

// Season groups teams, matches and player statistics. At most one season is
// active at a time; a partial unique index on (active) enforces it.
type Season struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

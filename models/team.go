package models

import "time"

type Team struct {
	ID        int       `json:"id"`
	SeasonID  int       `json:"season_id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code"`
	City      string    `json:"city"`
	CaptainID *int      `json:"captain_id,omitempty"` // must reference a member of this team
	CreatedAt time.Time `json:"created_at"`

	Players []Player `json:"players,omitempty"`

	// PinHash is the bcrypt hash of the captain PIN, never serialized.
	PinHash *string `json:"-"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}

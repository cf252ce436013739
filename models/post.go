package models

import "time"

type PostType string

const (
	PostTypeNews         PostType = "news"
	PostTypeAnnouncement PostType = "announcement"
	PostTypeTournament   PostType = "tournament"
)

// Post is an editorial news item, independent of match data.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	Body      string    `json:"body"`
	Type      PostType  `json:"type"`
	Pinned    bool      `json:"pinned"`
	Published bool      `json:"published"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ImageKey *string `json:"-"`
	ImageURL *string `json:"image_url,omitempty"`
}

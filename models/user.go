package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCaptain UserRole = "captain"
	RolePlayer  UserRole = "player"
)

type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	TeamID       *int      `json:"team_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

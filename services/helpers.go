package services

import "github.com/dartsliga/league-system/models"

// Caller is the resolved identity of a request, extracted from JWT claims by
// the middleware. PIN-issued captain tokens carry a team but no user id.
type Caller struct {
	UserID int
	Role   models.UserRole
	TeamID *int
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// IsCaptainOf reports whether the caller is a captain of the given team.
func (c Caller) IsCaptainOf(teamID int) bool {
	return c.Role == models.RoleCaptain && c.TeamID != nil && *c.TeamID == teamID
}

// canEnterResult implements the result-entry rule: administrators always,
// captains only for their own team's matches.
func canEnterResult(caller Caller, match *models.Match) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.IsCaptainOf(match.HomeTeamID) || caller.IsCaptainOf(match.AwayTeamID)
}

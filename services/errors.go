package services

import "errors"

// Shared service errors, mapped onto HTTP statuses in the handlers package.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrPinTooShort            = errors.New("captain PIN is too short")
	ErrSeasonDateRangeInvalid = errors.New("season end date must be after start date")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrCaptainNotTeamMember   = errors.New("captain must be a member of the team")
	ErrMatchTeamsNotDistinct  = errors.New("home and away team must be distinct")
	ErrMatchAlreadyScheduled  = errors.New("match schedule conflict")
	ErrMatchNotCompleted      = errors.New("match is not completed")
	ErrPostTitleRequired      = errors.New("post title is required")
	ErrPostTypeInvalid        = errors.New("invalid post type")

	// Conflicts
	ErrUserEmailConflict  = errors.New("email address is already in use")
	ErrTeamNameConflict   = errors.New("team name is already in use")
	ErrSeasonNameConflict = errors.New("season name already exists")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthInvalidPin         = errors.New("invalid team or captain PIN")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrResultEntryForbidden   = errors.New("only an administrator or a captain of either team can enter results")

	// Entity-specific not-found errors, wrapping repository sentinels
	ErrSeasonNotFound = errors.New("season not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrPostNotFound   = errors.New("post not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrNoActiveSeason = errors.New("no active season configured")
)

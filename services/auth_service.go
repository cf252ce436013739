package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
)

const (
	minPasswordLength = 8
	minPinLength      = 4
)

// Claims is the JWT payload issued by both login paths. Password logins carry
// a user id; captain PIN logins carry a team id and no user.
type Claims struct {
	UserID int             `json:"user_id,omitempty"`
	Role   models.UserRole `json:"role"`
	TeamID *int            `json:"team_id,omitempty"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`

	// Role and TeamID are only honored on the admin user-management path;
	// self-registration always yields a player account.
	Role   models.UserRole `json:"role,omitempty"`
	TeamID *int            `json:"team_id,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (string, *models.User, error)
	// CaptainPinLogin exchanges a team id and its captain PIN for a
	// team-scoped captain token, the venue entry path without an account.
	CaptainPinLogin(ctx context.Context, teamID int, pin string) (string, *models.Team, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

func NewAuthService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrValidationFailed)
	}
	if !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidationFailed)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := input.Role
	if role == "" {
		role = models.RolePlayer
	}
	switch role {
	case models.RoleAdmin, models.RoleCaptain, models.RolePlayer:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		TeamID:       input.TeamID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, err
	}

	s.logger.Info("user registered", slog.Int("user_id", user.ID), slog.String("role", string(user.Role)))
	return user, nil
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", nil, ErrAuthInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return "", nil, ErrAuthInvalidCredentials
	}

	token, err := s.issueToken(Claims{
		UserID: user.ID,
		Role:   user.Role,
		TeamID: user.TeamID,
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) CaptainPinLogin(ctx context.Context, teamID int, pin string) (string, *models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			// Do not reveal whether the team exists.
			return "", nil, ErrAuthInvalidPin
		}
		return "", nil, err
	}
	if team.PinHash == nil {
		return "", nil, ErrAuthInvalidPin
	}
	if bcrypt.CompareHashAndPassword([]byte(*team.PinHash), []byte(pin)) != nil {
		return "", nil, ErrAuthInvalidPin
	}

	token, err := s.issueToken(Claims{
		Role:   models.RoleCaptain,
		TeamID: &team.ID,
	})
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("captain pin login", slog.Int("team_id", team.ID))
	return token, team, nil
}

func (s *authService) issueToken(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

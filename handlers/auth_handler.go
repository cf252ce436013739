package handlers

import (
	"net/http"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
	Team  *models.Team `json:"team,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}
	// Self-registration always yields a player account; roles are assigned
	// by an administrator afterwards.
	input.Role = ""
	input.TeamID = nil

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		respondBadRequest(w, err)
		return
	}

	token, user, err := h.authService.Login(r.Context(), creds)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *AuthHandler) CaptainPinLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TeamID int    `json:"team_id"`
		Pin    string `json:"pin"`
	}
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	token, team, err := h.authService.CaptainPinLogin(r.Context(), input.TeamID, input.Pin)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Team: team})
}

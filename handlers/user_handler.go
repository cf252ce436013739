package handlers

import (
	"net/http"

	"github.com/dartsliga/league-system/middleware"
	"github.com/dartsliga/league-system/services"
)

type UserHandler struct {
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// Create lets an administrator create an account with an explicit role.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Me resolves the authenticated identity. Captain PIN tokens carry no user
// account; for those only the role and team are returned.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if caller.UserID == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"role":    caller.Role,
			"team_id": caller.TeamID,
		})
		return
	}

	user, err := h.userService.GetByID(r.Context(), caller.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "userID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "userID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	var input services.UserUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "userID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := h.userService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

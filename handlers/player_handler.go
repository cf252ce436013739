package handlers

import (
	"net/http"

	"github.com/dartsliga/league-system/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	player, err := h.playerService.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "playerID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *PlayerHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	players, err := h.playerService.ListByTeam(r.Context(), teamID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "playerID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	player, err := h.playerService.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "playerID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := h.playerService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

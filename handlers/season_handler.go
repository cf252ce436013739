package handlers

import (
	"net/http"

	"github.com/dartsliga/league-system/services"
)

type SeasonHandler struct {
	seasonService services.SeasonService
}

func NewSeasonHandler(seasonService services.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.SeasonInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	season, err := h.seasonService.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, season)
}

func (h *SeasonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	season, err := h.seasonService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) Current(w http.ResponseWriter, r *http.Request) {
	season, err := h.seasonService.Current(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasonService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

func (h *SeasonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	var input services.SeasonInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	season, err := h.seasonService.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	season, err := h.seasonService.Activate(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := h.seasonService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

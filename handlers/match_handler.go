package handlers

import (
	"net/http"

	"github.com/dartsliga/league-system/middleware"
	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/services"
)

type MatchHandler struct {
	matchService  services.MatchService
	resultService services.ResultService
}

func NewMatchHandler(matchService services.MatchService, resultService services.ResultService) *MatchHandler {
	return &MatchHandler{matchService: matchService, resultService: resultService}
}

func (h *MatchHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	match, err := h.matchService.Schedule(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "matchID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	match, err := h.matchService.GetDetail(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) ListBySeason(w http.ResponseWriter, r *http.Request) {
	seasonID, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var status *models.MatchStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.MatchStatus(raw)
		if s != models.MatchStatusScheduled && s != models.MatchStatusCompleted {
			respondError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		status = &s
	}

	matches, err := h.matchService.ListBySeason(r.Context(), seasonID, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *MatchHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "matchID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	match, err := h.matchService.Reschedule(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "matchID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := h.matchService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// SubmitQuickResult records an aggregate result for the match.
func (h *MatchHandler) SubmitQuickResult(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "matchID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var input services.QuickResultInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	match, err := h.resultService.SubmitQuickResult(r.Context(), id, input, caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// SubmitDetailedResult replaces the match's game-by-game record.
func (h *MatchHandler) SubmitDetailedResult(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "matchID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var input services.DetailedResultInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	match, err := h.resultService.SubmitDetailedResult(r.Context(), id, input, caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

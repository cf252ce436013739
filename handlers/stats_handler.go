package handlers

import (
	"net/http"

	"github.com/dartsliga/league-system/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) SeasonLeaderboard(w http.ResponseWriter, r *http.Request) {
	seasonID, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	entries, err := h.statsService.SeasonLeaderboard(r.Context(), seasonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *StatsHandler) TeamStats(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	seasonID, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	entries, err := h.statsService.TeamStats(r.Context(), teamID, seasonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *StatsHandler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	playerID, err := urlParamInt(r, "playerID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	seasonID, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	entry, err := h.statsService.PlayerStats(r.Context(), playerID, seasonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

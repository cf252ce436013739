package handlers

import (
	"net/http"

	"github.com/dartsliga/league-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) GetBySeason(w http.ResponseWriter, r *http.Request) {
	seasonID, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	table, err := h.standingsService.GetTable(r.Context(), seasonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *StandingsHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	table, err := h.standingsService.GetCurrentTable(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

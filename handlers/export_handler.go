package handlers

import (
	"fmt"
	"net/http"

	"github.com/dartsliga/league-system/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) MatchReport(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	pdf, err := h.exportService.MatchReportPDF(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	servePDF(w, fmt.Sprintf("match-%d.pdf", matchID), pdf)
}

func (h *ExportHandler) Standings(w http.ResponseWriter, r *http.Request) {
	seasonID, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	pdf, err := h.exportService.StandingsPDF(r.Context(), seasonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	servePDF(w, fmt.Sprintf("standings-%d.pdf", seasonID), pdf)
}

func servePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

package handlers

import (
	"net/http"

	"github.com/dartsliga/league-system/services"
)

const maxUploadBytes = 5 << 20 // 5 MiB

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	team, err := h.teamService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) ListBySeason(w http.ResponseWriter, r *http.Request) {
	seasonID, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	teams, err := h.teamService.ListBySeason(r.Context(), seasonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	team, err := h.teamService.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	var input struct {
		PlayerID *int `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	if err := h.teamService.SetCaptain(r.Context(), id, input.PlayerID); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *TeamHandler) SetPin(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	var input struct {
		Pin string `json:"pin"`
	}
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	if err := h.teamService.SetPin(r.Context(), id, input.Pin); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing logo file")
		return
	}
	defer file.Close()

	team, err := h.teamService.UploadLogo(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) RemoveLogo(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := h.teamService.RemoveLogo(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := h.teamService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dartsliga/league-system/services"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

type errorResponse struct {
	Error string `json:"error"`
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func respondBadRequest(w http.ResponseWriter, err error) {
	respondError(w, http.StatusBadRequest, err.Error())
}

// respondServiceError maps the service error catalogue onto HTTP statuses.
// Unrecognized errors become a 500 without leaking internals.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrPinTooShort),
		errors.Is(err, services.ErrSeasonDateRangeInvalid),
		errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrCaptainNotTeamMember),
		errors.Is(err, services.ErrMatchTeamsNotDistinct),
		errors.Is(err, services.ErrPostTitleRequired),
		errors.Is(err, services.ErrPostTypeInvalid):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrAuthInvalidCredentials),
		errors.Is(err, services.ErrAuthInvalidPin):
		respondError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, services.ErrResultEntryForbidden):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrSeasonNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoActiveSeason):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrUserEmailConflict),
		errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrSeasonNameConflict),
		errors.Is(err, services.ErrMatchAlreadyScheduled):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrMatchNotCompleted):
		respondError(w, http.StatusUnprocessableEntity, err.Error())

	default:
		slog.Error("unhandled service error", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func urlParamInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value < 1 {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return value, nil
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkazantsev/authgate/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleError maps the auth error taxonomy to HTTP statuses. Generic
// failures deliberately carry no detail about the underlying cause.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		writeError(w, http.StatusConflict, model.ErrEmailTaken.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrBiometricKeyNotFound):
		writeError(w, http.StatusUnauthorized, model.ErrBiometricKeyNotFound.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

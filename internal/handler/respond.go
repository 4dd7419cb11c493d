package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/service"
	"github.com/evyataryagoni/geolocate/internal/upstream"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Headers are already sent, nothing useful left to do on failure
	json.NewEncoder(w).Encode(data) // nolint: errcheck
}

// respondError writes an error response with consistent formatting
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, models.ErrorResponse{Error: message})
}

// statusForError maps an error kind to the status code the relay answers with
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCoordinates):
		return http.StatusBadRequest
	case errors.Is(err, upstream.ErrEmptyResult):
		return http.StatusNotFound
	case errors.Is(err, upstream.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, upstream.ErrTransport):
		return http.StatusGatewayTimeout
	case errors.Is(err, upstream.ErrHTTPStatus):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

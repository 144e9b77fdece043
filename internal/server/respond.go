package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jperaza/divvy/internal/middleware"
	"github.com/jperaza/divvy/internal/service"
	"github.com/jperaza/divvy/internal/storage"
)

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps service/storage errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		middleware.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fieldlog/internal/core"
	"fieldlog/internal/repo"
	"fieldlog/internal/transfer"
)

// maxImportBytes bounds the snapshot upload size.
const maxImportBytes = 10 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps the core error taxonomy onto HTTP statuses: validation
// failures are 422, a missing update/delete target is 404, a malformed
// import document is 400, anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, transfer.ErrInvalidDocument):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyLabel),
		errors.Is(err, core.ErrMissingDriver),
		errors.Is(err, core.ErrMissingVehicle),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrNegativeRevenue),
		errors.Is(err, core.ErrInvalidRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// reportReference resolves the reference instant for the rolling reports.
// An explicit at=YYYY-MM-DD query parameter wins over the server clock.
func (s *Server) reportReference(r *http.Request) (time.Time, error) {
	at := r.URL.Query().Get("at")
	if at == "" {
		return s.now(), nil
	}
	t, err := time.Parse(core.DateLayout, at)
	if err != nil {
		return time.Time{}, core.ErrInvalidDate
	}
	return t, nil
}

// dateBounds reads the optional from/to query parameters.
func dateBounds(r *http.Request) (from, to string) {
	q := r.URL.Query()
	return q.Get("from"), q.Get("to")
}

// orEmpty keeps list responses as [] instead of null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

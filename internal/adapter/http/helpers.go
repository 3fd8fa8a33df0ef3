package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trbngr/refdata/internal/domain/outcome"
)

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// rawID extracts the "id" URL parameter as a raw identifier. Input that does
// not parse maps to the reserved zero identifier, which resolves to an
// absent row downstream.
func rawID(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeOutcome translates a resolved lookup onto the wire: a found row is a
// 200 with the row as body, an absent row is a 404, and a failure is a 500
// carrying the failure message.
func writeOutcome[T any](w http.ResponseWriter, out outcome.Outcome[T], notFoundMsg string) {
	switch {
	case out.IsFound():
		v, _ := out.Value()
		writeJSON(w, http.StatusOK, v)
	case out.IsFailed():
		slog.Error("lookup failed", "error", out.Err())
		writeError(w, http.StatusInternalServerError, out.Err().Error())
	default:
		writeError(w, http.StatusNotFound, notFoundMsg)
	}
}

// writeInternalError logs the actual error server-side and returns a generic message to the client.
func writeInternalError(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

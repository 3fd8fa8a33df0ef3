package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/trbngr/refdata/internal/domain/outcome"
)

// ---------------------------------------------------------------------------
// Generic lookup handler factories
// ---------------------------------------------------------------------------

// handleLookup creates a handler that resolves a single row by URL param "id"
// and writes the translated outcome.
func handleLookup[T any](resolveFn func(ctx context.Context, raw uuid.UUID) (outcome.Outcome[T], error), notFoundMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := resolveFn(r.Context(), rawID(r))
		if err != nil {
			// Canceled mid-flight. The client is gone and there is no
			// outcome to report, so nothing gets written.
			return
		}
		writeOutcome(w, out, notFoundMsg)
	}
}

// handleList creates a handler that returns a whole code table as JSON.
func handleList[T any](listFn func(ctx context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := listFn(r.Context())
		if err != nil {
			writeInternalError(w, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

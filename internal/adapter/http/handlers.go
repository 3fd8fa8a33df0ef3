package http

import (
	"net/http"

	"github.com/trbngr/refdata/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Lookups *service.LookupService
}

// GetGender handles GET /api/v1/genders/{id}
func (h *Handlers) GetGender(w http.ResponseWriter, r *http.Request) {
	handleLookup(h.Lookups.Gender, "gender not found")(w, r)
}

// ListGenders handles GET /api/v1/genders
func (h *Handlers) ListGenders(w http.ResponseWriter, r *http.Request) {
	handleList(h.Lookups.Genders)(w, r)
}

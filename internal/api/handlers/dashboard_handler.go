package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/edu2job/edu2job-server/internal/auth"
	"github.com/edu2job/edu2job-server/internal/services"
)

// DashboardHandler serves the guarded dashboard payload.
type DashboardHandler struct {
	service services.DashboardServiceProvider
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service services.DashboardServiceProvider) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get returns the dashboard for the user in the session token.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	writeJSON(w, http.StatusOK, h.service.ForClaims(claims))
}

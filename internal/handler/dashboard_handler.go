package handler

import (
	"net/http"

	"bizintel/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the cached dashboard.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Load(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Refresh handles POST /api/dashboard/refresh.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Refresh(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

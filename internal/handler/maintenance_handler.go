package handler

import (
	"net/http"

	"bizintel/internal/model"
	"bizintel/internal/service"

	"github.com/rs/zerolog"
)

// MaintenanceHandler serves data quality and housekeeping endpoints.
type MaintenanceHandler struct {
	service service.MaintenanceService
	logger  zerolog.Logger
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(service service.MaintenanceService, logger zerolog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		service: service,
		logger:  logger.With().Str("handler", "maintenance").Logger(),
	}
}

// Stats handles GET /api/maintenance/stats.
func (h *MaintenanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Validate handles GET /api/maintenance/validate.
func (h *MaintenanceHandler) Validate(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Validate(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Clear handles DELETE /api/maintenance/data?confirm=true.
func (h *MaintenanceHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		respondError(w, r, model.ValidationError("clearing all data requires confirm=true"), h.logger)
		return
	}

	if err := h.service.Clear(r.Context()); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("all business data cleared")
	w.WriteHeader(http.StatusNoContent)
}

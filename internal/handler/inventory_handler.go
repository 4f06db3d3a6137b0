package handler

import (
	"net/http"

	"bizintel/internal/service"

	"github.com/rs/zerolog"
)

// InventoryHandler serves stock levels and snapshots.
type InventoryHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "inventory").Logger(),
	}
}

// Status handles GET /api/inventory.
func (h *InventoryHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// LowStock handles GET /api/inventory/low-stock.
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.LowStock(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// SnapshotResponse reports how many products were recorded.
type SnapshotResponse struct {
	Recorded int64 `json:"recorded"`
}

// Snapshot handles POST /api/inventory/snapshot.
func (h *InventoryHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Snapshot(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, SnapshotResponse{Recorded: n})
}

// History handles GET /api/inventory/{productId}/history?limit=.
func (h *InventoryHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productId")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	records, err := h.service.History(r.Context(), id, limit)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

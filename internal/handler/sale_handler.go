package handler

import (
	"net/http"

	"bizintel/internal/model"
	"bizintel/internal/service"

	"github.com/rs/zerolog"
)

// SaleHandler handles sale-related HTTP requests.
type SaleHandler struct {
	service service.SaleService
	logger  zerolog.Logger
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(service service.SaleService, logger zerolog.Logger) *SaleHandler {
	return &SaleHandler{
		service: service,
		logger:  logger.With().Str("handler", "sale").Logger(),
	}
}

// List handles GET /api/sales?startDate=&endDate=&customerId=&productId=&limit=&offset=.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := saleFilter(r)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	sales, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sales)
}

func saleFilter(r *http.Request) (model.SaleFilter, error) {
	var (
		f   model.SaleFilter
		err error
	)
	if f.Range, err = queryRange(r); err != nil {
		return f, err
	}
	if f.CustomerID, err = queryInt64(r, "customerId"); err != nil {
		return f, err
	}
	if f.ProductID, err = queryInt64(r, "productId"); err != nil {
		return f, err
	}
	f.Limit, f.Offset, err = page(r)
	return f, err
}

// GetByID handles GET /api/sales/{id}.
func (h *SaleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	sale, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// Create handles POST /api/sales. The product stock is reduced by the quantity sold.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	sale, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, sale)
}

// Update handles PUT /api/sales/{id}.
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	var req model.SaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	sale, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// Delete handles DELETE /api/sales/{id}. The quantity is returned to stock.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

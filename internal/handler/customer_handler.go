package handler

import (
	"net/http"

	"bizintel/internal/model"
	"bizintel/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// List handles GET /api/customers?search=&segment=&limit=&offset=.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := page(r)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	customers, err := h.service.List(r.Context(), model.CustomerFilter{
		Search:  r.URL.Query().Get("search"),
		Segment: r.URL.Query().Get("segment"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

// GetByID handles GET /api/customers/{id}.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c model.Customer
	if err := decodeJSON(w, r, &c); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	c.ID = 0

	if err := h.service.Create(r.Context(), &c); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/customers/{id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	var c model.Customer
	if err := decodeJSON(w, r, &c); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	c.ID = id

	if err := h.service.Update(r.Context(), &c); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/customers/{id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

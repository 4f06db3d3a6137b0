package handler

import (
	"net/http"

	"bizintel/internal/model"
	"bizintel/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products?search=&category=&limit=&offset=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := page(r)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	products, err := h.service.List(r.Context(), model.ProductFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	p.ID = 0

	if err := h.service.Create(r.Context(), &p); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	var p model.Product
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	p.ID = id

	if err := h.service.Update(r.Context(), &p); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

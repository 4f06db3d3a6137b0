package handler

import (
	"net/http"

	"bizintel/internal/model"
	"bizintel/internal/service"

	"github.com/rs/zerolog"
)

// EmployeeHandler handles employee-related HTTP requests.
type EmployeeHandler struct {
	service service.EmployeeService
	logger  zerolog.Logger
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(service service.EmployeeService, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger.With().Str("handler", "employee").Logger(),
	}
}

// List handles GET /api/employees?search=&department=&limit=&offset=.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := page(r)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	employees, err := h.service.List(r.Context(), model.EmployeeFilter{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

// GetByID handles GET /api/employees/{id}.
func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	employee, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e model.Employee
	if err := decodeJSON(w, r, &e); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	e.ID = 0

	if err := h.service.Create(r.Context(), &e); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	var e model.Employee
	if err := decodeJSON(w, r, &e); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	e.ID = id

	if err := h.service.Update(r.Context(), &e); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// Delete handles DELETE /api/employees/{id}.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

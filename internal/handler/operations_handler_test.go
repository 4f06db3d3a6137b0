package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bizintel/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInventoryHandler(t *testing.T) {
	mockService := new(MockInventoryService)
	handler := NewInventoryHandler(mockService, zerolog.Nop())

	status := []model.InventoryStatus{
		{ProductID: 1, Name: "Mouse", Stock: 0, Status: model.StockOut},
		{ProductID: 2, Name: "Desk", Stock: 80, Status: model.StockGood},
	}
	mockService.On("Status", mock.Anything).Return(status, nil)
	mockService.On("LowStock", mock.Anything).Return(status[:1], nil)
	mockService.On("Snapshot", mock.Anything).Return(int64(2), nil)
	mockService.On("History", mock.Anything, int64(1), 3).Return([]model.InventoryRecord{
		{ID: 1, ProductID: 1, Quantity: 4, LastUpdated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	t.Run("Status", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Status(w, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []model.InventoryStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("LowStock", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.LowStock(w, httptest.NewRequest(http.MethodGet, "/api/inventory/low-stock", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []model.InventoryStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, model.StockOut, got[0].Status)
	})

	t.Run("Snapshot", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Snapshot(w, httptest.NewRequest(http.MethodPost, "/api/inventory/snapshot", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		var got SnapshotResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(2), got.Recorded)
	})

	t.Run("History", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/inventory/1/history?limit=3", nil)
		req.SetPathValue("productId", "1")
		w := httptest.NewRecorder()
		handler.History(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("History with bad limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/inventory/1/history?limit=many", nil)
		req.SetPathValue("productId", "1")
		w := httptest.NewRecorder()
		handler.History(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mockService.AssertExpectations(t)
}

func TestDashboardHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		call           func(*DashboardHandler) http.HandlerFunc
		mockSetup      func(*MockDashboardService)
		expectedStatus int
	}{
		{
			name:   "Get",
			method: "Load",
			call:   func(h *DashboardHandler) http.HandlerFunc { return h.Get },
			mockSetup: func(m *MockDashboardService) {
				m.On("Load", mock.Anything).Return(&model.Dashboard{Summary: model.SalesSummary{TotalTransactions: 3}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Refresh",
			method: "Refresh",
			call:   func(h *DashboardHandler) http.HandlerFunc { return h.Refresh },
			mockSetup: func(m *MockDashboardService) {
				m.On("Refresh", mock.Anything).Return(&model.Dashboard{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Load failure",
			method: "Load",
			call:   func(h *DashboardHandler) http.HandlerFunc { return h.Get },
			mockSetup: func(m *MockDashboardService) {
				m.On("Load", mock.Anything).Return(nil, errors.New("database is locked"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockDashboardService)
			tt.mockSetup(mockService)
			handler := NewDashboardHandler(mockService, zerolog.Nop())

			w := httptest.NewRecorder()
			tt.call(handler)(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertCalled(t, tt.method, mock.Anything)
		})
	}
}

func TestMaintenanceHandler(t *testing.T) {
	t.Run("Stats", func(t *testing.T) {
		mockService := new(MockMaintenanceService)
		mockService.On("Stats", mock.Anything).Return(&model.Stats{Products: 4, Sales: 10}, nil)
		handler := NewMaintenanceHandler(mockService, zerolog.Nop())

		w := httptest.NewRecorder()
		handler.Stats(w, httptest.NewRequest(http.MethodGet, "/api/maintenance/stats", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got model.Stats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(10), got.Sales)
	})

	t.Run("Validate", func(t *testing.T) {
		mockService := new(MockMaintenanceService)
		mockService.On("Validate", mock.Anything).Return(&model.ValidationReport{
			Valid:  false,
			Issues: []string{"1 product(s) with negative stock"},
		}, nil)
		handler := NewMaintenanceHandler(mockService, zerolog.Nop())

		w := httptest.NewRecorder()
		handler.Validate(w, httptest.NewRequest(http.MethodGet, "/api/maintenance/validate", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got model.ValidationReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.False(t, got.Valid)
		assert.Len(t, got.Issues, 1)
	})

	t.Run("Clear requires confirmation", func(t *testing.T) {
		mockService := new(MockMaintenanceService)
		handler := NewMaintenanceHandler(mockService, zerolog.Nop())

		w := httptest.NewRecorder()
		handler.Clear(w, httptest.NewRequest(http.MethodDelete, "/api/maintenance/data", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Clear", mock.Anything)
	})

	t.Run("Clear", func(t *testing.T) {
		mockService := new(MockMaintenanceService)
		mockService.On("Clear", mock.Anything).Return(nil)
		handler := NewMaintenanceHandler(mockService, zerolog.Nop())

		w := httptest.NewRecorder()
		handler.Clear(w, httptest.NewRequest(http.MethodDelete, "/api/maintenance/data?confirm=true", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockService.AssertExpectations(t)
	})
}

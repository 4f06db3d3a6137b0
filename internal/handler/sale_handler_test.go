package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bizintel/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaleHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockSetup      func(*MockSaleService)
		expectedStatus int
		expectedCount  int
	}{
		{
			name:  "Filters are passed through",
			query: "?startDate=2024-01-01&endDate=2024-01-31&customerId=3&productId=7&limit=5",
			mockSetup: func(m *MockSaleService) {
				m.On("List", mock.Anything, model.SaleFilter{
					Range:      model.DateRange{Start: model.NewDate(2024, 1, 1), End: model.NewDate(2024, 1, 31)},
					CustomerID: 3,
					ProductID:  7,
					Limit:      5,
				}).Return([]model.SaleDetail{
					{Sale: model.Sale{ID: 1, CustomerID: 3, ProductID: 7}, CustomerName: "Alice", ProductName: "Mouse"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:           "Reversed range",
			query:          "?startDate=2024-02-01&endDate=2024-01-01",
			mockSetup:      func(m *MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative customer",
			query:          "?customerId=-1",
			mockSetup:      func(m *MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Service error",
			query: "",
			mockSetup: func(m *MockSaleService) {
				m.On("List", mock.Anything, model.SaleFilter{}).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSaleService)
			tt.mockSetup(mockService)
			handler := NewSaleHandler(mockService, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/api/sales"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var sales []model.SaleDetail
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sales))
				assert.Len(t, sales, tt.expectedCount)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestSaleHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockSaleService)
		expectedStatus int
	}{
		{
			name: "Amount derived by the service",
			body: `{"date":"2024-03-05","customerId":1,"productId":2,"quantity":3,"paymentMethod":"Cash"}`,
			mockSetup: func(m *MockSaleService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(req *model.SaleRequest) bool {
					return req.Quantity == 3 && req.Amount == nil && req.Date.Equal(model.NewDate(2024, 3, 5).Time)
				})).Return(&model.SaleDetail{Sale: model.Sale{ID: 11, Quantity: 3, Amount: 59.97}}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Explicit amount",
			body: `{"customerId":1,"productId":2,"quantity":1,"amount":10.5}`,
			mockSetup: func(m *MockSaleService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(req *model.SaleRequest) bool {
					return req.Amount != nil && *req.Amount == 10.5
				})).Return(&model.SaleDetail{Sale: model.Sale{ID: 12, Amount: 10.5}}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Invalid quantity",
			body: `{"customerId":1,"productId":2,"quantity":0}`,
			mockSetup: func(m *MockSaleService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrInvalidQuantity)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown product",
			body: `{"customerId":1,"productId":99,"quantity":1}`,
			mockSetup: func(m *MockSaleService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Malformed body",
			body:           `{"quantity":"three"}`,
			mockSetup:      func(m *MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSaleService)
			tt.mockSetup(mockService)
			handler := NewSaleHandler(mockService, zerolog.Nop())

			req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestSaleHandler_UpdateAndDelete(t *testing.T) {
	mockService := new(MockSaleService)
	handler := NewSaleHandler(mockService, zerolog.Nop())

	mockService.On("GetByID", mock.Anything, int64(5)).
		Return(&model.SaleDetail{Sale: model.Sale{ID: 5}, ProductName: "Mouse"}, nil)
	mockService.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(req *model.SaleRequest) bool {
		return req.Quantity == 2
	})).Return(&model.SaleDetail{Sale: model.Sale{ID: 5, Quantity: 2}}, nil)
	mockService.On("Delete", mock.Anything, int64(5)).Return(nil)
	mockService.On("Delete", mock.Anything, int64(6)).Return(model.ErrSaleNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/5", nil)
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()
	handler.GetByID(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/sales/5", strings.NewReader(`{"customerId":1,"productId":2,"quantity":2}`))
	req.SetPathValue("id", "5")
	w = httptest.NewRecorder()
	handler.Update(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.SaleDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 2, updated.Quantity)

	req = httptest.NewRequest(http.MethodDelete, "/api/sales/5", nil)
	req.SetPathValue("id", "5")
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/sales/6", nil)
	req.SetPathValue("id", "6")
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/sales/abc", nil)
	req.SetPathValue("id", "abc")
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockService.AssertExpectations(t)
}

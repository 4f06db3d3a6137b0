package service

import (
	"context"
	"errors"
	"testing"

	"bizintel/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testThresholds = model.StockThresholds{Low: 10, Medium: 50}

func TestInventoryService_LowStock(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockInventoryRepository)
	service := NewInventoryService(mockRepo, testThresholds, zerolog.Nop())

	mockRepo.On("Status", ctx, testThresholds).Return([]model.InventoryStatus{
		{ProductID: 1, Name: "Cable", Stock: 0, Status: model.StockOut},
		{ProductID: 2, Name: "Mouse", Stock: 10, Status: model.StockLow},
		{ProductID: 3, Name: "Desk", Stock: 11, Status: model.StockMedium},
		{ProductID: 4, Name: "Pen", Stock: 500, Status: model.StockGood},
	}, nil)

	low, err := service.LowStock(ctx)

	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, int64(1), low[0].ProductID)
	assert.Equal(t, int64(2), low[1].ProductID)
	mockRepo.AssertExpectations(t)
}

func TestInventoryService_StatusError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockInventoryRepository)
	service := NewInventoryService(mockRepo, testThresholds, zerolog.Nop())

	mockRepo.On("Status", ctx, testThresholds).Return(nil, errors.New("database error"))

	_, err := service.LowStock(ctx)
	require.Error(t, err)
}

func TestInventoryService_Snapshot(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockInventoryRepository)
	service := NewInventoryService(mockRepo, testThresholds, zerolog.Nop())

	mockRepo.On("Snapshot", ctx).Return(int64(12), nil)

	n, err := service.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestInventoryService_HistoryDefaultsLimit(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockInventoryRepository)
	service := NewInventoryService(mockRepo, testThresholds, zerolog.Nop())

	mockRepo.On("History", ctx, int64(4), 30).Return([]model.InventoryRecord{{ProductID: 4, Quantity: 8}}, nil)

	records, err := service.History(ctx, 4, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	mockRepo.AssertExpectations(t)
}

func TestMaintenanceService_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		negative      int64
		withoutEmail  int64
		orphans       int64
		expectedValid bool
		issues        []string
	}{
		{
			name:          "Clean data",
			expectedValid: true,
			issues:        []string{},
		},
		{
			name:          "Several problems",
			negative:      2,
			orphans:       1,
			expectedValid: false,
			issues: []string{
				"2 products have negative stock",
				"1 sales reference missing customers or products",
			},
		},
		{
			name:          "Missing emails",
			withoutEmail:  5,
			expectedValid: false,
			issues:        []string{"5 customers have no email address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMaintenanceRepository)
			service := NewMaintenanceService(mockRepo, zerolog.Nop())

			mockRepo.On("NegativeStockCount", ctx).Return(tt.negative, nil)
			mockRepo.On("CustomersWithoutEmail", ctx).Return(tt.withoutEmail, nil)
			mockRepo.On("OrphanSales", ctx).Return(tt.orphans, nil)

			report, err := service.Validate(ctx)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedValid, report.Valid)
			assert.Equal(t, tt.issues, report.Issues)
		})
	}
}

func TestMaintenanceService_ValidateQueryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMaintenanceRepository)
	service := NewMaintenanceService(mockRepo, zerolog.Nop())

	mockRepo.On("NegativeStockCount", ctx).Return(int64(0), errors.New("database error"))

	report, err := service.Validate(ctx)
	require.Error(t, err)
	assert.Nil(t, report)
}

func TestMaintenanceService_StatsAndClear(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMaintenanceRepository)
	service := NewMaintenanceService(mockRepo, zerolog.Nop())

	mockRepo.On("Counts", ctx).Return(&model.Stats{Products: 3, Sales: 9}, nil)
	mockRepo.On("ClearAll", ctx).Return(nil)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), stats.Sales)

	require.NoError(t, service.Clear(ctx))
	mockRepo.AssertExpectations(t)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bizintel/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectDashboardQueries(calc *MockCalculator, inv *MockInventoryRepository, times int) {
	calc.On("SalesSummary", mock.Anything, model.DateRange{}).
		Return(&model.SalesSummary{TotalTransactions: 4, TotalRevenue: 3230}, nil).Times(times)
	calc.On("SalesTrend", mock.Anything, model.PeriodWeekly).
		Return([]model.TrendPoint{{Period: "2024-W05", Revenue: 3230}}, nil).Times(times)
	calc.On("TopProducts", mock.Anything, dashboardTopProducts).
		Return([]model.TopProduct{{Name: "Laptop"}}, nil).Times(times)
	calc.On("CustomerSegmentation", mock.Anything).
		Return([]model.SegmentStats{{Segment: model.SegmentVIP}}, nil).Times(times)
	calc.On("ProfitMargin", mock.Anything).
		Return([]model.CategoryMargin{{Category: "Electronics"}}, nil).Times(times)
	calc.On("RecentActivity", mock.Anything, dashboardRecent).
		Return([]model.Activity{{SaleID: 1}}, nil).Times(times)
	calc.On("TopPerformers", mock.Anything, mock.AnythingOfType("time.Time"), dashboardTopPerformers).
		Return([]model.Performer{{Rank: 1}}, nil).Times(times)
	inv.On("Status", mock.Anything, testThresholds).
		Return([]model.InventoryStatus{{ProductID: 9, Stock: 2}, {ProductID: 8, Stock: 90}}, nil).Times(times)
}

func TestDashboardService_LoadCaches(t *testing.T) {
	calc := new(MockCalculator)
	inv := new(MockInventoryRepository)
	expectDashboardQueries(calc, inv, 1)

	service := NewDashboardService(calc, NewInventoryService(inv, testThresholds, zerolog.Nop()),
		DashboardConfig{TTL: time.Minute, QueryTimeout: 5 * time.Second}, zerolog.Nop())

	first, err := service.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), first.Summary.TotalTransactions)
	assert.Len(t, first.Trend, 1)
	assert.Len(t, first.TopProducts, 1)
	assert.Len(t, first.Segments, 1)
	assert.Len(t, first.ProfitMargins, 1)
	assert.Len(t, first.Recent, 1)
	assert.Len(t, first.TopPerformers, 1)
	require.Len(t, first.LowStock, 1)
	assert.Equal(t, int64(9), first.LowStock[0].ProductID)
	assert.False(t, first.GeneratedAt.IsZero())

	second, err := service.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	calc.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestDashboardService_RefreshBypassesCache(t *testing.T) {
	calc := new(MockCalculator)
	inv := new(MockInventoryRepository)
	expectDashboardQueries(calc, inv, 2)

	service := NewDashboardService(calc, NewInventoryService(inv, testThresholds, zerolog.Nop()),
		DashboardConfig{TTL: time.Minute}, zerolog.Nop())

	first, err := service.Load(context.Background())
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, refreshed)

	cached, err := service.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, refreshed, cached)

	calc.AssertExpectations(t)
}

func TestDashboardService_ZeroTTLDisablesCache(t *testing.T) {
	calc := new(MockCalculator)
	inv := new(MockInventoryRepository)
	expectDashboardQueries(calc, inv, 2)

	service := NewDashboardService(calc, NewInventoryService(inv, testThresholds, zerolog.Nop()),
		DashboardConfig{}, zerolog.Nop())

	_, err := service.Load(context.Background())
	require.NoError(t, err)
	_, err = service.Load(context.Background())
	require.NoError(t, err)

	calc.AssertExpectations(t)
}

func TestDashboardService_QueryFailure(t *testing.T) {
	calc := new(MockCalculator)
	inv := new(MockInventoryRepository)

	calc.On("SalesSummary", mock.Anything, model.DateRange{}).Return(nil, errors.New("database error"))
	calc.On("SalesTrend", mock.Anything, model.PeriodWeekly).Return([]model.TrendPoint{}, nil).Maybe()
	calc.On("TopProducts", mock.Anything, dashboardTopProducts).Return([]model.TopProduct{}, nil).Maybe()
	calc.On("CustomerSegmentation", mock.Anything).Return([]model.SegmentStats{}, nil).Maybe()
	calc.On("ProfitMargin", mock.Anything).Return([]model.CategoryMargin{}, nil).Maybe()
	calc.On("RecentActivity", mock.Anything, dashboardRecent).Return([]model.Activity{}, nil).Maybe()
	calc.On("TopPerformers", mock.Anything, mock.Anything, dashboardTopPerformers).Return([]model.Performer{}, nil).Maybe()
	inv.On("Status", mock.Anything, testThresholds).Return([]model.InventoryStatus{}, nil).Maybe()

	service := NewDashboardService(calc, NewInventoryService(inv, testThresholds, zerolog.Nop()),
		DashboardConfig{TTL: time.Minute}, zerolog.Nop())

	d, err := service.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, d)
}

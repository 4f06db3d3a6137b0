package service

import (
	"context"
	"database/sql"
	"time"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, tx repository.Tx, id int64, delta int) error {
	return m.Called(ctx, tx, id, delta).Error(0)
}

func (m *MockProductRepository) CountSales(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) InsertBatch(ctx context.Context, tx repository.Tx, products []model.Product) error {
	return m.Called(ctx, tx, products).Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerRepository) CountSales(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) InsertBatch(ctx context.Context, tx repository.Tx, customers []model.Customer) error {
	return m.Called(ctx, tx, customers).Error(0)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) List(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, e *model.Employee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, e *model.Employee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEmployeeRepository) InsertBatch(ctx context.Context, tx repository.Tx, employees []model.Employee) error {
	return m.Called(ctx, tx, employees).Error(0)
}

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(repository.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleRepository) List(ctx context.Context, filter model.SaleFilter) ([]model.SaleDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SaleDetail), args.Error(1)
}

func (m *MockSaleRepository) GetByID(ctx context.Context, id int64) (*model.SaleDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SaleDetail), args.Error(1)
}

func (m *MockSaleRepository) Find(ctx context.Context, tx repository.Tx, id int64) (*model.Sale, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sale), args.Error(1)
}

func (m *MockSaleRepository) Create(ctx context.Context, tx repository.Tx, s *model.Sale) error {
	return m.Called(ctx, tx, s).Error(0)
}

func (m *MockSaleRepository) Update(ctx context.Context, tx repository.Tx, s *model.Sale) error {
	return m.Called(ctx, tx, s).Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *MockSaleRepository) InsertBatch(ctx context.Context, tx repository.Tx, sales []model.Sale) error {
	return m.Called(ctx, tx, sales).Error(0)
}

// MockInventoryRepository is a mock implementation of InventoryRepository.
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Status(ctx context.Context, thresholds model.StockThresholds) ([]model.InventoryStatus, error) {
	args := m.Called(ctx, thresholds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryStatus), args.Error(1)
}

func (m *MockInventoryRepository) Snapshot(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) History(ctx context.Context, productID int64, limit int) ([]model.InventoryRecord, error) {
	args := m.Called(ctx, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryRecord), args.Error(1)
}

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) Counts(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func (m *MockMaintenanceRepository) NegativeStockCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceRepository) CustomersWithoutEmail(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceRepository) OrphanSales(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceRepository) ClearAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMaintenanceRepository) Clear(ctx context.Context, tx repository.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// MockCalculator is a mock implementation of analytics.Calculator.
type MockCalculator struct {
	mock.Mock
}

func (m *MockCalculator) SalesSummary(ctx context.Context, r model.DateRange) (*model.SalesSummary, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesSummary), args.Error(1)
}

func (m *MockCalculator) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TopProduct), args.Error(1)
}

func (m *MockCalculator) CustomerSegmentation(ctx context.Context) ([]model.SegmentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SegmentStats), args.Error(1)
}

func (m *MockCalculator) SalesTrend(ctx context.Context, period model.Period) ([]model.TrendPoint, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrendPoint), args.Error(1)
}

func (m *MockCalculator) ProfitMargin(ctx context.Context) ([]model.CategoryMargin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryMargin), args.Error(1)
}

func (m *MockCalculator) RecentActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockCalculator) TopPerformers(ctx context.Context, now time.Time, limit int) ([]model.Performer, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Performer), args.Error(1)
}

func (m *MockCalculator) DailySales(ctx context.Context, r model.DateRange) ([]model.DailySales, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailySales), args.Error(1)
}

func (m *MockCalculator) ProductAnalysis(ctx context.Context, r model.DateRange) ([]model.ProductPerformance, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductPerformance), args.Error(1)
}

func (m *MockCalculator) CustomerAnalysis(ctx context.Context, r model.DateRange) ([]model.CustomerValue, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CustomerValue), args.Error(1)
}

func (m *MockCalculator) FinancialMonthly(ctx context.Context, r model.DateRange) ([]model.FinancialMonth, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FinancialMonth), args.Error(1)
}

// MockTx is a minimal mock implementation of repository.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit() error {
	args := m.Called()
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy sqlx.ExtContext - these are not used in our tests
func (m *MockTx) DriverName() string         { return "mock" }
func (m *MockTx) Rebind(query string) string { return query }
func (m *MockTx) BindNamed(query string, arg any) (string, []any, error) {
	return query, nil, nil
}
func (m *MockTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row {
	return nil
}
func (m *MockTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

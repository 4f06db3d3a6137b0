package handler

import (
	"context"
	"io"
	"time"

	"bizintel/internal/ml"
	"bizintel/internal/model"
	"bizintel/internal/report"
	"bizintel/internal/transfer"

	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductService) Update(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockCustomerService is a mock implementation of CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Create(ctx context.Context, c *model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerService) Update(ctx context.Context, c *model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockEmployeeService is a mock implementation of EmployeeService.
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) List(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) Create(ctx context.Context, e *model.Employee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEmployeeService) Update(ctx context.Context, e *model.Employee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEmployeeService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockSaleService is a mock implementation of SaleService.
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) List(ctx context.Context, filter model.SaleFilter) ([]model.SaleDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SaleDetail), args.Error(1)
}

func (m *MockSaleService) GetByID(ctx context.Context, id int64) (*model.SaleDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SaleDetail), args.Error(1)
}

func (m *MockSaleService) Create(ctx context.Context, req *model.SaleRequest) (*model.SaleDetail, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SaleDetail), args.Error(1)
}

func (m *MockSaleService) Update(ctx context.Context, id int64, req *model.SaleRequest) (*model.SaleDetail, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SaleDetail), args.Error(1)
}

func (m *MockSaleService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockInventoryService is a mock implementation of InventoryService.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Status(ctx context.Context) ([]model.InventoryStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryStatus), args.Error(1)
}

func (m *MockInventoryService) LowStock(ctx context.Context) ([]model.InventoryStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryStatus), args.Error(1)
}

func (m *MockInventoryService) Snapshot(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryService) History(ctx context.Context, productID int64, limit int) ([]model.InventoryRecord, error) {
	args := m.Called(ctx, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryRecord), args.Error(1)
}

// MockDashboardService is a mock implementation of DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Load(ctx context.Context) (*model.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dashboard), args.Error(1)
}

func (m *MockDashboardService) Refresh(ctx context.Context) (*model.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dashboard), args.Error(1)
}

// MockMaintenanceService is a mock implementation of MaintenanceService.
type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func (m *MockMaintenanceService) Validate(ctx context.Context) (*model.ValidationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidationReport), args.Error(1)
}

func (m *MockMaintenanceService) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
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

// MockGenerator is a mock implementation of report.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Render(ctx context.Context, req report.Request) (*report.Rendered, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Rendered), args.Error(1)
}

func (m *MockGenerator) Generate(ctx context.Context, req report.Request) (*report.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Result), args.Error(1)
}

// MockImporter is a mock implementation of Importer. Uploaded bodies are
// read so expectations can match on their content.
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Preview(r io.Reader, entity transfer.Entity, format transfer.Format, n int) (*transfer.Preview, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(string(body), entity, format, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Preview), args.Error(1)
}

func (m *MockImporter) Import(ctx context.Context, r io.Reader, entity transfer.Entity, format transfer.Format) (*transfer.Result, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, string(body), entity, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Result), args.Error(1)
}

// MockExporter is a mock implementation of Exporter writing a fixed payload.
type MockExporter struct {
	mock.Mock
	payload string
}

func (m *MockExporter) Export(ctx context.Context, w io.Writer) (*transfer.ExportSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	_, _ = io.WriteString(w, m.payload)
	return args.Get(0).(*transfer.ExportSummary), args.Error(1)
}

// MockPredictor is a mock implementation of Predictor.
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Train(ctx context.Context) (*ml.Model, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ml.Model), args.Error(1)
}

func (m *MockPredictor) Predict(ctx context.Context, features map[string]float64) (*ml.Prediction, error) {
	args := m.Called(ctx, features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ml.Prediction), args.Error(1)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

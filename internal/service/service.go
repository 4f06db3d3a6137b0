package service

import (
	"context"

	"bizintel/internal/model"
)

// maxPageSize caps the number of rows a single listing may return.
const maxPageSize = 1000

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create validates and stores a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update validates and overwrites an existing product.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product that no sale references.
	Delete(ctx context.Context, id int64) error
}

// CustomerService defines operations for customer management.
type CustomerService interface {
	List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)

	// Create stores a new customer, defaulting the segment to Regular and the join date to today.
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error

	// Delete removes a customer that no sale references.
	Delete(ctx context.Context, id int64) error
}

// EmployeeService defines operations for employee management.
type EmployeeService interface {
	List(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error)
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	Create(ctx context.Context, e *model.Employee) error
	Update(ctx context.Context, e *model.Employee) error
	Delete(ctx context.Context, id int64) error
}

// SaleService defines operations for recording sales.
// Every write adjusts product stock in the same transaction.
type SaleService interface {
	// List retrieves sales with customer and product names, newest first.
	List(ctx context.Context, filter model.SaleFilter) ([]model.SaleDetail, error)

	// GetByID retrieves a single sale by ID.
	GetByID(ctx context.Context, id int64) (*model.SaleDetail, error)

	// Create records a sale and decrements the product stock.
	Create(ctx context.Context, req *model.SaleRequest) (*model.SaleDetail, error)

	// Update replaces a sale, returning the old quantity to stock and taking the new one.
	Update(ctx context.Context, id int64, req *model.SaleRequest) (*model.SaleDetail, error)

	// Delete removes a sale and restores the product stock.
	Delete(ctx context.Context, id int64) error
}

// InventoryService defines stock reporting operations.
type InventoryService interface {
	// Status returns the stock position of every product.
	Status(ctx context.Context) ([]model.InventoryStatus, error)

	// LowStock returns products at or below the low stock threshold.
	LowStock(ctx context.Context) ([]model.InventoryStatus, error)

	// Snapshot records the current stock of every product.
	Snapshot(ctx context.Context) (int64, error)

	// History returns recent stock snapshots of a product.
	History(ctx context.Context, productID int64, limit int) ([]model.InventoryRecord, error)
}

// MaintenanceService defines housekeeping operations.
type MaintenanceService interface {
	// Stats counts the records of every entity.
	Stats(ctx context.Context) (*model.Stats, error)

	// Validate looks for data quality problems.
	Validate(ctx context.Context) (*model.ValidationReport, error)

	// Clear deletes all business data.
	Clear(ctx context.Context) error
}

// DashboardService assembles the overview shown on the dashboard.
type DashboardService interface {
	// Load returns the cached dashboard, computing it when the cache is empty or stale.
	Load(ctx context.Context) (*model.Dashboard, error)

	// Refresh discards the cached dashboard and computes a new one.
	Refresh(ctx context.Context) (*model.Dashboard, error)
}

// clampPage bounds listing limits and offsets. A zero limit lists everything up to maxPageSize.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

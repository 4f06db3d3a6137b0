package repository

import (
	"context"

	"bizintel/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// Tx is a database transaction. *sqlx.Tx satisfies it.
type Tx interface {
	sqlx.ExtContext
	Commit() error
	Rollback() error
}

// Transactor starts transactions spanning several repositories.
type Transactor interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (Tx, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter, ordered by name.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product. It returns nil when the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a product and sets its ID and creation time.
	Create(ctx context.Context, p *model.Product) error

	// Update overwrites the mutable fields of an existing product.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// AdjustStock adds delta to the stock of a product within the provided transaction.
	AdjustStock(ctx context.Context, tx Tx, id int64, delta int) error

	// CountSales returns how many sales reference the product.
	CountSales(ctx context.Context, id int64) (int64, error)

	// InsertBatch inserts products within the provided transaction and sets their IDs.
	InsertBatch(ctx context.Context, tx Tx, products []model.Product) error
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// List retrieves customers matching the filter, ordered by name.
	List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error)

	// GetByID retrieves a single customer. It returns nil when the customer does not exist.
	GetByID(ctx context.Context, id int64) (*model.Customer, error)

	// Create inserts a customer and sets its ID.
	Create(ctx context.Context, c *model.Customer) error

	// Update overwrites an existing customer.
	Update(ctx context.Context, c *model.Customer) error

	// Delete removes a customer.
	Delete(ctx context.Context, id int64) error

	// CountSales returns how many sales reference the customer.
	CountSales(ctx context.Context, id int64) (int64, error)

	// InsertBatch inserts customers within the provided transaction and sets their IDs.
	InsertBatch(ctx context.Context, tx Tx, customers []model.Customer) error
}

// EmployeeRepository defines the interface for employee data access operations.
type EmployeeRepository interface {
	List(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error)
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	Create(ctx context.Context, e *model.Employee) error
	Update(ctx context.Context, e *model.Employee) error
	Delete(ctx context.Context, id int64) error
	InsertBatch(ctx context.Context, tx Tx, employees []model.Employee) error
}

// SaleRepository defines the interface for sale data access operations.
// Writes happen inside a transaction so stock adjustments commit atomically with them.
type SaleRepository interface {
	Transactor

	// List retrieves sales joined with customer and product names, newest first.
	List(ctx context.Context, filter model.SaleFilter) ([]model.SaleDetail, error)

	// GetByID retrieves a sale with names. It returns nil when the sale does not exist.
	GetByID(ctx context.Context, id int64) (*model.SaleDetail, error)

	// Find reads a sale within the provided transaction. It returns nil when the sale does not exist.
	Find(ctx context.Context, tx Tx, id int64) (*model.Sale, error)

	// Create inserts a sale within the provided transaction and sets its ID.
	Create(ctx context.Context, tx Tx, s *model.Sale) error

	// Update overwrites a sale within the provided transaction.
	Update(ctx context.Context, tx Tx, s *model.Sale) error

	// Delete removes a sale within the provided transaction.
	Delete(ctx context.Context, tx Tx, id int64) error

	// InsertBatch inserts sales within the provided transaction and sets their IDs.
	InsertBatch(ctx context.Context, tx Tx, sales []model.Sale) error
}

// InventoryRepository defines stock reporting and snapshot operations.
type InventoryRepository interface {
	// Status returns the stock position of every product, lowest stock first.
	Status(ctx context.Context, thresholds model.StockThresholds) ([]model.InventoryStatus, error)

	// Snapshot records the current stock of every product and returns the number of rows written.
	Snapshot(ctx context.Context) (int64, error)

	// History returns the most recent snapshots of a product.
	History(ctx context.Context, productID int64, limit int) ([]model.InventoryRecord, error)
}

// MaintenanceRepository defines data quality and housekeeping queries.
type MaintenanceRepository interface {
	Counts(ctx context.Context) (*model.Stats, error)
	NegativeStockCount(ctx context.Context) (int64, error)
	CustomersWithoutEmail(ctx context.Context) (int64, error)
	OrphanSales(ctx context.Context) (int64, error)

	// ClearAll deletes every row of every table in one transaction.
	ClearAll(ctx context.Context) error

	// Clear deletes every row of every table inside tx.
	Clear(ctx context.Context, tx Tx) error
}

// Repositories groups the repositories sharing one database.
type Repositories struct {
	Tx          Transactor
	Products    ProductRepository
	Customers   CustomerRepository
	Sales       SaleRepository
	Employees   EmployeeRepository
	Inventory   InventoryRepository
	Maintenance MaintenanceRepository
}

// New wires every repository to db.
func New(db *sqlx.DB, logger zerolog.Logger) *Repositories {
	return &Repositories{
		Tx:          NewTransactor(db),
		Products:    NewProductRepository(db, logger),
		Customers:   NewCustomerRepository(db, logger),
		Sales:       NewSaleRepository(db, logger),
		Employees:   NewEmployeeRepository(db, logger),
		Inventory:   NewInventoryRepository(db, logger),
		Maintenance: NewMaintenanceRepository(db, logger),
	}
}

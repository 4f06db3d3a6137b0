package seed

import (
	"context"
	"fmt"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
)

// Options sizes the generated data set.
type Options struct {
	Products  int
	Customers int
	Sales     int
	Employees int
	Days      int
	Seed      uint64
}

// DefaultOptions matches the demo data set: two years of history.
func DefaultOptions() Options {
	return Options{
		Products:  100,
		Customers: 500,
		Sales:     10000,
		Employees: 25,
		Days:      730,
		Seed:      42,
	}
}

// Validate checks that the counts are usable.
func (o Options) Validate() error {
	if o.Products < 0 || o.Customers < 0 || o.Sales < 0 || o.Employees < 0 {
		return model.ValidationError("seed counts must not be negative")
	}
	if o.Sales > 0 && (o.Products == 0 || o.Customers == 0) {
		return model.ValidationError("sales need at least one product and one customer")
	}
	if o.Days < 0 {
		return model.ValidationError("seed days must not be negative")
	}
	return nil
}

// Summary counts the rows written.
type Summary struct {
	Products  int   `json:"products"`
	Customers int   `json:"customers"`
	Sales     int   `json:"sales"`
	Employees int   `json:"employees"`
	Snapshots int64 `json:"snapshots"`
}

// Seeder replaces the stored data with generated demo data.
type Seeder struct {
	repos  *repository.Repositories
	today  func() model.Date
	logger zerolog.Logger
}

// NewSeeder creates a Seeder writing through repos.
func NewSeeder(repos *repository.Repositories, logger zerolog.Logger) *Seeder {
	return &Seeder{
		repos:  repos,
		today:  model.Today,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Run replaces every table with the generated rows in one transaction and
// records an inventory snapshot. On failure the stored data is left as it was.
func (s *Seeder) Run(ctx context.Context, opts Options) (_ *Summary, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	gen := NewGenerator(opts.Seed, s.today())
	products := gen.Products(opts.Products)
	customers := gen.Customers(opts.Customers)
	employees := gen.Employees(opts.Employees)

	tx, err := s.repos.Tx.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.repos.Maintenance.Clear(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to clear existing data: %w", err)
	}
	if err = s.repos.Products.InsertBatch(ctx, tx, products); err != nil {
		return nil, err
	}
	if err = s.repos.Customers.InsertBatch(ctx, tx, customers); err != nil {
		return nil, err
	}

	sales := gen.Sales(opts.Sales, opts.Days, products, customers)
	if err = s.repos.Sales.InsertBatch(ctx, tx, sales); err != nil {
		return nil, err
	}
	if err = s.repos.Employees.InsertBatch(ctx, tx, employees); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed data: %w", err)
	}

	snapshots, snapErr := s.repos.Inventory.Snapshot(ctx)
	if snapErr != nil {
		return nil, fmt.Errorf("failed to snapshot inventory: %w", snapErr)
	}

	summary := &Summary{
		Products:  len(products),
		Customers: len(customers),
		Sales:     len(sales),
		Employees: len(employees),
		Snapshots: snapshots,
	}

	s.logger.Info().
		Uint64("seed", opts.Seed).
		Int("products", summary.Products).
		Int("customers", summary.Customers).
		Int("sales", summary.Sales).
		Int("employees", summary.Employees).
		Msg("demo data generated")

	return summary, nil
}

package repository

import (
	"context"
	"fmt"

	"bizintel/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// clearOrder lists tables children first so foreign keys never block a delete.
var clearOrder = []string{"inventory", "sales", "employees", "customers", "products"}

type maintenanceRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewMaintenanceRepository creates a new maintenance repository.
func NewMaintenanceRepository(db *sqlx.DB, logger zerolog.Logger) MaintenanceRepository {
	return &maintenanceRepository{
		db:     db,
		logger: logger.With().Str("repository", "maintenance").Logger(),
	}
}

func (r *maintenanceRepository) Counts(ctx context.Context) (*model.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products)  AS products,
			(SELECT COUNT(*) FROM customers) AS customers,
			(SELECT COUNT(*) FROM sales)     AS sales,
			(SELECT COUNT(*) FROM employees) AS employees
	`

	var stats model.Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		r.logger.Error().Err(err).Msg("failed to count records")
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	return &stats, nil
}

func (r *maintenanceRepository) NegativeStockCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "negative stock", "SELECT COUNT(*) FROM products WHERE stock < 0")
}

func (r *maintenanceRepository) CustomersWithoutEmail(ctx context.Context) (int64, error) {
	return r.count(ctx, "customers without email", "SELECT COUNT(*) FROM customers WHERE email IS NULL OR email = ''")
}

func (r *maintenanceRepository) OrphanSales(ctx context.Context) (int64, error) {
	return r.count(ctx, "orphan sales", `
		SELECT COUNT(*)
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		LEFT JOIN products p ON p.id = s.product_id
		WHERE c.id IS NULL OR p.id IS NULL`)
}

func (r *maintenanceRepository) count(ctx context.Context, what, query string) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		r.logger.Error().Err(err).Str("check", what).Msg("failed to run data check")
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

// ClearAll deletes every row of every table in one transaction.
func (r *maintenanceRepository) ClearAll(ctx context.Context) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = r.Clear(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	r.logger.Warn().Strs("tables", clearOrder).Msg("all business data cleared")
	return nil
}

// Clear deletes every row of every table inside tx. The caller commits.
func (r *maintenanceRepository) Clear(ctx context.Context, tx Tx) error {
	for _, table := range clearOrder {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			r.logger.Error().Err(err).Str("table", table).Msg("failed to clear table")
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

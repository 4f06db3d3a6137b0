package repository

import (
	"context"
	"fmt"

	"bizintel/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type inventoryRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewInventoryRepository creates a new inventory repository.
func NewInventoryRepository(db *sqlx.DB, logger zerolog.Logger) InventoryRepository {
	return &inventoryRepository{
		db:     db,
		logger: logger.With().Str("repository", "inventory").Logger(),
	}
}

// Status returns the stock position of every product, lowest stock first.
func (r *inventoryRepository) Status(ctx context.Context, thresholds model.StockThresholds) ([]model.InventoryStatus, error) {
	query := `
		SELECT id AS product_id, name, category, stock, price, cost,
		       (price - cost) AS profit_per_unit,
		       CASE
		           WHEN stock <= 0 THEN 'Out of Stock'
		           WHEN stock <= ? THEN 'Low'
		           WHEN stock <= ? THEN 'Medium'
		           ELSE 'Good'
		       END AS status
		FROM products
		ORDER BY stock, name
	`

	items := []model.InventoryStatus{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), thresholds.Low, thresholds.Medium); err != nil {
		r.logger.Error().Err(err).Msg("failed to query inventory status")
		return nil, fmt.Errorf("failed to query inventory status: %w", err)
	}

	return items, nil
}

// Snapshot records the current stock of every product.
func (r *inventoryRepository) Snapshot(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (product_id, quantity, last_updated)
		SELECT id, stock, CURRENT_TIMESTAMP FROM products`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to snapshot inventory")
		return 0, fmt.Errorf("failed to snapshot inventory: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	r.logger.Info().Int64("products", n).Msg("inventory snapshot recorded")
	return n, nil
}

// History returns the most recent snapshots of a product.
func (r *inventoryRepository) History(ctx context.Context, productID int64, limit int) ([]model.InventoryRecord, error) {
	var c conditions
	c.add("product_id = ?", productID)
	query := "SELECT id, product_id, quantity, last_updated FROM inventory" + c.where() +
		" ORDER BY last_updated DESC, id DESC" + c.page(limit, 0)

	records := []model.InventoryRecord{}
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), c.args...); err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to query inventory history")
		return nil, fmt.Errorf("failed to query inventory history: %w", err)
	}

	return records, nil
}

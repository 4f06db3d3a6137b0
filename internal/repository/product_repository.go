package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bizintel/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const productColumns = "id, name, category, price, cost, stock, created_at"

// productRepository implements the ProductRepository interface using sqlx.
type productRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *sqlx.DB, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves products matching the filter, ordered by name.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var c conditions
	c.search(filter.Search, "name", "category")
	if filter.Category != "" {
		c.add("category = ?", filter.Category)
	}

	query := "SELECT " + productColumns + " FROM products" + c.where() + " ORDER BY name, id"
	query += c.page(filter.Limit, filter.Offset)

	products := []model.Product{}
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), c.args...); err != nil {
		r.logger.Error().Err(err).
			Str("search", filter.Search).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = ?"

	var p model.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a product and sets its ID and creation time.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	if err := r.insert(ctx, r.db, p); err != nil {
		r.logger.Error().Err(err).Str("name", p.Name).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *productRepository) insert(ctx context.Context, q sqlx.ExtContext, p *model.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	id, err := insertReturningID(ctx, q, `
		INSERT INTO products (name, category, price, cost, stock, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		p.Name, p.Category, p.Price, p.Cost, p.Stock, p.CreatedAt)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Update overwrites the mutable fields of an existing product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = ?, category = ?, price = ?, cost = ?, stock = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), p.Name, p.Category, p.Price, p.Cost, p.Stock, p.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return requireAffected(res, model.ErrProductNotFound)
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM products WHERE id = ?"), id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return requireAffected(res, model.ErrProductNotFound)
}

// AdjustStock adds delta to the stock of a product within the provided transaction.
func (r *productRepository) AdjustStock(ctx context.Context, tx Tx, id int64, delta int) error {
	res, err := tx.ExecContext(ctx, tx.Rebind("UPDATE products SET stock = stock + ? WHERE id = ?"), delta, id)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("product_id", id).
			Int("delta", delta).
			Msg("failed to adjust stock")
		return fmt.Errorf("failed to adjust stock: %w", err)
	}

	return requireAffected(res, model.ErrProductNotFound)
}

// CountSales returns how many sales reference the product.
func (r *productRepository) CountSales(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, r.db.Rebind("SELECT COUNT(*) FROM sales WHERE product_id = ?"), id); err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to count product sales")
		return 0, fmt.Errorf("failed to count product sales: %w", err)
	}
	return count, nil
}

// InsertBatch inserts products within the provided transaction and sets their IDs.
func (r *productRepository) InsertBatch(ctx context.Context, tx Tx, products []model.Product) error {
	for i := range products {
		if err := r.insert(ctx, tx, &products[i]); err != nil {
			r.logger.Error().Err(err).Int("row", i).Msg("failed to insert product batch")
			return fmt.Errorf("failed to insert product %q: %w", products[i].Name, err)
		}
	}
	return nil
}

// requireAffected maps a statement that touched no rows onto notFound.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

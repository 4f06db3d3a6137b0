package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bizintel/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const (
	saleColumns = "id, date, customer_id, product_id, quantity, amount, payment_method"

	saleDetailSelect = `
		SELECT s.id, s.date, s.customer_id, s.product_id, s.quantity, s.amount, s.payment_method,
		       c.name AS customer_name, p.name AS product_name
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		JOIN products p ON p.id = s.product_id`
)

// saleRepository implements the SaleRepository interface using sqlx.
type saleRepository struct {
	Transactor
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewSaleRepository creates a new sale repository.
func NewSaleRepository(db *sqlx.DB, logger zerolog.Logger) SaleRepository {
	return &saleRepository{
		Transactor: NewTransactor(db),
		db:         db,
		logger:     logger.With().Str("repository", "sale").Logger(),
	}
}

// List retrieves sales joined with customer and product names, newest first.
func (r *saleRepository) List(ctx context.Context, filter model.SaleFilter) ([]model.SaleDetail, error) {
	var c conditions
	if !filter.Range.Start.IsZero() {
		c.add("s.date >= ?", filter.Range.Start)
	}
	if !filter.Range.End.IsZero() {
		c.add("s.date <= ?", filter.Range.End)
	}
	if filter.CustomerID > 0 {
		c.add("s.customer_id = ?", filter.CustomerID)
	}
	if filter.ProductID > 0 {
		c.add("s.product_id = ?", filter.ProductID)
	}

	query := saleDetailSelect + c.where() + " ORDER BY s.date DESC, s.id DESC"
	query += c.page(filter.Limit, filter.Offset)

	sales := []model.SaleDetail{}
	if err := r.db.SelectContext(ctx, &sales, r.db.Rebind(query), c.args...); err != nil {
		r.logger.Error().Err(err).
			Str("from", filter.Range.Start.String()).
			Str("to", filter.Range.End.String()).
			Msg("failed to query sales")
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}

	return sales, nil
}

// GetByID retrieves a sale with customer and product names.
func (r *saleRepository) GetByID(ctx context.Context, id int64) (*model.SaleDetail, error) {
	var s model.SaleDetail
	err := r.db.GetContext(ctx, &s, r.db.Rebind(saleDetailSelect+" WHERE s.id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug().Int64("sale_id", id).Msg("sale not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("sale_id", id).Msg("failed to query sale")
		return nil, fmt.Errorf("failed to query sale: %w", err)
	}

	return &s, nil
}

// Find reads a sale within the provided transaction.
func (r *saleRepository) Find(ctx context.Context, tx Tx, id int64) (*model.Sale, error) {
	var s model.Sale
	err := sqlx.GetContext(ctx, tx, &s, tx.Rebind("SELECT "+saleColumns+" FROM sales WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("sale_id", id).Msg("failed to read sale in transaction")
		return nil, fmt.Errorf("failed to query sale: %w", err)
	}

	return &s, nil
}

// Create inserts a sale within the provided transaction and sets its ID.
func (r *saleRepository) Create(ctx context.Context, tx Tx, s *model.Sale) error {
	id, err := insertReturningID(ctx, tx, `
		INSERT INTO sales (date, customer_id, product_id, quantity, amount, payment_method)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		s.Date, s.CustomerID, s.ProductID, s.Quantity, s.Amount, s.PaymentMethod)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("customer_id", s.CustomerID).
			Int64("product_id", s.ProductID).
			Msg("failed to insert sale")
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	s.ID = id
	return nil
}

// Update overwrites a sale within the provided transaction.
func (r *saleRepository) Update(ctx context.Context, tx Tx, s *model.Sale) error {
	query := `
		UPDATE sales
		SET date = ?, customer_id = ?, product_id = ?, quantity = ?, amount = ?, payment_method = ?
		WHERE id = ?
	`

	res, err := tx.ExecContext(ctx, tx.Rebind(query),
		s.Date, s.CustomerID, s.ProductID, s.Quantity, s.Amount, s.PaymentMethod, s.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("sale_id", s.ID).Msg("failed to update sale")
		return fmt.Errorf("failed to update sale: %w", err)
	}

	return requireAffected(res, model.ErrSaleNotFound)
}

// Delete removes a sale within the provided transaction.
func (r *saleRepository) Delete(ctx context.Context, tx Tx, id int64) error {
	res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM sales WHERE id = ?"), id)
	if err != nil {
		r.logger.Error().Err(err).Int64("sale_id", id).Msg("failed to delete sale")
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	return requireAffected(res, model.ErrSaleNotFound)
}

// InsertBatch inserts sales within the provided transaction and sets their IDs.
func (r *saleRepository) InsertBatch(ctx context.Context, tx Tx, sales []model.Sale) error {
	for i := range sales {
		if err := r.Create(ctx, tx, &sales[i]); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}

	r.logger.Debug().Int("count", len(sales)).Msg("sales batch inserted")
	return nil
}

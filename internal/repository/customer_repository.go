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

const customerColumns = "id, name, email, phone, join_date, segment"

// customerRepository implements the CustomerRepository interface using sqlx.
type customerRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *sqlx.DB, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		db:     db,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// List retrieves customers matching the filter, ordered by name.
func (r *customerRepository) List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error) {
	var c conditions
	c.search(filter.Search, "name", "email", "segment")
	if filter.Segment != "" {
		c.add("segment = ?", filter.Segment)
	}

	query := "SELECT " + customerColumns + " FROM customers" + c.where() + " ORDER BY name, id"
	query += c.page(filter.Limit, filter.Offset)

	customers := []model.Customer{}
	if err := r.db.SelectContext(ctx, &customers, r.db.Rebind(query), c.args...); err != nil {
		r.logger.Error().Err(err).Str("search", filter.Search).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	return customers, nil
}

// GetByID retrieves a single customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, r.db.Rebind("SELECT "+customerColumns+" FROM customers WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug().Int64("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// Create inserts a customer and sets its ID.
func (r *customerRepository) Create(ctx context.Context, c *model.Customer) error {
	if err := r.insert(ctx, r.db, c); err != nil {
		r.logger.Error().Err(err).Str("name", c.Name).Msg("failed to insert customer")
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) insert(ctx context.Context, q sqlx.ExtContext, c *model.Customer) error {
	id, err := insertReturningID(ctx, q, `
		INSERT INTO customers (name, email, phone, join_date, segment)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		c.Name, c.Email, c.Phone, c.JoinDate, c.Segment)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// Update overwrites an existing customer.
func (r *customerRepository) Update(ctx context.Context, c *model.Customer) error {
	query := `
		UPDATE customers
		SET name = ?, email = ?, phone = ?, join_date = ?, segment = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), c.Name, c.Email, c.Phone, c.JoinDate, c.Segment, c.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", c.ID).Msg("failed to update customer")
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return requireAffected(res, model.ErrCustomerNotFound)
}

// Delete removes a customer.
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM customers WHERE id = ?"), id)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return requireAffected(res, model.ErrCustomerNotFound)
}

// CountSales returns how many sales reference the customer.
func (r *customerRepository) CountSales(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, r.db.Rebind("SELECT COUNT(*) FROM sales WHERE customer_id = ?"), id); err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to count customer sales")
		return 0, fmt.Errorf("failed to count customer sales: %w", err)
	}
	return count, nil
}

// InsertBatch inserts customers within the provided transaction and sets their IDs.
func (r *customerRepository) InsertBatch(ctx context.Context, tx Tx, customers []model.Customer) error {
	for i := range customers {
		if err := r.insert(ctx, tx, &customers[i]); err != nil {
			r.logger.Error().Err(err).Int("row", i).Msg("failed to insert customer batch")
			return fmt.Errorf("failed to insert customer %q: %w", customers[i].Name, err)
		}
	}
	return nil
}

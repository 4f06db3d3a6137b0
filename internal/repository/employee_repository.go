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

const employeeColumns = "id, name, department, salary, hire_date"

type employeeRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *sqlx.DB, logger zerolog.Logger) EmployeeRepository {
	return &employeeRepository{
		db:     db,
		logger: logger.With().Str("repository", "employee").Logger(),
	}
}

func (r *employeeRepository) List(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error) {
	var c conditions
	c.search(filter.Search, "name", "department")
	if filter.Department != "" {
		c.add("department = ?", filter.Department)
	}

	query := "SELECT " + employeeColumns + " FROM employees" + c.where() + " ORDER BY name, id"
	query += c.page(filter.Limit, filter.Offset)

	employees := []model.Employee{}
	if err := r.db.SelectContext(ctx, &employees, r.db.Rebind(query), c.args...); err != nil {
		r.logger.Error().Err(err).Str("search", filter.Search).Msg("failed to query employees")
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	var e model.Employee
	err := r.db.GetContext(ctx, &e, r.db.Rebind("SELECT "+employeeColumns+" FROM employees WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to query employee")
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}

	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, e *model.Employee) error {
	if err := r.insert(ctx, r.db, e); err != nil {
		r.logger.Error().Err(err).Str("name", e.Name).Msg("failed to insert employee")
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) insert(ctx context.Context, q sqlx.ExtContext, e *model.Employee) error {
	id, err := insertReturningID(ctx, q, `
		INSERT INTO employees (name, department, salary, hire_date)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		e.Name, e.Department, e.Salary, e.HireDate)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, e *model.Employee) error {
	query := "UPDATE employees SET name = ?, department = ?, salary = ?, hire_date = ? WHERE id = ?"

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), e.Name, e.Department, e.Salary, e.HireDate, e.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("employee_id", e.ID).Msg("failed to update employee")
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return requireAffected(res, model.ErrEmployeeNotFound)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM employees WHERE id = ?"), id)
	if err != nil {
		r.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to delete employee")
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return requireAffected(res, model.ErrEmployeeNotFound)
}

func (r *employeeRepository) InsertBatch(ctx context.Context, tx Tx, employees []model.Employee) error {
	for i := range employees {
		if err := r.insert(ctx, tx, &employees[i]); err != nil {
			return fmt.Errorf("failed to insert employee %q: %w", employees[i].Name, err)
		}
	}
	return nil
}

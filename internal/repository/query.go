package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type transactor struct {
	db *sqlx.DB
}

// NewTransactor returns a Transactor backed by db.
func NewTransactor(db *sqlx.DB) Transactor {
	return &transactor{db: db}
}

// BeginTx starts a new database transaction.
func (t *transactor) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// conditions accumulates WHERE clauses and their arguments.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(clause string, args ...any) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}

// search matches term case-insensitively against any of the columns.
func (c *conditions) search(term string, columns ...string) {
	if term == "" {
		return
	}
	pattern := "%" + strings.ToLower(term) + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	c.add("("+strings.Join(parts, " OR ")+")", args...)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page appends LIMIT and OFFSET when limit is positive.
func (c *conditions) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	if offset < 0 {
		offset = 0
	}
	c.args = append(c.args, limit, offset)
	return " LIMIT ? OFFSET ?"
}

// insertReturningID runs an INSERT ... RETURNING id statement.
func insertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

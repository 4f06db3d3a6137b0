package repository

import (
	"context"
	"testing"

	"bizintel/internal/database/dbtest"
	"bizintel/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// setupTestDB returns a migrated SQLite database and its repositories.
func setupTestDB(t *testing.T) (*sqlx.DB, *Repositories) {
	t.Helper()
	db := dbtest.NewSQLite(t)
	return db.DB, New(db.DB, zerolog.Nop())
}

func seedProducts(t *testing.T, repos *Repositories, products []model.Product) []model.Product {
	t.Helper()
	ctx := context.Background()
	for i := range products {
		require.NoError(t, repos.Products.Create(ctx, &products[i]))
	}
	return products
}

func seedCustomers(t *testing.T, repos *Repositories, customers []model.Customer) []model.Customer {
	t.Helper()
	ctx := context.Background()
	for i := range customers {
		require.NoError(t, repos.Customers.Create(ctx, &customers[i]))
	}
	return customers
}

func seedSales(t *testing.T, repos *Repositories, sales []model.Sale) []model.Sale {
	t.Helper()
	ctx := context.Background()
	tx, err := repos.Tx.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repos.Sales.InsertBatch(ctx, tx, sales))
	require.NoError(t, tx.Commit())
	return sales
}

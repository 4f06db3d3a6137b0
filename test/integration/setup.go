package integration

import (
	"context"
	"testing"
	"time"

	"bizintel/internal/config"
	"bizintel/internal/database"
	"bizintel/internal/database/dbtest"
	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a migrated PostgreSQL test database.
type TestDB struct {
	Container *postgres.PostgresContainer
	Config    config.DatabaseConfig
	DB        *database.DB
	Repos     *repository.Repositories
}

// SetupTestDB starts a PostgreSQL container, applies the migrations and connects to it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	// dbtest.Open runs the embedded migrations and closes the pool on cleanup.
	db := dbtest.Open(t, dbConfig)

	return &TestDB{
		Container: postgresContainer,
		Config:    dbConfig,
		DB:        db,
		Repos:     repository.New(db.DB, zerolog.Nop()),
	}
}

// Fixture holds the IDs of the rows inserted by SeedData.
type Fixture struct {
	Products  []model.Product
	Customers []model.Customer
	Sales     []model.Sale
}

// SeedData inserts three products, two customers and five sales across two months.
func SeedData(t *testing.T, testDB *TestDB) *Fixture {
	t.Helper()

	ctx := context.Background()
	f := &Fixture{
		Products: []model.Product{
			{Name: "Laptop", Category: "Electronics", Price: 1000, Cost: 700, Stock: 5},
			{Name: "Desk", Category: "Furniture", Price: 300, Cost: 120, Stock: 40},
			{Name: "Pen", Category: "Office Supplies", Price: 2.5, Cost: 0.5, Stock: 0},
		},
		Customers: []model.Customer{
			{Name: "Alice", Email: "alice@example.com", Segment: model.SegmentVIP, JoinDate: model.NewDate(2023, 1, 10)},
			{Name: "Bob", Segment: model.SegmentRegular, JoinDate: model.NewDate(2023, 6, 1)},
		},
	}

	tx, err := testDB.Repos.Tx.BeginTx(ctx)
	if err != nil {
		t.Fatalf("failed to begin seed transaction: %v", err)
	}
	defer tx.Rollback()

	if err := testDB.Repos.Products.InsertBatch(ctx, tx, f.Products); err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}
	if err := testDB.Repos.Customers.InsertBatch(ctx, tx, f.Customers); err != nil {
		t.Fatalf("failed to seed customers: %v", err)
	}

	laptop, desk, pen := f.Products[0].ID, f.Products[1].ID, f.Products[2].ID
	alice, bob := f.Customers[0].ID, f.Customers[1].ID
	f.Sales = []model.Sale{
		{Date: model.NewDate(2024, 1, 15), CustomerID: alice, ProductID: laptop, Quantity: 1, Amount: 1000, PaymentMethod: model.PaymentCreditCard},
		{Date: model.NewDate(2024, 1, 20), CustomerID: bob, ProductID: desk, Quantity: 2, Amount: 600, PaymentMethod: model.PaymentCash},
		{Date: model.NewDate(2024, 2, 3), CustomerID: alice, ProductID: desk, Quantity: 1, Amount: 300, PaymentMethod: model.PaymentDebitCard},
		{Date: model.NewDate(2024, 2, 10), CustomerID: alice, ProductID: laptop, Quantity: 2, Amount: 2000, PaymentMethod: model.PaymentBankTransfer},
		{Date: model.NewDate(2024, 2, 10), CustomerID: bob, ProductID: pen, Quantity: 10, Amount: 25, PaymentMethod: model.PaymentCash},
	}
	if err := testDB.Repos.Sales.InsertBatch(ctx, tx, f.Sales); err != nil {
		t.Fatalf("failed to seed sales: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit seed data: %v", err)
	}
	return f
}

// CleanupDB removes all data from the business tables.
func CleanupDB(t *testing.T, testDB *TestDB) {
	t.Helper()

	if err := testDB.Repos.Maintenance.ClearAll(context.Background()); err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
}

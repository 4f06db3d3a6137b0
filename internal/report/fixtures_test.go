package report

import (
	"context"
	"testing"
	"time"

	"bizintel/internal/analytics"
	"bizintel/internal/database/dbtest"
	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type inventoryFunc func(ctx context.Context) ([]model.InventoryStatus, error)

func (f inventoryFunc) Status(ctx context.Context) ([]model.InventoryStatus, error) { return f(ctx) }

// newTestBuilder returns a Builder over a SQLite store holding two products,
// two customers and three sales in January and February 2024.
func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	db := dbtest.NewSQLite(t)
	repos := repository.New(db.DB, zerolog.Nop())
	ctx := context.Background()

	products := []model.Product{
		{Name: "Laptop", Category: "Electronics", Price: 1000, Cost: 600, Stock: 4},
		{Name: "Chair", Category: "Furniture", Price: 150, Cost: 50, Stock: 80},
	}
	customers := []model.Customer{
		{Name: "Alice", Email: "alice@example.com", Segment: model.SegmentVIP, JoinDate: model.NewDate(2023, 1, 1)},
		{Name: "Bob", Segment: model.SegmentRegular, JoinDate: model.NewDate(2023, 5, 1)},
	}

	tx, err := repos.Tx.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repos.Products.InsertBatch(ctx, tx, products))
	require.NoError(t, repos.Customers.InsertBatch(ctx, tx, customers))
	require.NoError(t, repos.Sales.InsertBatch(ctx, tx, []model.Sale{
		{Date: model.NewDate(2024, 1, 15), CustomerID: customers[0].ID, ProductID: products[0].ID, Quantity: 1, Amount: 1000, PaymentMethod: model.PaymentCash},
		{Date: model.NewDate(2024, 2, 3), CustomerID: customers[1].ID, ProductID: products[1].ID, Quantity: 2, Amount: 300, PaymentMethod: model.PaymentCash},
		{Date: model.NewDate(2024, 2, 3), CustomerID: customers[0].ID, ProductID: products[1].ID, Quantity: 1, Amount: 150, PaymentMethod: model.PaymentDebitCard},
	}))
	require.NoError(t, tx.Commit())

	thresholds := model.StockThresholds{Low: 10, Medium: 50}
	inventory := inventoryFunc(func(ctx context.Context) ([]model.InventoryStatus, error) {
		return repos.Inventory.Status(ctx, thresholds)
	})

	b := NewBuilder(analytics.NewCalculator(db, zerolog.Nop()), inventory,
		Branding{Company: "Acme Analytics", Footer: "Internal"}, zerolog.Nop())
	b.now = func() time.Time { return fixedNow }
	return b
}

func sampleDocument() *Document {
	return &Document{
		Type:        TypeProductAnalysis,
		Title:       TypeProductAnalysis.Title(),
		Company:     "Acme Analytics",
		Footer:      "Internal",
		Range:       model.DateRange{Start: model.NewDate(2024, 1, 1), End: model.NewDate(2024, 1, 31)},
		GeneratedAt: fixedNow,
		Highlights:  []Highlight{{Label: "Revenue", Value: "$1450.00"}},
		Table: Table{
			Title:   "Product Performance",
			Columns: []string{"Product", "Category", "Units Sold", "Total Revenue"},
			Rows: [][]any{
				{"Laptop", "Electronics", int64(1), 1000.0},
				{"Chair", "Furniture", int64(3), 450.0},
				{"Café Table", "Furniture", int64(0), 0.0},
			},
		},
	}
}

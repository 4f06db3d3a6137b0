package report

import (
	"context"
	"fmt"
	"time"

	"bizintel/internal/analytics"
	"bizintel/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InventorySource provides the current stock position of every product.
type InventorySource interface {
	Status(ctx context.Context) ([]model.InventoryStatus, error)
}

// Branding is printed on every report.
type Branding struct {
	Company string
	Footer  string
}

// Builder turns analytics results into report documents.
type Builder struct {
	calc      analytics.Calculator
	inventory InventorySource
	branding  Branding
	now       func() time.Time
	logger    zerolog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(calc analytics.Calculator, inventory InventorySource, branding Branding, logger zerolog.Logger) *Builder {
	return &Builder{
		calc:      calc,
		inventory: inventory,
		branding:  branding,
		now:       time.Now,
		logger:    logger.With().Str("component", "report-builder").Logger(),
	}
}

// Build runs the queries behind report type t over r.
func (b *Builder) Build(ctx context.Context, t Type, r model.DateRange) (*Document, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	doc := &Document{
		ID:          uuid.New(),
		Type:        t,
		Title:       t.Title(),
		Company:     b.branding.Company,
		Footer:      b.branding.Footer,
		Range:       r,
		GeneratedAt: b.now(),
	}

	var err error
	switch t {
	case TypeSalesSummary:
		err = b.salesSummary(ctx, doc)
	case TypeProductAnalysis:
		err = b.productAnalysis(ctx, doc)
	case TypeCustomerAnalysis:
		err = b.customerAnalysis(ctx, doc)
	case TypeFinancial:
		err = b.financial(ctx, doc)
	case TypeInventory:
		err = b.inventoryReport(ctx, doc)
	default:
		return nil, model.ValidationError(fmt.Sprintf("unknown report type %q", t))
	}
	if err != nil {
		b.logger.Error().Err(err).Str("type", string(t)).Msg("failed to build report")
		return nil, fmt.Errorf("failed to build %s report: %w", t, err)
	}

	b.logger.Debug().
		Str("type", string(t)).
		Str("range", r.String()).
		Int("rows", len(doc.Table.Rows)).
		Msg("report built")

	return doc, nil
}

func (b *Builder) salesSummary(ctx context.Context, doc *Document) error {
	summary, err := b.calc.SalesSummary(ctx, doc.Range)
	if err != nil {
		return err
	}
	days, err := b.calc.DailySales(ctx, doc.Range)
	if err != nil {
		return err
	}

	doc.Highlights = []Highlight{
		{"Total Revenue", money(summary.TotalRevenue)},
		{"Transactions", cellText(summary.TotalTransactions)},
		{"Average Transaction", money(summary.AvgTransactionValue)},
		{"Unique Customers", cellText(summary.UniqueCustomers)},
	}
	doc.Table = Table{
		Title:   "Daily Sales",
		Columns: []string{"Date", "Transactions", "Daily Revenue", "Avg Transaction", "Unique Customers"},
	}
	for _, d := range days {
		doc.Table.Rows = append(doc.Table.Rows, []any{d.Date, d.Transactions, d.Revenue, d.AvgTransaction, d.UniqueCustomers})
	}
	return nil
}

func (b *Builder) productAnalysis(ctx context.Context, doc *Document) error {
	rows, err := b.calc.ProductAnalysis(ctx, doc.Range)
	if err != nil {
		return err
	}

	doc.Table = Table{
		Title:   "Product Performance",
		Columns: []string{"Product", "Category", "Units Sold", "Total Revenue", "Avg Price", "Total Profit"},
	}
	for _, p := range rows {
		doc.Table.Rows = append(doc.Table.Rows, []any{p.Name, p.Category, p.UnitsSold, p.Revenue, p.AvgPrice, p.Profit})
	}
	return nil
}

func (b *Builder) customerAnalysis(ctx context.Context, doc *Document) error {
	rows, err := b.calc.CustomerAnalysis(ctx, doc.Range)
	if err != nil {
		return err
	}

	doc.Table = Table{
		Title:   "Customer Value",
		Columns: []string{"Customer", "Segment", "Join Date", "Purchases", "Total Spent", "Last Purchase", "Avg Purchase"},
	}
	for _, c := range rows {
		doc.Table.Rows = append(doc.Table.Rows, []any{c.Name, c.Segment, c.JoinDate, c.PurchaseCount, c.TotalSpent, c.LastPurchase, c.AvgPurchase})
	}
	return nil
}

func (b *Builder) financial(ctx context.Context, doc *Document) error {
	months, err := b.calc.FinancialMonthly(ctx, doc.Range)
	if err != nil {
		return err
	}

	var revenue, cost float64
	doc.Table = Table{
		Title:   "Monthly Financials",
		Columns: []string{"Month", "Revenue", "Cost of Goods", "Gross Profit", "Active Customers", "Transactions"},
	}
	for _, m := range months {
		revenue += m.Revenue
		cost += m.CostOfGoods
		doc.Table.Rows = append(doc.Table.Rows, []any{m.Month, m.Revenue, m.CostOfGoods, m.GrossProfit, m.ActiveCustomers, m.Transactions})
	}

	margin := 0.0
	if revenue != 0 {
		margin = (revenue - cost) / revenue * 100
	}
	doc.Highlights = []Highlight{
		{"Revenue", money(revenue)},
		{"Cost of Goods", money(cost)},
		{"Gross Profit", money(revenue - cost)},
		{"Gross Margin", cellText(margin) + "%"},
	}
	return nil
}

func (b *Builder) inventoryReport(ctx context.Context, doc *Document) error {
	items, err := b.inventory.Status(ctx)
	if err != nil {
		return err
	}

	var value float64
	lowOrOut := 0
	doc.Table = Table{
		Title:   "Stock Levels",
		Columns: []string{"Product", "Category", "Stock", "Price", "Cost", "Profit/Unit", "Status"},
	}
	for _, it := range items {
		value += float64(it.Stock) * it.Cost
		if it.Status == model.StockLow || it.Status == model.StockOut {
			lowOrOut++
		}
		doc.Table.Rows = append(doc.Table.Rows, []any{it.Name, it.Category, it.Stock, it.Price, it.Cost, it.ProfitPerUnit, it.Status})
	}

	doc.Highlights = []Highlight{
		{"Products", cellText(len(items))},
		{"Stock Value (cost)", money(value)},
		{"Low or Out of Stock", cellText(lowOrOut)},
	}
	return nil
}

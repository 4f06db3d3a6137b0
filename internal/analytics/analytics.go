// Package analytics runs the aggregate queries behind the dashboard and reports.
package analytics

import (
	"context"
	"time"

	"bizintel/internal/model"
)

// Calculator computes business metrics from the sales store.
type Calculator interface {
	// SalesSummary returns headline KPIs for an inclusive, optionally open, date range.
	SalesSummary(ctx context.Context, r model.DateRange) (*model.SalesSummary, error)

	// TopProducts ranks products by total revenue.
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)

	// CustomerSegmentation aggregates spending per customer segment.
	CustomerSegmentation(ctx context.Context) ([]model.SegmentStats, error)

	// SalesTrend buckets revenue by day, week or month.
	SalesTrend(ctx context.Context, period model.Period) ([]model.TrendPoint, error)

	// ProfitMargin computes revenue, cost and margin per product category.
	ProfitMargin(ctx context.Context) ([]model.CategoryMargin, error)

	// RecentActivity returns the latest sales labelled with their revenue tier.
	RecentActivity(ctx context.Context, limit int) ([]model.Activity, error)

	// TopPerformers ranks products by revenue in the month of now with growth over the previous month.
	TopPerformers(ctx context.Context, now time.Time, limit int) ([]model.Performer, error)

	// DailySales returns one row per day with sales in the range.
	DailySales(ctx context.Context, r model.DateRange) ([]model.DailySales, error)

	// ProductAnalysis returns units, revenue and profit per product.
	ProductAnalysis(ctx context.Context, r model.DateRange) ([]model.ProductPerformance, error)

	// CustomerAnalysis returns purchase behaviour per customer.
	CustomerAnalysis(ctx context.Context, r model.DateRange) ([]model.CustomerValue, error)

	// FinancialMonthly returns revenue, cost of goods and gross profit per month.
	FinancialMonthly(ctx context.Context, r model.DateRange) ([]model.FinancialMonth, error)
}

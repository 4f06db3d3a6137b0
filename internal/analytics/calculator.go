package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"bizintel/internal/database"
	"bizintel/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// calculator implements Calculator with SQL aggregations.
type calculator struct {
	db      *sqlx.DB
	dialect database.Dialect
	logger  zerolog.Logger
}

// NewCalculator creates a Calculator over db.
func NewCalculator(db *database.DB, logger zerolog.Logger) Calculator {
	return &calculator{
		db:      db.DB,
		dialect: db.Dialect,
		logger:  logger.With().Str("component", "analytics").Logger(),
	}
}

// rangeFilter appends inclusive bounds on column for the non-zero ends of r.
func rangeFilter(column string, r model.DateRange) (string, []any) {
	var (
		clause string
		args   []any
	)
	if !r.Start.IsZero() {
		clause += " AND " + column + " >= ?"
		args = append(args, r.Start)
	}
	if !r.End.IsZero() {
		clause += " AND " + column + " <= ?"
		args = append(args, r.End)
	}
	return clause, args
}

func (c *calculator) selectRows(ctx context.Context, name string, dest any, query string, args ...any) error {
	if err := c.db.SelectContext(ctx, dest, c.db.Rebind(query), args...); err != nil {
		c.logger.Error().Err(err).Str("query", name).Msg("analytics query failed")
		return fmt.Errorf("failed to compute %s: %w", name, err)
	}
	return nil
}

func (c *calculator) SalesSummary(ctx context.Context, r model.DateRange) (*model.SalesSummary, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	filter, args := rangeFilter("date", r)
	query := `
		SELECT COUNT(*)                    AS total_transactions,
		       COALESCE(SUM(amount), 0)    AS total_revenue,
		       COALESCE(AVG(amount), 0)    AS avg_transaction_value,
		       COUNT(DISTINCT customer_id) AS unique_customers
		FROM sales
		WHERE 1 = 1` + filter

	var summary model.SalesSummary
	if err := c.db.GetContext(ctx, &summary, c.db.Rebind(query), args...); err != nil {
		c.logger.Error().Err(err).Str("query", "sales summary").Msg("analytics query failed")
		return nil, fmt.Errorf("failed to compute sales summary: %w", err)
	}

	return &summary, nil
}

func (c *calculator) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	query := `
		SELECT p.id AS product_id, p.name, p.category,
		       COALESCE(SUM(s.quantity), 0) AS total_quantity,
		       COALESCE(SUM(s.amount), 0)   AS total_revenue,
		       COUNT(s.id)                  AS transactions
		FROM sales s
		JOIN products p ON p.id = s.product_id
		GROUP BY p.id, p.name, p.category
		ORDER BY total_revenue DESC, p.name
		LIMIT ?`

	products := []model.TopProduct{}
	if err := c.selectRows(ctx, "top products", &products, query, positive(limit, 10)); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *calculator) CustomerSegmentation(ctx context.Context) ([]model.SegmentStats, error) {
	query := `
		SELECT c.segment,
		       COUNT(DISTINCT c.id)       AS customer_count,
		       COALESCE(SUM(s.amount), 0) AS total_spent,
		       COALESCE(AVG(s.amount), 0) AS avg_spent,
		       COUNT(s.id)                AS total_transactions
		FROM customers c
		LEFT JOIN sales s ON s.customer_id = c.id
		GROUP BY c.segment
		ORDER BY total_spent DESC, c.segment`

	segments := []model.SegmentStats{}
	if err := c.selectRows(ctx, "customer segmentation", &segments, query); err != nil {
		return nil, err
	}
	return segments, nil
}

func (c *calculator) SalesTrend(ctx context.Context, period model.Period) ([]model.TrendPoint, error) {
	bucket, err := c.dialect.Bucket(period, "date")
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + bucket + ` AS period,
		       SUM(amount) AS revenue,
		       COUNT(*)    AS transactions,
		       AVG(amount) AS avg_transaction
		FROM sales
		GROUP BY 1
		ORDER BY 1`

	points := []model.TrendPoint{}
	if err := c.selectRows(ctx, "sales trend", &points, query); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *calculator) ProfitMargin(ctx context.Context) ([]model.CategoryMargin, error) {
	query := `
		SELECT p.category,
		       SUM(s.amount)                            AS revenue,
		       SUM(s.quantity * p.cost)                 AS cost,
		       SUM(s.amount) - SUM(s.quantity * p.cost) AS profit
		FROM sales s
		JOIN products p ON p.id = s.product_id
		GROUP BY p.category
		ORDER BY profit DESC`

	margins := []model.CategoryMargin{}
	if err := c.selectRows(ctx, "profit margin", &margins, query); err != nil {
		return nil, err
	}

	for i := range margins {
		if margins[i].Revenue != 0 {
			margins[i].MarginPercentage = round2(margins[i].Profit / margins[i].Revenue * 100)
		}
	}
	return margins, nil
}

func (c *calculator) RecentActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	query := `
		SELECT s.id AS sale_id, s.date, c.name AS customer_name, p.name AS product_name, s.amount
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		JOIN products p ON p.id = s.product_id
		ORDER BY s.date DESC, s.id DESC
		LIMIT ?`

	activity := []model.Activity{}
	if err := c.selectRows(ctx, "recent activity", &activity, query, positive(limit, 20)); err != nil {
		return nil, err
	}

	for i := range activity {
		activity[i].Tier = model.AmountTier(activity[i].Amount)
	}
	return activity, nil
}

func (c *calculator) TopPerformers(ctx context.Context, now time.Time, limit int) ([]model.Performer, error) {
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	previousStart := currentStart.AddDate(0, -1, 0)
	currentMonth := currentStart.Format("2006-01")
	previousMonth := previousStart.Format("2006-01")

	month := c.dialect.Month("s.date")
	query := `
		SELECT p.id AS product_id, p.name, ` + month + ` AS month, SUM(s.amount) AS revenue
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.date >= ? AND s.date <= ?
		GROUP BY p.id, p.name, ` + month

	var rows []model.MonthlyProductRevenue
	if err := c.selectRows(ctx, "top performers", &rows, query, model.DateOf(previousStart), model.DateOf(now)); err != nil {
		return nil, err
	}

	type pair struct {
		name              string
		current, previous float64
		hasCurrent        bool
	}
	byProduct := make(map[int64]*pair)
	for _, row := range rows {
		p, ok := byProduct[row.ProductID]
		if !ok {
			p = &pair{name: row.Name}
			byProduct[row.ProductID] = p
		}
		switch row.Month {
		case currentMonth:
			p.current = row.Revenue
			p.hasCurrent = true
		case previousMonth:
			p.previous = row.Revenue
		}
	}

	performers := make([]model.Performer, 0, len(byProduct))
	for id, p := range byProduct {
		if !p.hasCurrent {
			continue
		}
		growth := 100.0
		if p.previous != 0 {
			growth = round2((p.current - p.previous) / p.previous * 100)
		}
		performers = append(performers, model.Performer{
			ProductID:       id,
			Name:            p.name,
			CurrentRevenue:  p.current,
			PreviousRevenue: p.previous,
			Growth:          growth,
			Trend:           model.GrowthTrend(growth),
		})
	}

	sort.Slice(performers, func(i, j int) bool {
		if performers[i].CurrentRevenue != performers[j].CurrentRevenue {
			return performers[i].CurrentRevenue > performers[j].CurrentRevenue
		}
		return performers[i].ProductID < performers[j].ProductID
	})

	limit = positive(limit, 10)
	if len(performers) > limit {
		performers = performers[:limit]
	}
	for i := range performers {
		performers[i].Rank = i + 1
	}

	return performers, nil
}

func (c *calculator) DailySales(ctx context.Context, r model.DateRange) ([]model.DailySales, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	filter, args := rangeFilter("date", r)
	query := `
		SELECT date,
		       COUNT(*)                    AS transactions,
		       SUM(amount)                 AS revenue,
		       AVG(amount)                 AS avg_transaction,
		       COUNT(DISTINCT customer_id) AS unique_customers
		FROM sales
		WHERE 1 = 1` + filter + `
		GROUP BY date
		ORDER BY date`

	days := []model.DailySales{}
	if err := c.selectRows(ctx, "daily sales", &days, query, args...); err != nil {
		return nil, err
	}
	return days, nil
}

func (c *calculator) ProductAnalysis(ctx context.Context, r model.DateRange) ([]model.ProductPerformance, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	filter, args := rangeFilter("s.date", r)
	query := `
		SELECT p.name, p.category,
		       SUM(s.quantity)                          AS units_sold,
		       SUM(s.amount)                            AS revenue,
		       AVG(p.price)                             AS avg_price,
		       SUM(s.amount) - SUM(s.quantity * p.cost) AS profit
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE 1 = 1` + filter + `
		GROUP BY p.id, p.name, p.category
		ORDER BY revenue DESC, p.name`

	rows := []model.ProductPerformance{}
	if err := c.selectRows(ctx, "product analysis", &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *calculator) CustomerAnalysis(ctx context.Context, r model.DateRange) ([]model.CustomerValue, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	// The range goes into the join so customers without purchases still appear.
	filter, args := rangeFilter("s.date", r)
	query := `
		SELECT c.name, c.segment, c.join_date,
		       COUNT(s.id)                AS purchase_count,
		       COALESCE(SUM(s.amount), 0) AS total_spent,
		       MAX(s.date)                AS last_purchase,
		       COALESCE(AVG(s.amount), 0) AS avg_purchase
		FROM customers c
		LEFT JOIN sales s ON s.customer_id = c.id` + filter + `
		GROUP BY c.id, c.name, c.segment, c.join_date
		ORDER BY total_spent DESC, c.name`

	rows := []model.CustomerValue{}
	if err := c.selectRows(ctx, "customer analysis", &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *calculator) FinancialMonthly(ctx context.Context, r model.DateRange) ([]model.FinancialMonth, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	filter, args := rangeFilter("s.date", r)
	month := c.dialect.Month("s.date")
	query := `
		SELECT ` + month + ` AS month,
		       SUM(s.amount)                            AS revenue,
		       SUM(s.quantity * p.cost)                 AS cost_of_goods,
		       SUM(s.amount) - SUM(s.quantity * p.cost) AS gross_profit,
		       COUNT(DISTINCT s.customer_id)            AS active_customers,
		       COUNT(s.id)                              AS transactions
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE 1 = 1` + filter + `
		GROUP BY 1
		ORDER BY 1`

	rows := []model.FinancialMonth{}
	if err := c.selectRows(ctx, "financial report", &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func positive(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

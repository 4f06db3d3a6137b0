package ml

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bizintel/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Lag window sizes.
const (
	lagDays       = 1
	rollingWindow = 7
)

// Base feature names, in model order before the one-hot columns.
var baseFeatures = []string{"quantity", "price", "day_of_week", "day_of_month", "is_weekend"}

// Lag feature names, in model order after the one-hot columns.
var lagFeatures = []string{"prev_day_sales", "rolling_7day_avg"}

// Dataset is the feature matrix built from sales history, oldest sale first.
type Dataset struct {
	Features []string
	Rows     [][]float64
	Targets  []float64
	Dates    []model.Date
}

// Len returns the number of usable rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// saleRow is one sale joined with the product and customer attributes used as features.
type saleRow struct {
	ID       int64      `db:"id"`
	Date     model.Date `db:"date"`
	Amount   float64    `db:"amount"`
	Quantity int        `db:"quantity"`
	Category string     `db:"category"`
	Price    float64    `db:"price"`
	Segment  string     `db:"segment"`
}

func (p *Predictor) loadSales(ctx context.Context) ([]saleRow, error) {
	query := `
		SELECT s.id, s.date, s.amount, s.quantity, p.category, p.price, c.segment
		FROM sales s
		JOIN products p ON p.id = s.product_id
		JOIN customers c ON c.id = s.customer_id
		ORDER BY s.date, s.id`

	rows := []saleRow{}
	if err := p.db.SelectContext(ctx, &rows, p.db.Rebind(query)); err != nil {
		p.logger.Error().Err(err).Msg("failed to load training data")
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	return rows, nil
}

// buildDataset derives features from sales ordered by date. The first
// rollingWindow sales lack a full lag history and are dropped.
func buildDataset(sales []saleRow) *Dataset {
	categories := oneHot("category_", sales, func(s saleRow) string { return s.Category })
	segments := oneHot("segment_", sales, func(s saleRow) string { return s.Segment })
	months := oneHot("month_", sales, func(s saleRow) string { return s.Date.Format("01") })

	features := append([]string{}, baseFeatures...)
	features = append(features, categories...)
	features = append(features, segments...)
	features = append(features, months...)
	features = append(features, lagFeatures...)

	index := make(map[string]int, len(features))
	for i, f := range features {
		index[f] = i
	}

	d := &Dataset{Features: features}
	for i := rollingWindow; i < len(sales); i++ {
		s := sales[i]
		row := make([]float64, len(features))

		weekday := s.Date.Weekday()
		row[0] = float64(s.Quantity)
		row[1] = s.Price
		row[2] = float64(weekday)
		row[3] = float64(s.Date.Day())
		if weekday == time.Saturday || weekday == time.Sunday {
			row[4] = 1
		}
		row[index["category_"+s.Category]] = 1
		row[index["segment_"+s.Segment]] = 1
		row[index["month_"+s.Date.Format("01")]] = 1

		window := make([]float64, rollingWindow)
		for j := range window {
			window[j] = sales[i-rollingWindow+j].Amount
		}
		row[len(features)-2] = sales[i-lagDays].Amount
		row[len(features)-1] = stat.Mean(window, nil)

		d.Rows = append(d.Rows, row)
		d.Targets = append(d.Targets, s.Amount)
		d.Dates = append(d.Dates, s.Date)
	}
	return d
}

// oneHot returns the sorted column names for the distinct values of field.
func oneHot(prefix string, sales []saleRow, field func(saleRow) string) []string {
	seen := map[string]bool{}
	var names []string
	for _, s := range sales {
		name := prefix + field(s)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

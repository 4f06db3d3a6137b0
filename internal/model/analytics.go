package model

import "time"

// Period is the bucket size of a sales trend.
type Period string

// Supported trend periods.
const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Revenue tiers for recent activity.
const (
	TierHigh   = "High"
	TierMedium = "Medium"
	TierLow    = "Low"
)

// AmountTier classifies a sale amount.
func AmountTier(amount float64) string {
	switch {
	case amount > 500:
		return TierHigh
	case amount > 100:
		return TierMedium
	default:
		return TierLow
	}
}

// Growth trend labels for top performers.
const (
	TrendStrongUp   = "strong-up"
	TrendUp         = "up"
	TrendStrongDown = "strong-down"
	TrendFlat       = "flat"
)

// GrowthTrend labels a month-over-month growth percentage.
func GrowthTrend(growth float64) string {
	switch {
	case growth > 20:
		return TrendStrongUp
	case growth > 0:
		return TrendUp
	case growth < -10:
		return TrendStrongDown
	default:
		return TrendFlat
	}
}

// SalesSummary holds the headline KPIs.
type SalesSummary struct {
	TotalTransactions   int64   `json:"totalTransactions" db:"total_transactions"`
	TotalRevenue        float64 `json:"totalRevenue" db:"total_revenue"`
	AvgTransactionValue float64 `json:"avgTransactionValue" db:"avg_transaction_value"`
	UniqueCustomers     int64   `json:"uniqueCustomers" db:"unique_customers"`
}

// TopProduct is a product ranked by revenue.
type TopProduct struct {
	ProductID     int64   `json:"productId" db:"product_id"`
	Name          string  `json:"name" db:"name"`
	Category      string  `json:"category" db:"category"`
	TotalQuantity int64   `json:"totalQuantity" db:"total_quantity"`
	TotalRevenue  float64 `json:"totalRevenue" db:"total_revenue"`
	Transactions  int64   `json:"transactions" db:"transactions"`
}

// SegmentStats aggregates sales per customer segment.
type SegmentStats struct {
	Segment           string  `json:"segment" db:"segment"`
	CustomerCount     int64   `json:"customerCount" db:"customer_count"`
	TotalSpent        float64 `json:"totalSpent" db:"total_spent"`
	AvgSpent          float64 `json:"avgSpent" db:"avg_spent"`
	TotalTransactions int64   `json:"totalTransactions" db:"total_transactions"`
}

// TrendPoint is one bucket of a sales trend.
type TrendPoint struct {
	Period         string  `json:"period" db:"period"`
	Revenue        float64 `json:"revenue" db:"revenue"`
	Transactions   int64   `json:"transactions" db:"transactions"`
	AvgTransaction float64 `json:"avgTransaction" db:"avg_transaction"`
}

// CategoryMargin is the profitability of a product category.
type CategoryMargin struct {
	Category         string  `json:"category" db:"category"`
	Revenue          float64 `json:"revenue" db:"revenue"`
	Cost             float64 `json:"cost" db:"cost"`
	Profit           float64 `json:"profit" db:"profit"`
	MarginPercentage float64 `json:"marginPercentage" db:"margin_percentage"`
}

// Activity is a recent sale annotated with its revenue tier.
type Activity struct {
	SaleID       int64   `json:"saleId" db:"sale_id"`
	Date         Date    `json:"date" db:"date"`
	CustomerName string  `json:"customerName" db:"customer_name"`
	ProductName  string  `json:"productName" db:"product_name"`
	Amount       float64 `json:"amount" db:"amount"`
	Tier         string  `json:"tier" db:"-"`
}

// Performer is a product ranked by current-month revenue with its growth.
type Performer struct {
	Rank            int     `json:"rank"`
	ProductID       int64   `json:"productId"`
	Name            string  `json:"name"`
	CurrentRevenue  float64 `json:"currentRevenue"`
	PreviousRevenue float64 `json:"previousRevenue"`
	Growth          float64 `json:"growth"`
	Trend           string  `json:"trend"`
}

// MonthlyProductRevenue is one product's revenue in one month.
type MonthlyProductRevenue struct {
	ProductID int64   `db:"product_id"`
	Name      string  `db:"name"`
	Month     string  `db:"month"`
	Revenue   float64 `db:"revenue"`
}

// DailySales is a row of the sales summary report.
type DailySales struct {
	Date            Date    `json:"date" db:"date"`
	Transactions    int64   `json:"transactions" db:"transactions"`
	Revenue         float64 `json:"revenue" db:"revenue"`
	AvgTransaction  float64 `json:"avgTransaction" db:"avg_transaction"`
	UniqueCustomers int64   `json:"uniqueCustomers" db:"unique_customers"`
}

// ProductPerformance is a row of the product analysis report.
type ProductPerformance struct {
	Name      string  `json:"name" db:"name"`
	Category  string  `json:"category" db:"category"`
	UnitsSold int64   `json:"unitsSold" db:"units_sold"`
	Revenue   float64 `json:"revenue" db:"revenue"`
	AvgPrice  float64 `json:"avgPrice" db:"avg_price"`
	Profit    float64 `json:"profit" db:"profit"`
}

// CustomerValue is a row of the customer analysis report.
type CustomerValue struct {
	Name          string  `json:"name" db:"name"`
	Segment       string  `json:"segment" db:"segment"`
	JoinDate      Date    `json:"joinDate" db:"join_date"`
	PurchaseCount int64   `json:"purchaseCount" db:"purchase_count"`
	TotalSpent    float64 `json:"totalSpent" db:"total_spent"`
	LastPurchase  Date    `json:"lastPurchase" db:"last_purchase"`
	AvgPurchase   float64 `json:"avgPurchase" db:"avg_purchase"`
}

// FinancialMonth is a row of the financial report.
type FinancialMonth struct {
	Month           string  `json:"month" db:"month"`
	Revenue         float64 `json:"revenue" db:"revenue"`
	CostOfGoods     float64 `json:"costOfGoods" db:"cost_of_goods"`
	GrossProfit     float64 `json:"grossProfit" db:"gross_profit"`
	ActiveCustomers int64   `json:"activeCustomers" db:"active_customers"`
	Transactions    int64   `json:"transactions" db:"transactions"`
}

// Dashboard bundles everything the overview screen shows.
type Dashboard struct {
	Summary       SalesSummary      `json:"summary"`
	Trend         []TrendPoint      `json:"trend"`
	TopProducts   []TopProduct      `json:"topProducts"`
	Segments      []SegmentStats    `json:"segments"`
	ProfitMargins []CategoryMargin  `json:"profitMargins"`
	Recent        []Activity        `json:"recent"`
	TopPerformers []Performer       `json:"topPerformers"`
	LowStock      []InventoryStatus `json:"lowStock"`
	GeneratedAt   time.Time         `json:"generatedAt"`
}

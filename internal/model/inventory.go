package model

import "time"

// Stock status labels.
const (
	StockOut    = "Out of Stock"
	StockLow    = "Low"
	StockMedium = "Medium"
	StockGood   = "Good"
)

// InventoryRecord is a point-in-time snapshot of a product's stock.
type InventoryRecord struct {
	ID          int64     `json:"id" db:"id"`
	ProductID   int64     `json:"productId" db:"product_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`
}

// InventoryStatus is the current stock position of a product.
type InventoryStatus struct {
	ProductID     int64   `json:"productId" db:"product_id"`
	Name          string  `json:"name" db:"name"`
	Category      string  `json:"category" db:"category"`
	Stock         int     `json:"stock" db:"stock"`
	Price         float64 `json:"price" db:"price"`
	Cost          float64 `json:"cost" db:"cost"`
	ProfitPerUnit float64 `json:"profitPerUnit" db:"profit_per_unit"`
	Status        string  `json:"status" db:"status"`
}

// StockThresholds control the Low and Medium stock labels.
type StockThresholds struct {
	Low    int
	Medium int
}

// StockStatus labels a stock level.
func StockStatus(stock int, t StockThresholds) string {
	switch {
	case stock <= 0:
		return StockOut
	case stock <= t.Low:
		return StockLow
	case stock <= t.Medium:
		return StockMedium
	default:
		return StockGood
	}
}

package model

import "time"

// Product is an item in the catalogue with its current stock level.
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Price     float64   `json:"price" db:"price"`
	Cost      float64   `json:"cost" db:"cost"`
	Stock     int       `json:"stock" db:"stock"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProductFilter narrows a product listing.
// Search matches name or category.
type ProductFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// Validate checks the required fields and numeric bounds of a product.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ValidationError("product name is required")
	}
	if p.Price < 0 {
		return ValidationError("product price must not be negative")
	}
	if p.Cost < 0 {
		return ValidationError("product cost must not be negative")
	}
	return nil
}

// Package seed generates reproducible demo data.
package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"bizintel/internal/model"

	"github.com/shopspring/decimal"
)

// Generator draws demo rows from a seeded source. The same seed and today
// always produce the same rows.
type Generator struct {
	rng   *rand.Rand
	today model.Date
}

// NewGenerator creates a Generator whose dates end at today.
func NewGenerator(seed uint64, today model.Date) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed)),
		today: today,
	}
}

// Products returns n products with cost in 5..500, a 20..100% markup and stock in 0..1000.
func (g *Generator) Products(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		cost := decimal.NewFromFloat(5 + g.rng.Float64()*495).Round(2)
		markup := decimal.NewFromFloat(1.2 + g.rng.Float64()*0.8)

		products[i] = model.Product{
			Name:     fmt.Sprintf("%s %s", pick(g.rng, productNouns), pick(g.rng, productEditions)),
			Category: pick(g.rng, Categories),
			Price:    cost.Mul(markup).Round(2).InexactFloat64(),
			Cost:     cost.InexactFloat64(),
			Stock:    g.rng.IntN(1001),
		}
	}
	return products
}

// Customers returns n customers who joined within the last two years.
func (g *Generator) Customers(n int) []model.Customer {
	customers := make([]model.Customer, n)
	for i := range customers {
		first, last := pick(g.rng, firstNames), pick(g.rng, lastNames)
		customers[i] = model.Customer{
			Name:     first + " " + last,
			Email:    fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i+1, pick(g.rng, emailDomains)),
			Phone:    fmt.Sprintf("555-%03d-%04d", g.rng.IntN(1000), g.rng.IntN(10000)),
			JoinDate: g.today.AddDays(-g.rng.IntN(731)),
			Segment:  pick(g.rng, model.Segments),
		}
	}
	return customers
}

// Employees returns n employees hired within the last five years.
func (g *Generator) Employees(n int) []model.Employee {
	employees := make([]model.Employee, n)
	for i := range employees {
		employees[i] = model.Employee{
			Name:       pick(g.rng, firstNames) + " " + pick(g.rng, lastNames),
			Department: pick(g.rng, departments),
			Salary:     float64(35000 + g.rng.IntN(85)*1000),
			HireDate:   g.today.AddDays(-g.rng.IntN(5*365)),
		}
	}
	return employees
}

// Sales returns n sales dated within days before today. Amounts are the
// product price times a quantity in 1..10.
func (g *Generator) Sales(n, days int, products []model.Product, customers []model.Customer) []model.Sale {
	if len(products) == 0 || len(customers) == 0 {
		return nil
	}

	sales := make([]model.Sale, n)
	for i := range sales {
		p := products[g.rng.IntN(len(products))]
		qty := 1 + g.rng.IntN(10)
		sales[i] = model.Sale{
			Date:          g.today.AddDays(-g.rng.IntN(days + 1)),
			CustomerID:    customers[g.rng.IntN(len(customers))].ID,
			ProductID:     p.ID,
			Quantity:      qty,
			Amount:        decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(qty))).Round(2).InexactFloat64(),
			PaymentMethod: pick(g.rng, model.PaymentMethods),
		}
	}
	return sales
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

package transfer

import (
	"context"
	"fmt"
	"io"

	"bizintel/internal/model"
	"bizintel/internal/report"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Column sets written by Export. Their names match what Import reads back.
var (
	productColumns  = []string{"id", "name", "category", "price", "cost", "stock", "created_at"}
	customerColumns = []string{"id", "name", "email", "phone", "join_date", "segment"}
	saleColumns     = []string{"id", "date", "customer_id", "product_id", "quantity", "amount", "payment_method", "customer_name", "product_name"}
	employeeColumns = []string{"id", "name", "department", "salary", "hire_date"}
)

// ExportSummary counts the rows written per sheet.
type ExportSummary struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Sales     int `json:"sales"`
	Employees int `json:"employees"`
}

// Exporter writes every table to one workbook.
type Exporter struct {
	repos  *repository.Repositories
	logger zerolog.Logger
}

// NewExporter creates an Exporter reading through repos.
func NewExporter(repos *repository.Repositories, logger zerolog.Logger) *Exporter {
	return &Exporter{
		repos:  repos,
		logger: logger.With().Str("component", "exporter").Logger(),
	}
}

// Export writes the sheets Products, Customers, Sales and Employees to w.
func (e *Exporter) Export(ctx context.Context, w io.Writer) (*ExportSummary, error) {
	products, err := e.repos.Products.List(ctx, model.ProductFilter{})
	if err != nil {
		return nil, err
	}
	customers, err := e.repos.Customers.List(ctx, model.CustomerFilter{})
	if err != nil {
		return nil, err
	}
	sales, err := e.repos.Sales.List(ctx, model.SaleFilter{})
	if err != nil {
		return nil, err
	}
	employees, err := e.repos.Employees.List(ctx, model.EmployeeFilter{})
	if err != nil {
		return nil, err
	}

	sheets := []struct {
		name    string
		columns []string
		rows    [][]any
	}{
		{"Products", productColumns, productRows(products)},
		{"Customers", customerColumns, customerRows(customers)},
		{"Sales", saleColumns, saleRows(sales)},
		{"Employees", employeeColumns, employeeRows(employees)},
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", s.name, err)
		}
		if err := report.WriteSheet(f, s.name, s.columns, s.rows); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", s.name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	summary := &ExportSummary{
		Products:  len(products),
		Customers: len(customers),
		Sales:     len(sales),
		Employees: len(employees),
	}
	e.logger.Info().
		Int("products", summary.Products).
		Int("customers", summary.Customers).
		Int("sales", summary.Sales).
		Int("employees", summary.Employees).
		Msg("data exported")

	return summary, nil
}

func productRows(products []model.Product) [][]any {
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{p.ID, p.Name, p.Category, p.Price, p.Cost, p.Stock, p.CreatedAt.Format("2006-01-02 15:04:05")}
	}
	return rows
}

func customerRows(customers []model.Customer) [][]any {
	rows := make([][]any, len(customers))
	for i, c := range customers {
		rows[i] = []any{c.ID, c.Name, c.Email, c.Phone, c.JoinDate, c.Segment}
	}
	return rows
}

func saleRows(sales []model.SaleDetail) [][]any {
	rows := make([][]any, len(sales))
	for i, s := range sales {
		rows[i] = []any{s.ID, s.Date, s.CustomerID, s.ProductID, s.Quantity, s.Amount, s.PaymentMethod, s.CustomerName, s.ProductName}
	}
	return rows
}

func employeeRows(employees []model.Employee) [][]any {
	rows := make([][]any, len(employees))
	for i, e := range employees {
		rows[i] = []any{e.ID, e.Name, e.Department, e.Salary, e.HireDate}
	}
	return rows
}

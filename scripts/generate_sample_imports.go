package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"bizintel/internal/model"
	"bizintel/internal/report"
	"bizintel/internal/seed"

	"github.com/xuri/excelize/v2"
)

// generateSampleImports writes one file per importable entity in each supported format:
//
//	products.csv    name, category, price, cost, stock
//	customers.json  array of customer objects
//	employees.xlsx  first sheet holds the rows
//	sales.csv       references product and customer IDs 1..n, so import it
//	                into an empty store after products.csv and customers.json
//
// Row 3 of products.csv has a negative price and row 2 of sales.csv a zero
// quantity, to show skipped rows in the import result. Sales of product 3
// are skipped as well since that product never gets imported.
func main() {
	dataDir := "data/samples"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	gen := seed.NewGenerator(7, model.Today())
	products := gen.Products(12)
	customers := gen.Customers(8)
	employees := gen.Employees(5)

	for i := range products {
		products[i].ID = int64(i + 1)
	}
	for i := range customers {
		customers[i].ID = int64(i + 1)
	}
	products[2].Price = -1
	sales := gen.Sales(30, 60, products, customers)
	sales[1].Quantity = 0

	steps := []struct {
		name  string
		write func(path string) error
	}{
		{"products.csv", func(path string) error { return writeProducts(path, products) }},
		{"customers.json", func(path string) error { return writeCustomers(path, customers) }},
		{"employees.xlsx", func(path string) error { return writeEmployees(path, employees) }},
		{"sales.csv", func(path string) error { return writeSales(path, sales) }},
	}

	for _, step := range steps {
		path := filepath.Join(dataDir, step.name)
		if err := step.write(path); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Created %s\n", path)
	}

	fmt.Println("\nImport with:")
	fmt.Printf("  bizintel import products %s\n", filepath.Join(dataDir, "products.csv"))
	fmt.Printf("  bizintel import customers %s\n", filepath.Join(dataDir, "customers.json"))
	fmt.Printf("  bizintel import employees %s\n", filepath.Join(dataDir, "employees.xlsx"))
	fmt.Printf("  bizintel import sales %s\n", filepath.Join(dataDir, "sales.csv"))
}

func writeCSV(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeProducts(path string, products []model.Product) error {
	records := [][]string{{"Name", "Category", "Price", "Cost", "Stock"}}
	for _, p := range products {
		records = append(records, []string{p.Name, p.Category, money(p.Price), money(p.Cost), strconv.Itoa(p.Stock)})
	}
	return writeCSV(path, records)
}

func writeSales(path string, sales []model.Sale) error {
	records := [][]string{{"date", "customer_id", "product_id", "quantity", "payment_method"}}
	for _, s := range sales {
		records = append(records, []string{
			s.Date.String(),
			strconv.FormatInt(s.CustomerID, 10),
			strconv.FormatInt(s.ProductID, 10),
			strconv.Itoa(s.Quantity),
			s.PaymentMethod,
		})
	}
	return writeCSV(path, records)
}

func writeCustomers(path string, customers []model.Customer) error {
	type row struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Segment  string `json:"segment"`
		JoinDate string `json:"join_date"`
	}
	rows := make([]row, len(customers))
	for i, c := range customers {
		rows[i] = row{Name: c.Name, Email: c.Email, Phone: c.Phone, Segment: c.Segment, JoinDate: c.JoinDate.String()}
	}

	body, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

func writeEmployees(path string, employees []model.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Employees"); err != nil {
		return err
	}

	rows := make([][]any, len(employees))
	for i, e := range employees {
		rows[i] = []any{e.Name, e.Department, e.Salary, e.HireDate.String()}
	}
	if err := report.WriteSheet(f, "Employees", []string{"name", "department", "salary", "hire_date"}, rows); err != nil {
		return err
	}
	return f.SaveAs(path)
}

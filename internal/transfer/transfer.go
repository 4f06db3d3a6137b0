// Package transfer imports entity data from CSV, Excel and JSON files and
// exports the whole store as a multi-sheet Excel workbook.
package transfer

import (
	"fmt"
	"strings"

	"bizintel/internal/model"
)

// Entity names an importable table.
type Entity string

// Importable entities.
const (
	EntityProducts  Entity = "products"
	EntityCustomers Entity = "customers"
	EntitySales     Entity = "sales"
	EntityEmployees Entity = "employees"
)

// ParseEntity validates an entity name.
func ParseEntity(s string) (Entity, error) {
	switch e := Entity(strings.ToLower(strings.TrimSpace(s))); e {
	case EntityProducts, EntityCustomers, EntitySales, EntityEmployees:
		return e, nil
	default:
		return "", model.ValidationError(fmt.Sprintf("unknown entity %q (must be products, customers, sales or employees)", s))
	}
}

// Format is an input file format.
type Format string

// Supported input formats.
const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name. "xlsx" is accepted for Excel.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatExcel, FormatJSON:
		return f, nil
	case "xlsx":
		return FormatExcel, nil
	default:
		return "", model.ErrInvalidFormat
	}
}

// FormatFromFilename guesses the format from a file extension.
func FormatFromFilename(name string) (Format, error) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", model.ErrInvalidFormat
	}
	return ParseFormat(name[i+1:])
}

// Preview is the head of a parsed file.
type Preview struct {
	Entity  Entity              `json:"entity"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
	Total   int                 `json:"total"`
}

// Result summarises an import.
type Result struct {
	Entity   Entity   `json:"entity"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

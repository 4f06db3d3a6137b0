// Package report builds business reports from the analytics layer, renders
// them as PDF, Excel or CSV and stores the result locally or on S3.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bizintel/internal/model"

	"github.com/google/uuid"
)

// Type identifies a report.
type Type string

// Supported report types.
const (
	TypeSalesSummary     Type = "sales_summary"
	TypeProductAnalysis  Type = "product_analysis"
	TypeCustomerAnalysis Type = "customer_analysis"
	TypeFinancial        Type = "financial_report"
	TypeInventory        Type = "inventory"
)

// Types lists every report type.
var Types = []Type{TypeSalesSummary, TypeProductAnalysis, TypeCustomerAnalysis, TypeFinancial, TypeInventory}

// Title returns the human readable name of the report type.
func (t Type) Title() string {
	switch t {
	case TypeSalesSummary:
		return "Sales Summary"
	case TypeProductAnalysis:
		return "Product Analysis"
	case TypeCustomerAnalysis:
		return "Customer Analysis"
	case TypeFinancial:
		return "Financial Report"
	case TypeInventory:
		return "Inventory Report"
	default:
		return string(t)
	}
}

// ParseType validates a report type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", model.ValidationError(fmt.Sprintf("unknown report type %q", s))
}

// Format is an output file format.
type Format string

// Supported output formats.
const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a format name. "xlsx" is accepted for Excel.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatExcel, FormatCSV:
		return f, nil
	case "xlsx":
		return FormatExcel, nil
	default:
		return "", model.ErrInvalidFormat
	}
}

// Table is a titled grid of values. Cells hold strings, integers, floats or dates.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]any
}

// Document is a fully built report ready for rendering.
type Document struct {
	ID          uuid.UUID
	Type        Type
	Title       string
	Company     string
	Footer      string
	Range       model.DateRange
	GeneratedAt time.Time
	Highlights  []Highlight
	Table       Table
}

// Highlight is a headline figure printed above the table.
type Highlight struct {
	Label string
	Value string
}

// FileName returns <type>_<YYYYmmdd_HHMMSS>.<ext>.
func (d *Document) FileName(ext string) string {
	return fmt.Sprintf("%s_%s.%s", d.Type, d.GeneratedAt.Format("20060102_150405"), ext)
}

// Request asks for one report in one format.
type Request struct {
	Type      Type       `json:"type"`
	Format    Format     `json:"format"`
	StartDate model.Date `json:"startDate"`
	EndDate   model.Date `json:"endDate"`
}

// Range returns the requested date range.
func (r Request) Range() model.DateRange {
	return model.DateRange{Start: r.StartDate, End: r.EndDate}
}

// Result describes a generated and stored report.
type Result struct {
	ID          uuid.UUID `json:"id"`
	Type        Type      `json:"type"`
	Format      Format    `json:"format"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Size        int       `json:"size"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// cellText formats a table cell for text outputs.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case model.Date:
		return x.String()
	case time.Time:
		return x.Format("2006-01-02 15:04")
	default:
		return fmt.Sprint(x)
	}
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

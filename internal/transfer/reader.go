package transfer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bizintel/internal/model"

	"github.com/xuri/excelize/v2"
)

// table is a parsed file: lower-cased column names and one record per data row.
type table struct {
	columns []string
	records []map[string]string
}

// readTable parses r according to format.
func readTable(r io.Reader, format Format) (*table, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatExcel:
		return readExcel(r)
	case FormatJSON:
		return readJSON(r)
	default:
		return nil, model.ErrInvalidFormat
	}
}

func readCSV(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, model.ValidationError(fmt.Sprintf("invalid csv: %v", err))
	}
	return fromRows(rows), nil
}

// readExcel parses the first sheet of a workbook.
func readExcel(r io.Reader) (*table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, model.ValidationError(fmt.Sprintf("invalid excel workbook: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows), nil
}

// readJSON parses an array of flat objects.
func readJSON(r io.Reader) (*table, error) {
	var objects []map[string]any
	if err := json.NewDecoder(r).Decode(&objects); err != nil {
		return nil, model.ValidationError(fmt.Sprintf("invalid json: expected an array of objects: %v", err))
	}

	t := &table{}
	seen := map[string]bool{}
	for _, obj := range objects {
		rec := make(map[string]string, len(obj))
		for k, v := range obj {
			key := normaliseHeader(k)
			if !seen[key] {
				seen[key] = true
				t.columns = append(t.columns, key)
			}
			rec[key] = jsonText(v)
		}
		t.records = append(t.records, rec)
	}
	return t, nil
}

func fromRows(rows [][]string) *table {
	if len(rows) == 0 {
		return &table{}
	}

	t := &table{columns: make([]string, len(rows[0]))}
	for i, h := range rows[0] {
		t.columns[i] = normaliseHeader(h)
	}

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := make(map[string]string, len(t.columns))
		for i, col := range t.columns {
			if i < len(row) {
				rec[col] = strings.TrimSpace(row[i])
			}
		}
		t.records = append(t.records, rec)
	}
	return t
}

// normaliseHeader lower-cases a header and maps spaces to underscores so
// "Join Date" matches join_date.
func normaliseHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func jsonText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

package report

import (
	"fmt"
	"io"

	"bizintel/internal/model"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

type excelRenderer struct{}

func (excelRenderer) Extension() string { return "xlsx" }
func (excelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes the table to the first sheet with a bold, filtered header row
// and the report metadata to a second "Info" sheet.
func (excelRenderer) Render(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := doc.Title
	if len(sheet) > maxSheetName {
		sheet = sheet[:maxSheetName]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := WriteSheet(f, sheet, doc.Table.Columns, doc.Table.Rows); err != nil {
		return err
	}

	if _, err := f.NewSheet("Info"); err != nil {
		return fmt.Errorf("failed to add info sheet: %w", err)
	}
	info := [][]any{
		{"Report", doc.Title},
		{"Company", doc.Company},
		{"Generated On", doc.GeneratedAt.Format("2006-01-02 15:04")},
		{"Date Range", doc.Range.String()},
	}
	for _, h := range doc.Highlights {
		info = append(info, []any{h.Label, h.Value})
	}
	info = append(info, []any{"", doc.Footer})
	for i, row := range info {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Info", cell, &row); err != nil {
			return fmt.Errorf("failed to write info sheet: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteSheet writes a header row and data rows to sheet, styles the header and
// adds an auto filter over the written range.
func WriteSheet(f *excelize.File, sheet string, columns []string, rows [][]any) error {
	if len(columns) == 0 {
		return nil
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		values := make([]any, len(row))
		for j, v := range row {
			if d, ok := v.(model.Date); ok {
				values[j] = d.String()
				continue
			}
			values[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	ref := fmt.Sprintf("A1:%s%d", lastCol, len(rows)+1)
	if err := f.AutoFilter(sheet, ref, nil); err != nil {
		return fmt.Errorf("failed to add auto filter: %w", err)
	}
	return nil
}

package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

type csvRenderer struct{}

func (csvRenderer) Extension() string   { return "csv" }
func (csvRenderer) ContentType() string { return "text/csv" }

// Render writes the table only: a header row followed by one line per row.
func (csvRenderer) Render(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(doc.Table.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(doc.Table.Columns))
	for _, row := range doc.Table.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = cellText(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

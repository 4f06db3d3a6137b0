package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfRowHeight    = 7.0
	pdfHeaderHeight = 9.0
)

type pdfRenderer struct{}

func (pdfRenderer) Extension() string   { return "pdf" }
func (pdfRenderer) ContentType() string { return "application/pdf" }

// Render lays the document out as a title block followed by a grid with a grey
// header row and beige body, repeating the header on every page.
func (pdfRenderer) Render(w io.Writer, doc *Document) error {
	orientation := "P"
	if len(doc.Table.Columns) > 5 {
		orientation = "L"
	}

	pdf := fpdf.New(orientation, "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(doc.Title), false)
	pdf.SetAuthor(tr(doc.Company), false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s  |  Page %d", doc.Footer, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Business Intelligence Report: "+doc.Title), "", 1, "C", false, 0, "")
	if doc.Company != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, tr(doc.Company), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Generated on: "+doc.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Date Range: "+doc.Range.String(), "", 1, "L", false, 0, "")
	for _, h := range doc.Highlights {
		pdf.CellFormat(0, 5, tr(h.Label+": "+h.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if len(doc.Table.Columns) == 0 {
		return pdf.Output(w)
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	_, breakMargin := pdf.GetAutoPageBreak()
	colWidth := (pageWidth - left - right) / float64(len(doc.Table.Columns))

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(245, 245, 245)
		pdf.SetDrawColor(0, 0, 0)
		for _, col := range doc.Table.Columns {
			pdf.CellFormat(colWidth, pdfHeaderHeight, tr(fitText(pdf, col, colWidth)), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetFillColor(245, 245, 220)
		pdf.SetTextColor(0, 0, 0)
	}

	header()
	for _, row := range doc.Table.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-breakMargin {
			pdf.AddPage()
			header()
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, tr(fitText(pdf, cellText(cell), colWidth)), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(doc.Table.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, pdfRowHeight, "No data for the selected period.", "", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

// fitText shortens s with an ellipsis until it fits a cell of width w.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

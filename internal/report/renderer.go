package report

import (
	"io"

	"bizintel/internal/model"
)

// Renderer writes a document in one output format.
type Renderer interface {
	Render(w io.Writer, doc *Document) error
	Extension() string
	ContentType() string
}

// RendererFor returns the renderer of format f.
func RendererFor(f Format) (Renderer, error) {
	switch f {
	case FormatPDF:
		return pdfRenderer{}, nil
	case FormatExcel:
		return excelRenderer{}, nil
	case FormatCSV:
		return csvRenderer{}, nil
	default:
		return nil, model.ErrInvalidFormat
	}
}

package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"bizintel/internal/model"
	"bizintel/internal/transfer"

	"github.com/rs/zerolog"
)

// Importer loads uploaded files.
type Importer interface {
	Preview(r io.Reader, entity transfer.Entity, format transfer.Format, n int) (*transfer.Preview, error)
	Import(ctx context.Context, r io.Reader, entity transfer.Entity, format transfer.Format) (*transfer.Result, error)
}

// Exporter writes the full data set as a workbook.
type Exporter interface {
	Export(ctx context.Context, w io.Writer) (*transfer.ExportSummary, error)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransferHandler handles data import and export.
type TransferHandler struct {
	importer Importer
	exporter Exporter
	now      func() time.Time
	logger   zerolog.Logger
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(importer Importer, exporter Exporter, logger zerolog.Logger) *TransferHandler {
	return &TransferHandler{
		importer: importer,
		exporter: exporter,
		now:      time.Now,
		logger:   logger.With().Str("handler", "transfer").Logger(),
	}
}

// Import handles POST /api/import/{entity}?format=csv|excel|json[&preview=N].
// The request body is the file itself. With preview set nothing is written.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	entity, err := transfer.ParseEntity(r.PathValue("entity"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		respondError(w, r, model.ValidationError("format parameter is required (csv, excel or json)"), h.logger)
		return
	}
	format, err := transfer.ParseFormat(formatName)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		respondError(w, r, model.ValidationError(fmt.Sprintf("failed to read upload: %v", err)), h.logger)
		return
	}

	if r.URL.Query().Has("preview") {
		n, err := strconv.Atoi(r.URL.Query().Get("preview"))
		if err != nil {
			respondError(w, r, model.ValidationError("invalid preview parameter"), h.logger)
			return
		}
		preview, err := h.importer.Preview(bytes.NewReader(body), entity, format, n)
		if err != nil {
			respondError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, preview)
		return
	}

	result, err := h.importer.Import(r.Context(), bytes.NewReader(body), entity, format)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Export handles GET /api/export.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	summary, err := h.exporter.Export(r.Context(), &buf)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	name := fmt.Sprintf("business_data_%s.xlsx", h.now().Format("20060102_150405"))
	attachment(w, name, xlsxContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Msg("failed to stream export")
		return
	}

	h.logger.Info().Int("sales", summary.Sales).Str("file", name).Msg("export downloaded")
}

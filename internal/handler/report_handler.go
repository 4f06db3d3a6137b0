package handler

import (
	"net/http"
	"strconv"

	"bizintel/internal/report"

	"github.com/rs/zerolog"
)

// ReportHandler generates report files.
type ReportHandler struct {
	generator report.Generator
	logger    zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(generator report.Generator, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		generator: generator,
		logger:    logger.With().Str("handler", "report").Logger(),
	}
}

// Generate handles POST /api/reports. The file is stored and its location returned.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req report.Request
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if err := req.Range().Validate(); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	result, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Render handles GET /api/reports/render?type=&format=&startDate=&endDate= and
// streams the file without storing it.
func (h *ReportHandler) Render(w http.ResponseWriter, r *http.Request) {
	rng, err := queryRange(r)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	rendered, err := h.generator.Render(r.Context(), report.Request{
		Type:      report.Type(r.URL.Query().Get("type")),
		Format:    report.Format(r.URL.Query().Get("format")),
		StartDate: rng.Start,
		EndDate:   rng.End,
	})
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	attachment(w, rendered.Name, rendered.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(rendered.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rendered.Body); err != nil {
		h.logger.Warn().Err(err).Str("report", rendered.Name).Msg("failed to stream report")
	}
}

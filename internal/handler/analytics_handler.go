package handler

import (
	"net/http"
	"time"

	"bizintel/internal/analytics"
	"bizintel/internal/model"

	"github.com/rs/zerolog"
)

// AnalyticsHandler exposes the individual dashboard metrics.
type AnalyticsHandler struct {
	calc   analytics.Calculator
	now    func() time.Time
	logger zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(calc analytics.Calculator, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		calc:   calc,
		now:    time.Now,
		logger: logger.With().Str("handler", "analytics").Logger(),
	}
}

// Summary handles GET /api/analytics/summary?startDate=&endDate=.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rng, err := queryRange(r)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	summary, err := h.calc.SalesSummary(r.Context(), rng)
	h.respond(w, r, summary, err)
}

// TopProducts handles GET /api/analytics/top-products?limit=.
func (h *AnalyticsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	products, err := h.calc.TopProducts(r.Context(), limit)
	h.respond(w, r, products, err)
}

// Segments handles GET /api/analytics/segments.
func (h *AnalyticsHandler) Segments(w http.ResponseWriter, r *http.Request) {
	segments, err := h.calc.CustomerSegmentation(r.Context())
	h.respond(w, r, segments, err)
}

// Trend handles GET /api/analytics/trend?period=daily|weekly|monthly.
func (h *AnalyticsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	period := model.PeriodMonthly
	if p := r.URL.Query().Get("period"); p != "" {
		var err error
		if period, err = model.ParsePeriod(p); err != nil {
			respondError(w, r, err, h.logger)
			return
		}
	}
	points, err := h.calc.SalesTrend(r.Context(), period)
	h.respond(w, r, points, err)
}

// ProfitMargin handles GET /api/analytics/profit-margin.
func (h *AnalyticsHandler) ProfitMargin(w http.ResponseWriter, r *http.Request) {
	margins, err := h.calc.ProfitMargin(r.Context())
	h.respond(w, r, margins, err)
}

// Recent handles GET /api/analytics/recent?limit=.
func (h *AnalyticsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	activity, err := h.calc.RecentActivity(r.Context(), limit)
	h.respond(w, r, activity, err)
}

// TopPerformers handles GET /api/analytics/top-performers?limit=.
func (h *AnalyticsHandler) TopPerformers(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	performers, err := h.calc.TopPerformers(r.Context(), h.now(), limit)
	h.respond(w, r, performers, err)
}

func (h *AnalyticsHandler) respond(w http.ResponseWriter, r *http.Request, data any, err error) {
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

package handler

import (
	"context"
	"net/http"

	"bizintel/internal/ml"

	"github.com/rs/zerolog"
)

// Predictor trains the sales model and scores feature sets.
type Predictor interface {
	Train(ctx context.Context) (*ml.Model, error)
	Predict(ctx context.Context, features map[string]float64) (*ml.Prediction, error)
}

// PredictRequest is the body of POST /api/ml/predict.
type PredictRequest struct {
	Features map[string]float64 `json:"features"`
}

// MLHandler serves model training and prediction.
type MLHandler struct {
	predictor Predictor
	logger    zerolog.Logger
}

// NewMLHandler creates a new ML handler.
func NewMLHandler(predictor Predictor, logger zerolog.Logger) *MLHandler {
	return &MLHandler{
		predictor: predictor,
		logger:    logger.With().Str("handler", "ml").Logger(),
	}
}

// Train handles POST /api/ml/train.
func (h *MLHandler) Train(w http.ResponseWriter, r *http.Request) {
	m, err := h.predictor.Train(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Predict handles POST /api/ml/predict.
func (h *MLHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	prediction, err := h.predictor.Predict(r.Context(), req.Features)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

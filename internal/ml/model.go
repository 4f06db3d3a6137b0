// Package ml trains and serves a linear regression model predicting sale amounts.
package ml

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metrics evaluates a model on the held-out split.
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Model is a fitted linear model. Coefficients align with Features.
type Model struct {
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Metrics      Metrics   `json:"metrics"`
	TrainRows    int       `json:"trainRows"`
	TestRows     int       `json:"testRows"`
	TrainedAt    time.Time `json:"trainedAt"`
}

// Prediction is the result of scoring one feature set.
type Prediction struct {
	Amount    float64   `json:"amount"`
	Ignored   []string  `json:"ignored"`
	TrainedAt time.Time `json:"trainedAt"`
}

// Predict scores a feature row given in model order.
func (m *Model) Predict(row []float64) float64 {
	return m.Intercept + floats.Dot(m.Coefficients, row)
}

// PredictNamed scores named features. Missing features count as zero and
// names the model does not know are returned as ignored.
func (m *Model) PredictNamed(features map[string]float64) (float64, []string) {
	row := make([]float64, len(m.Features))
	index := make(map[string]int, len(m.Features))
	for i, name := range m.Features {
		index[name] = i
	}

	ignored := []string{}
	for name, v := range features {
		i, ok := index[name]
		if !ok {
			ignored = append(ignored, name)
			continue
		}
		row[i] = v
	}
	sort.Strings(ignored)

	return m.Predict(row), ignored
}

// evaluate compares predictions with actual values.
func evaluate(predicted, actual []float64) Metrics {
	if len(actual) == 0 {
		return Metrics{}
	}
	n := float64(len(actual))
	return Metrics{
		MAE:  finite(floats.Distance(predicted, actual, 1) / n),
		RMSE: finite(floats.Distance(predicted, actual, 2) / math.Sqrt(n)),
		R2:   finite(stat.RSquaredFrom(predicted, actual, nil)),
	}
}

// finite maps NaN and infinities to zero so metrics always encode as JSON.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

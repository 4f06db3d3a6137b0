package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bizintel/internal/config"
	"bizintel/internal/database"
	"bizintel/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// MinTrainingRows is the smallest dataset Train accepts after lag rows are dropped.
const MinTrainingRows = 10

const modelFile = "sales_model.json"

// Predictor prepares training data, fits the model and serves predictions.
type Predictor struct {
	db     *sqlx.DB
	cfg    config.MLConfig
	now    func() time.Time
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewPredictor creates a Predictor reading sales from db and storing the model under cfg.ModelDir.
func NewPredictor(db *database.DB, cfg config.MLConfig, logger zerolog.Logger) *Predictor {
	return &Predictor{
		db:     db.DB,
		cfg:    cfg,
		now:    time.Now,
		logger: logger.With().Str("component", "ml").Logger(),
	}
}

// ModelPath returns where the trained model is stored.
func (p *Predictor) ModelPath() string {
	return filepath.Join(p.cfg.ModelDir, modelFile)
}

// PrepareData builds the feature matrix from the full sales history.
func (p *Predictor) PrepareData(ctx context.Context) (*Dataset, error) {
	sales, err := p.loadSales(ctx)
	if err != nil {
		return nil, err
	}
	return buildDataset(sales), nil
}

// Train fits the model on a seeded shuffle of the dataset, evaluates it on
// the held-out split and stores it.
func (p *Predictor) Train(ctx context.Context) (*Model, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.train(ctx)
}

func (p *Predictor) train(ctx context.Context) (*Model, error) {
	data, err := p.PrepareData(ctx)
	if err != nil {
		return nil, err
	}
	if data.Len() < MinTrainingRows {
		p.logger.Warn().Int("rows", data.Len()).Msg("not enough sales history to train")
		return nil, model.ErrNotEnoughData
	}

	trainIdx, testIdx := split(data.Len(), p.cfg.TestSize, p.cfg.RandomSeed)

	x, y := subset(data, trainIdx)
	coefficients, intercept, err := fitOLS(x, y)
	if err != nil {
		return nil, fmt.Errorf("failed to fit model: %w", err)
	}

	m := &Model{
		Features:     data.Features,
		Coefficients: coefficients,
		Intercept:    intercept,
		TrainRows:    len(trainIdx),
		TestRows:     len(testIdx),
		TrainedAt:    p.now().UTC(),
	}

	testX, testY := subset(data, testIdx)
	predicted := make([]float64, len(testX))
	for i, row := range testX {
		predicted[i] = m.Predict(row)
	}
	m.Metrics = evaluate(predicted, testY)

	if err := p.save(m); err != nil {
		return nil, err
	}

	p.logger.Info().
		Int("train_rows", m.TrainRows).
		Int("test_rows", m.TestRows).
		Int("features", len(m.Features)).
		Float64("mae", m.Metrics.MAE).
		Float64("rmse", m.Metrics.RMSE).
		Float64("r2", m.Metrics.R2).
		Msg("model trained")

	return m, nil
}

// Load reads the stored model. It returns model.ErrModelNotTrained when none exists.
func (p *Predictor) Load() (*Model, error) {
	b, err := os.ReadFile(p.ModelPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrModelNotTrained
		}
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if len(m.Features) != len(m.Coefficients) {
		return nil, fmt.Errorf("corrupt model: %d features but %d coefficients", len(m.Features), len(m.Coefficients))
	}
	return &m, nil
}

// Predict scores named features with the stored model, training one first when none exists.
func (p *Predictor) Predict(ctx context.Context, features map[string]float64) (*Prediction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, err := p.Load()
	if errors.Is(err, model.ErrModelNotTrained) {
		p.logger.Info().Msg("no stored model, training first")
		m, err = p.train(ctx)
	}
	if err != nil {
		return nil, err
	}

	amount, ignored := m.PredictNamed(features)
	if len(ignored) > 0 {
		p.logger.Debug().Strs("ignored", ignored).Msg("prediction ignored unknown features")
	}

	return &Prediction{
		Amount:    math.Round(amount*100) / 100,
		Ignored:   ignored,
		TrainedAt: m.TrainedAt,
	}, nil
}

// save writes the model through a temporary file so readers never see a partial model.
func (p *Predictor) save(m *Model) error {
	if err := os.MkdirAll(p.cfg.ModelDir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	tmp, err := os.CreateTemp(p.cfg.ModelDir, modelFile+".*")
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.ModelPath()); err != nil {
		return fmt.Errorf("failed to store model: %w", err)
	}
	return nil
}

// split shuffles 0..n-1 with seed and holds out round(n*testSize) indices,
// keeping at least one test row and two training rows.
func split(n int, testSize float64, seed uint64) (train, test []int) {
	idx := rand.New(rand.NewPCG(seed, seed)).Perm(n)

	testN := int(math.Round(float64(n) * testSize))
	testN = max(1, min(testN, n-2))

	return idx[testN:], idx[:testN]
}

func subset(d *Dataset, idx []int) ([][]float64, []float64) {
	x := make([][]float64, len(idx))
	y := make([]float64, len(idx))
	for i, j := range idx {
		x[i] = d.Rows[j]
		y[i] = d.Targets[j]
	}
	return x, y
}

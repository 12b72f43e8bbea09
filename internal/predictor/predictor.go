package predictor

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"rulpredict/internal/artifact"
	"rulpredict/internal/frame"
	"rulpredict/internal/model"
)

// Predictor adapts arbitrary input frames to the model's feature schema. It
// holds only read-only state and may be shared across goroutines as long as
// the underlying model is.
type Predictor struct {
	model    model.Regressor
	features []string
	log      zerolog.Logger
}

// New builds a Predictor from loaded artifacts.
func New(a artifact.Artifacts, log zerolog.Logger) (*Predictor, error) {
	if a.Model == nil {
		return nil, fmt.Errorf("predictor: nil model")
	}
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("predictor: empty feature list")
	}
	if a.Model.NumFeatures() != len(a.Features) {
		return nil, &model.ShapeError{Want: a.Model.NumFeatures(), Got: len(a.Features)}
	}
	return &Predictor{
		model:    a.Model,
		features: append([]string(nil), a.Features...),
		log:      log.With().Str("component", "predictor").Logger(),
	}, nil
}

// Features returns the ordered feature columns the model consumes.
func (p *Predictor) Features() []string { return append([]string(nil), p.features...) }

// Predict selects the feature columns from input in feature-list order,
// ignoring every other column, and returns one prediction per input row in
// input row order. Missing columns, non-numeric cells and shape mismatches
// are returned as-is.
func (p *Predictor) Predict(input *frame.Frame) ([]float64, error) {
	start := time.Now()
	preds, err := p.predict(input)
	observe(err, len(preds), time.Since(start))
	if err != nil {
		p.log.Debug().Err(err).Int("rows", input.Len()).Msg("predict failed")
		return nil, err
	}
	p.log.Debug().Int("rows", len(preds)).Dur("dur", time.Since(start)).Msg("predict")
	return preds, nil
}

func (p *Predictor) predict(input *frame.Frame) ([]float64, error) {
	X, err := input.Matrix(p.features...)
	if errors.Is(err, frame.ErrEmpty) {
		return []float64{}, nil
	}
	if err != nil {
		return nil, err
	}
	preds, err := p.model.Predict(X)
	if err != nil {
		return nil, err
	}
	if len(preds) != input.Len() {
		return nil, fmt.Errorf("model returned %d predictions for %d rows", len(preds), input.Len())
	}
	return preds, nil
}

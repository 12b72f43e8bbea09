package model

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Linear is an ordinary linear regressor: intercept + coef·x.
type Linear struct {
	intercept float64
	coef      []float64
}

func NewLinear(intercept float64, coef []float64) (*Linear, error) {
	if len(coef) == 0 {
		return nil, errInvalid("linear model has no coefficients")
	}
	return &Linear{intercept: intercept, coef: append([]float64(nil), coef...)}, nil
}

func (l *Linear) NumFeatures() int { return len(l.coef) }

func (l *Linear) Predict(X mat.Matrix) ([]float64, error) {
	r, err := checkShape(X, len(l.coef))
	if err != nil {
		return nil, err
	}
	out := make([]float64, r)
	row := make([]float64, len(l.coef))
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		out[i] = l.intercept + floats.Dot(l.coef, row)
	}
	return out, nil
}

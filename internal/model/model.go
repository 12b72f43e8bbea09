package model

import "gonum.org/v1/gonum/mat"

// Regressor is a trained model that maps a numeric feature matrix to one
// prediction per row. Implementations are immutable once built and safe for
// concurrent use.
type Regressor interface {
	Predict(X mat.Matrix) ([]float64, error)
	// NumFeatures is the column count Predict expects.
	NumFeatures() int
}

// Kinds understood by the artifact codec.
const (
	KindRandomForest = "random_forest"
	KindLinear       = "linear"
)

func checkShape(X mat.Matrix, want int) (rows int, err error) {
	r, c := X.Dims()
	if c != want {
		return 0, &ShapeError{Want: want, Got: c}
	}
	return r, nil
}

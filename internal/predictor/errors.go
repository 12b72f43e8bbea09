package predictor

import (
	"rulpredict/internal/frame"
	"rulpredict/internal/model"
)

// IsMissingColumn reports whether err means a feature column was absent from the input.
func IsMissingColumn(err error) bool { return frame.IsMissingColumn(err) }

// IsType reports whether err means a feature cell was not numeric.
func IsType(err error) bool { return frame.IsType(err) }

// IsShape reports whether err means the feature matrix width did not match the model.
func IsShape(err error) bool { return model.IsShape(err) }

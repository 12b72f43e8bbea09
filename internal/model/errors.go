package model

import (
	"errors"
	"fmt"
)

// ShapeError reports a feature matrix whose width does not match the model.
type ShapeError struct {
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("model expects %d features, got %d", e.Want, e.Got)
}

// IsShape reports whether err is (or wraps) a ShapeError.
func IsShape(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// invalidModelError signals a structurally broken model definition.
type invalidModelError struct{ msg string }

func (e invalidModelError) Error() string { return "invalid model: " + e.msg }

func errInvalid(format string, a ...any) error {
	return invalidModelError{msg: fmt.Sprintf(format, a...)}
}

// IsInvalid reports whether err indicates a malformed model definition.
func IsInvalid(err error) bool {
	var ie invalidModelError
	return errors.As(err, &ie)
}

package frame

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned when a numeric matrix is requested from a frame with no
// rows or no columns.
var ErrEmpty = errors.New("frame: empty selection")

// MissingColumnError lists required columns absent from a frame.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("columns not found: [%s]", strings.Join(e.Columns, ", "))
}

// TypeError reports a cell that cannot be used as a number.
type TypeError struct {
	Row    int
	Column string
	Value  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("row %d column %q: %q is not numeric", e.Row, e.Column, e.Value)
}

// IsMissingColumn reports whether err is (or wraps) a MissingColumnError.
func IsMissingColumn(err error) bool {
	var me *MissingColumnError
	return errors.As(err, &me)
}

// IsType reports whether err is (or wraps) a TypeError.
func IsType(err error) bool {
	var te *TypeError
	return errors.As(err, &te)
}

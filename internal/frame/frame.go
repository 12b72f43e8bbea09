// Package frame holds the tabular input handed to the predictor: named
// columns of raw cells, read from CSV or built in memory. A Frame is never
// mutated after construction; every transformation returns a new Frame that
// may share cell storage with its source.
package frame

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

type Frame struct {
	columns []string
	pos     map[string]int
	cells   [][]string // column-major: cells[col][row]
	index   []int      // original row position of each row
}

// New builds a frame from a header and row-major records. Every record must
// have exactly one cell per column and column names must be unique.
func New(columns []string, rows [][]string) (*Frame, error) {
	f, err := empty(columns, len(rows))
	if err != nil {
		return nil, err
	}
	for r, rec := range rows {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("row %d: %d cells, want %d", r, len(rec), len(columns))
		}
		for c, v := range rec {
			f.cells[c][r] = v
		}
		f.index[r] = r
	}
	return f, nil
}

func empty(columns []string, n int) (*Frame, error) {
	f := &Frame{
		columns: append([]string(nil), columns...),
		pos:     make(map[string]int, len(columns)),
		cells:   make([][]string, len(columns)),
		index:   make([]int, n),
	}
	for i, name := range columns {
		if _, dup := f.pos[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		f.pos[name] = i
		f.cells[i] = make([]string, n)
	}
	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.index) }

// Columns returns the column names in native order.
func (f *Frame) Columns() []string { return append([]string(nil), f.columns...) }

func (f *Frame) Has(name string) bool {
	_, ok := f.pos[name]
	return ok
}

// Index returns the original row position of each row; it survives Select
// and Sample so sampled rows can be traced back to the source file.
func (f *Frame) Index() []int { return append([]int(nil), f.index...) }

// Column returns a copy of the named column's cells.
func (f *Frame) Column(name string) ([]string, error) {
	c, ok := f.pos[name]
	if !ok {
		return nil, &MissingColumnError{Columns: []string{name}}
	}
	return append([]string(nil), f.cells[c]...), nil
}

// Select projects the frame onto names, in that order, dropping every other
// column. All absent names are reported together.
func (f *Frame) Select(names ...string) (*Frame, error) {
	if err := f.require(names); err != nil {
		return nil, err
	}
	out := &Frame{
		columns: append([]string(nil), names...),
		pos:     make(map[string]int, len(names)),
		cells:   make([][]string, len(names)),
		index:   f.index,
	}
	for i, name := range names {
		if _, dup := out.pos[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		out.pos[name] = i
		out.cells[i] = f.cells[f.pos[name]]
	}
	return out, nil
}

func (f *Frame) require(names []string) error {
	var missing []string
	for _, name := range names {
		if !f.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Columns: missing}
	}
	return nil
}

// Matrix parses the named columns into a rows x len(names) matrix, columns in
// names order. Cells must parse as float64.
func (f *Frame) Matrix(names ...string) (*mat.Dense, error) {
	if err := f.require(names); err != nil {
		return nil, err
	}
	if f.Len() == 0 || len(names) == 0 {
		return nil, ErrEmpty
	}
	data := make([]float64, f.Len()*len(names))
	for j, name := range names {
		col := f.cells[f.pos[name]]
		for i, raw := range col {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, &TypeError{Row: f.index[i], Column: name, Value: raw}
			}
			data[i*len(names)+j] = v
		}
	}
	return mat.NewDense(f.Len(), len(names), data), nil
}

// Sample draws n distinct rows using a generator seeded with seed, so the same
// frame, n and seed always yield the same rows in the same order.
func (f *Frame) Sample(n int, seed int64) (*Frame, error) {
	if n < 0 || n > f.Len() {
		return nil, fmt.Errorf("cannot sample %d rows from %d without replacement", n, f.Len())
	}
	rng := rand.New(rand.NewSource(seed))
	return f.take(rng.Perm(f.Len())[:n]), nil
}

func (f *Frame) take(rows []int) *Frame {
	out, _ := empty(f.columns, len(rows))
	for c := range f.columns {
		for i, r := range rows {
			out.cells[c][i] = f.cells[c][r]
		}
	}
	for i, r := range rows {
		out.index[i] = f.index[r]
	}
	return out
}

// WithColumn returns a copy of f with name set to values, appended when the
// column is new and replaced in place otherwise.
func (f *Frame) WithColumn(name string, values []string) (*Frame, error) {
	if len(values) != f.Len() {
		return nil, fmt.Errorf("column %q: %d values for %d rows", name, len(values), f.Len())
	}
	out := &Frame{
		columns: append([]string(nil), f.columns...),
		pos:     make(map[string]int, len(f.columns)+1),
		cells:   append([][]string(nil), f.cells...),
		index:   f.index,
	}
	for k, v := range f.pos {
		out.pos[k] = v
	}
	col := append([]string(nil), values...)
	if c, ok := out.pos[name]; ok {
		out.cells[c] = col
		return out, nil
	}
	out.pos[name] = len(out.columns)
	out.columns = append(out.columns, name)
	out.cells = append(out.cells, col)
	return out, nil
}

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"rulpredict/internal/frame"
	"rulpredict/pkg/types"
)

// PredictionColumn names the appended prediction column.
const PredictionColumn = "predicted_RUL"

// DefaultIDColumns identify an engine observation.
var DefaultIDColumns = []string{"unit", "cycle"}

// Report joins identifier columns of scored rows with their predictions.
type Report struct {
	table *frame.Frame
	ids   []string
	preds []float64
}

// Build copies idColumns out of input and appends predictions, which must be
// aligned with input rows.
func Build(input *frame.Frame, preds []float64, idColumns ...string) (*Report, error) {
	if len(preds) != input.Len() {
		return nil, fmt.Errorf("report: %d predictions for %d rows", len(preds), input.Len())
	}
	ids, err := input.Select(idColumns...)
	if err != nil {
		return nil, err
	}
	cells := make([]string, len(preds))
	for i, v := range preds {
		cells[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	table, err := ids.WithColumn(PredictionColumn, cells)
	if err != nil {
		return nil, err
	}
	return &Report{
		table: table,
		ids:   append([]string(nil), idColumns...),
		preds: append([]float64(nil), preds...),
	}, nil
}

func (r *Report) Len() int { return r.table.Len() }

// Columns returns the report header: identifier columns then predicted_RUL.
func (r *Report) Columns() []string { return r.table.Columns() }

// WriteTable renders an aligned plain-text table with a header row.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	cols := r.table.Columns()
	cells := make([][]string, len(cols))
	for c, name := range cols {
		cells[c], _ = r.table.Column(name)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(cols, "\t")+"\t"); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for i := 0; i < r.table.Len(); i++ {
		for c := range cols {
			row[c] = cells[c][i]
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteNDJSON emits one types.Prediction per line.
func (r *Report) WriteNDJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	index := r.table.Index()
	cols := make(map[string][]string, len(r.ids))
	for _, name := range r.ids {
		cols[name], _ = r.table.Column(name)
	}
	for i, v := range r.preds {
		p := types.Prediction{Row: index[i], PredictedRUL: v}
		if len(r.ids) > 0 {
			p.IDs = make(map[string]string, len(r.ids))
			for _, name := range r.ids {
				p.IDs[name] = cols[name][i]
			}
		}
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}

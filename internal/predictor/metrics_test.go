package predictor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rulpredict/internal/frame"
	"rulpredict/internal/model"
)

func TestOutcomeLabels(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&frame.MissingColumnError{Columns: []string{"s2"}}, "missing_column"},
		{&frame.TypeError{Column: "s2"}, "type"},
		{&model.ShapeError{Want: 1, Got: 2}, "shape"},
		{errors.New("boom"), "error"},
	}
	for _, c := range cases {
		if got := outcome(c.err); got != c.want {
			t.Fatalf("outcome(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	p := newLinear(t)
	if _, err := p.Predict(readFrame(t, input)); err != nil {
		t.Fatalf("predict: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rulpredict.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, name := range []string{"rulpredict_predictor_calls_total", "rulpredict_predictor_rows_total", "rulpredict_predictor_duration_seconds"} {
		if !strings.Contains(string(b), name) {
			t.Fatalf("expected %s in textfile output", name)
		}
	}
}

package predictor

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"rulpredict/internal/artifact"
	"rulpredict/internal/frame"
	"rulpredict/internal/model"
)

// fakeModel returns a fixed number of predictions or a canned error.
type fakeModel struct {
	n     int
	count int
	err   error
}

func (f fakeModel) NumFeatures() int { return f.n }
func (f fakeModel) Predict(X mat.Matrix) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return make([]float64, f.count), nil
}

func newLinear(t *testing.T) *Predictor {
	t.Helper()
	l, err := model.NewLinear(10, []float64{1, 100, -1})
	if err != nil {
		t.Fatalf("linear: %v", err)
	}
	p, err := New(artifact.Artifacts{Model: l, Features: []string{"s2", "s3", "s4"}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return p
}

func readFrame(t *testing.T, s string) *frame.Frame {
	t.Helper()
	f, err := frame.ReadCSV(strings.NewReader(s))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return f
}

const input = `unit,cycle,s2,s3,s4,s9
1,1,1,2,3,99
1,2,4,5,6,99
2,1,7,8,9,99
`

// same rows, columns shuffled
const permuted = `s9,s4,cycle,s3,unit,s2
99,3,1,2,1,1
99,6,2,5,1,4
99,9,1,8,2,7
`

func TestPredict_LengthAndValues(t *testing.T) {
	p := newLinear(t)
	got, err := p.Predict(readFrame(t, input))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := []float64{10 + 1 + 200 - 3, 10 + 4 + 500 - 6, 10 + 7 + 800 - 9}
	if len(got) != 3 {
		t.Fatalf("len=%d want 3", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestPredict_ColumnOrderIrrelevant(t *testing.T) {
	p := newLinear(t)
	a, err := p.Predict(readFrame(t, input))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	b, err := p.Predict(readFrame(t, permuted))
	if err != nil {
		t.Fatalf("predict permuted: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPredict_MissingColumnFails(t *testing.T) {
	p := newLinear(t)
	in := readFrame(t, "unit,cycle,s2,s4\n1,1,1,3\n")
	got, err := p.Predict(in)
	if !IsMissingColumn(err) {
		t.Fatalf("expected missing column error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %v", got)
	}
	if !strings.Contains(err.Error(), "s3") {
		t.Fatalf("error should name s3: %v", err)
	}
}

func TestPredict_TypeError(t *testing.T) {
	p := newLinear(t)
	_, err := p.Predict(readFrame(t, "s2,s3,s4\n1,x,3\n"))
	if !IsType(err) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestPredict_ModelErrorsPropagate(t *testing.T) {
	shape := &model.ShapeError{Want: 1, Got: 2}
	p, err := New(artifact.Artifacts{Model: fakeModel{n: 1, err: shape}, Features: []string{"s2"}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := p.Predict(readFrame(t, "s2\n1\n")); err != shape {
		t.Fatalf("expected model error unmodified, got %v", err)
	}

	short, _ := New(artifact.Artifacts{Model: fakeModel{n: 1, count: 1}, Features: []string{"s2"}}, zerolog.Nop())
	if _, err := short.Predict(readFrame(t, "s2\n1\n2\n")); err == nil {
		t.Fatalf("expected error when model returns fewer predictions than rows")
	}
}

func TestPredict_EmptyInput(t *testing.T) {
	p := newLinear(t)
	got, err := p.Predict(readFrame(t, "s2,s3,s4\n"))
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v err=%v", got, err)
	}
	if _, err := p.Predict(readFrame(t, "s2\n")); !IsMissingColumn(err) {
		t.Fatalf("empty input still needs the feature columns, got %v", err)
	}
}

func TestPredict_DoesNotMutateInput(t *testing.T) {
	p := newLinear(t)
	in := readFrame(t, input)
	before := in.Columns()
	if _, err := p.Predict(in); err != nil {
		t.Fatalf("predict: %v", err)
	}
	after := in.Columns()
	if strings.Join(before, ",") != strings.Join(after, ",") {
		t.Fatalf("input columns changed: %v -> %v", before, after)
	}
}

func TestPredict_ConcurrentUse(t *testing.T) {
	p := newLinear(t)
	in := readFrame(t, input)
	want, _ := p.Predict(in)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Predict(in)
			if err != nil {
				errs <- err
				return
			}
			for j := range want {
				if got[j] != want[j] {
					t.Errorf("row %d: %v != %v", j, got[j], want[j])
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent predict: %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(artifact.Artifacts{Features: []string{"a"}}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, err := New(artifact.Artifacts{Model: fakeModel{n: 1}}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for empty feature list")
	}
	if _, err := New(artifact.Artifacts{Model: fakeModel{n: 2}, Features: []string{"a"}}, zerolog.Nop()); !IsShape(err) {
		t.Fatalf("expected shape error, got %v", err)
	}
	p := newLinear(t)
	f := p.Features()
	f[0] = "zzz"
	if p.Features()[0] != "s2" {
		t.Fatalf("Features leaked internal slice")
	}
}

func TestPredict_Metrics(t *testing.T) {
	p := newLinear(t)
	okBefore := testutil.ToFloat64(predictCallsTotal.WithLabelValues("ok"))
	rowsBefore := testutil.ToFloat64(predictedRowsTotal)
	missBefore := testutil.ToFloat64(predictCallsTotal.WithLabelValues("missing_column"))

	if _, err := p.Predict(readFrame(t, input)); err != nil {
		t.Fatalf("predict: %v", err)
	}
	_, _ = p.Predict(readFrame(t, "s2\n1\n"))

	if d := testutil.ToFloat64(predictCallsTotal.WithLabelValues("ok")) - okBefore; d != 1 {
		t.Fatalf("ok calls delta=%v", d)
	}
	if d := testutil.ToFloat64(predictedRowsTotal) - rowsBefore; d != 3 {
		t.Fatalf("rows delta=%v", d)
	}
	if d := testutil.ToFloat64(predictCallsTotal.WithLabelValues("missing_column")) - missBefore; d != 1 {
		t.Fatalf("missing_column delta=%v", d)
	}
}

package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"rulpredict/internal/frame"
	"rulpredict/pkg/types"
)

func sampleFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.ReadCSV(strings.NewReader("s2,unit,cycle\n1,1,10\n2,1,11\n3,2,5\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return f
}

func TestWriteTable(t *testing.T) {
	r, err := Build(sampleFrame(t), []float64{120.456, 99, 7.5}, DefaultIDColumns...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := r.Columns(); !reflect.DeepEqual(got, []string{"unit", "cycle", "predicted_RUL"}) {
		t.Fatalf("columns=%v", got)
	}
	var buf bytes.Buffer
	if err := r.WriteTable(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d:\n%s", len(lines), buf.String())
	}
	want := [][]string{
		{"unit", "cycle", "predicted_RUL"},
		{"1", "10", "120.46"},
		{"1", "11", "99.00"},
		{"2", "5", "7.50"},
	}
	for i, line := range lines {
		if got := strings.Fields(line); !reflect.DeepEqual(got, want[i]) {
			t.Fatalf("line %d: got %v want %v", i, got, want[i])
		}
	}
}

func TestWriteNDJSON(t *testing.T) {
	in, _ := sampleFrame(t).Sample(2, 1)
	r, err := Build(in, []float64{1.25, 2.5}, "unit")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var buf bytes.Buffer
	if err := r.WriteNDJSON(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	sc := bufio.NewScanner(&buf)
	var got []types.Prediction
	for sc.Scan() {
		var p types.Prediction
		if err := json.Unmarshal(sc.Bytes(), &p); err != nil {
			t.Fatalf("json: %v", err)
		}
		got = append(got, p)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	idx := in.Index()
	units, _ := in.Column("unit")
	for i, p := range got {
		if p.Row != idx[i] || p.IDs["unit"] != units[i] {
			t.Fatalf("line %d: %+v (want row %d unit %s)", i, p, idx[i], units[i])
		}
	}
	if got[0].PredictedRUL != 1.25 || got[1].PredictedRUL != 2.5 {
		t.Fatalf("predictions not preserved: %+v", got)
	}
}

func TestBuild_Errors(t *testing.T) {
	f := sampleFrame(t)
	if _, err := Build(f, []float64{1}, "unit"); err == nil {
		t.Fatalf("expected misaligned predictions error")
	}
	if _, err := Build(f, []float64{1, 2, 3}, "unit", "engine"); !frame.IsMissingColumn(err) {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

// Package demo runs the sample-and-report flow executed when the tool is
// invoked without a subcommand.
package demo

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"rulpredict/internal/common/fsutil"
	"rulpredict/internal/frame"
	"rulpredict/internal/report"
)

const (
	Banner         = "Predictive Aircraft Engine Maintenance — Inference Mode"
	NotFoundNotice = "Sample file not found. Provide an input CSV with `rulpredict predict --input <file>`."
)

// Scorer is the prediction capability the demo drives.
type Scorer interface {
	Predict(input *frame.Frame) ([]float64, error)
}

type Options struct {
	SamplePath string
	SampleSize int
	Seed       int64
	IDColumns  []string
}

// Run prints the banner, then either a report for a seeded sample of the
// sample file or a one-line notice when that file is absent. The scorer is
// not called in the latter case.
func Run(out io.Writer, s Scorer, opts Options, log zerolog.Logger) error {
	if _, err := fmt.Fprintln(out, Banner); err != nil {
		return err
	}
	if !fsutil.FileExists(opts.SamplePath) {
		log.Info().Str("path", opts.SamplePath).Msg("sample file not found")
		_, err := fmt.Fprintln(out, NotFoundNotice)
		return err
	}
	df, err := frame.ReadCSVFile(opts.SamplePath)
	if err != nil {
		return err
	}
	sample, err := df.Sample(opts.SampleSize, opts.Seed)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.SamplePath, err)
	}
	log.Debug().
		Str("path", opts.SamplePath).
		Int("rows", df.Len()).
		Int64("seed", opts.Seed).
		Ints("sampled", sample.Index()).
		Msg("sampled rows")
	preds, err := s.Predict(sample)
	if err != nil {
		return err
	}
	rep, err := report.Build(sample, preds, opts.IDColumns...)
	if err != nil {
		return err
	}
	return rep.WriteTable(out)
}

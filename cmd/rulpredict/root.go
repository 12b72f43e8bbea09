package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rulpredict/internal/demo"
	"rulpredict/internal/frame"
	"rulpredict/internal/report"
)

// newRootCmd wires the command tree. The bare command runs the demo.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "rulpredict",
		Short:         "Predict remaining useful life of aircraft engines from sensor features",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPredictor()
			if err != nil {
				return err
			}
			return demo.Run(a.stdout, p, demo.Options{
				SamplePath: a.cfg.SamplePath,
				SampleSize: a.cfg.SampleSize,
				Seed:       a.cfg.SeedOrDefault(),
				IDColumns:  a.cfg.IDColumns,
			}, a.log)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgArg, "config", "", "Config file (.yaml|.json|.toml); defaults RULPREDICT_CONFIG")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug|info|warn|error (defaults RULPREDICT_LOG_LEVEL or info)")
	pf.StringVar(&a.flags.ModelPath, "model", "", "Model artifact (.json)")
	pf.StringVar(&a.flags.FeaturesPath, "features", "", "Feature list (.json|.yaml|.txt)")
	pf.StringVar(&a.flags.SamplePath, "sample", "", "Sample CSV used by the demo")
	pf.StringVar(&a.flags.MetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file on exit")

	root.AddCommand(newPredictCmd(a))
	return root
}

func newPredictCmd(a *app) *cobra.Command {
	var (
		input  string
		format string
		idCols string
	)
	cmd := &cobra.Command{
		Use:     "predict --input <file.csv>",
		Short:   "Predict every row of a CSV file",
		Example: "  rulpredict predict --input test_features.csv\n  rulpredict predict --input test_features.csv --format ndjson --id-cols unit",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "ndjson" {
				return fmt.Errorf("unknown format %q: want table|ndjson", format)
			}
			p, err := a.loadPredictor()
			if err != nil {
				return err
			}
			df, err := frame.ReadCSVFile(input)
			if err != nil {
				return err
			}
			preds, err := p.Predict(df)
			if err != nil {
				return err
			}
			ids := a.cfg.IDColumns
			if cmd.Flags().Changed("id-cols") {
				ids = splitCSV(idCols)
			}
			rep, err := report.Build(df, preds, ids...)
			if err != nil {
				return err
			}
			a.log.Info().Str("input", input).Int("rows", rep.Len()).Msg("predicted")
			if format == "ndjson" {
				return rep.WriteNDJSON(a.stdout)
			}
			return rep.WriteTable(a.stdout)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Input CSV containing every feature column")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|ndjson")
	cmd.Flags().StringVar(&idCols, "id-cols", "unit,cycle", "Comma-separated identifier columns copied into the output")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

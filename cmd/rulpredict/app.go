package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rulpredict/internal/artifact"
	"rulpredict/internal/common/fsutil"
	"rulpredict/internal/config"
	"rulpredict/internal/logging"
	"rulpredict/internal/predictor"
)

// app carries process-wide state: resolved config, logger and the
// load-once predictor.
type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	// baseDir anchors the default artifact paths; the binary's directory in production.
	baseDir func() (string, error)

	flags  config.Config
	cfgArg string

	cfg    config.Config
	log    zerolog.Logger
	closer io.Closer
	pred   *predictor.Predictor
}

func newApp(stdout, stderr io.Writer, getenv func(string) string) *app {
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		getenv:  getenv,
		baseDir: fsutil.ExecutableDir,
		log:     zerolog.Nop(),
	}
}

// setup resolves configuration (flags > env > file > defaults) and installs
// the logger.
func (a *app) setup() error {
	base, err := a.baseDir()
	if err != nil {
		return err
	}
	cfg, err := config.Defaults(base)
	if err != nil {
		return err
	}
	cfgPath := a.cfgArg
	if cfgPath == "" {
		cfgPath = a.getenv("RULPREDICT_CONFIG")
	}
	if cfgPath != "" {
		fileCfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg = cfg.Merge(config.FromEnv(a.getenv)).Merge(a.flags)
	a.cfg = cfg

	a.log, a.closer = logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}, a.stderr)
	a.log = a.log.With().Str("run_id", uuid.NewString()).Logger()
	a.log.Debug().
		Str("model", cfg.ModelPath).
		Str("features", cfg.FeaturesPath).
		Str("sample", cfg.SamplePath).
		Msg("config resolved")
	return nil
}

// loadPredictor loads the model and feature list on first use and reuses them
// for the rest of the process.
func (a *app) loadPredictor() (*predictor.Predictor, error) {
	if a.pred != nil {
		return a.pred, nil
	}
	arts, err := artifact.Load(a.cfg.ModelPath, a.cfg.FeaturesPath)
	if err != nil {
		return nil, err
	}
	p, err := predictor.New(arts, a.log)
	if err != nil {
		return nil, err
	}
	a.log.Info().
		Str("model", arts.ModelPath).
		Int("features", len(arts.Features)).
		Msg("artifacts loaded")
	a.pred = p
	return p, nil
}

// finish exports metrics when configured and releases the log sink.
func (a *app) finish() error {
	var err error
	if a.cfg.MetricsTextfile != "" && a.pred != nil {
		if err = predictor.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			err = fmt.Errorf("write metrics: %w", err)
		}
	}
	if a.closer != nil {
		if cerr := a.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

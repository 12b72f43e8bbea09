package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"rulpredict/internal/common/fsutil"
)

// Defaults applied when the corresponding Config fields are unset. Artifact
// paths are relative to the directory holding the binary.
const (
	DefaultModelPath    = "../models/rf_v3.json"
	DefaultFeaturesPath = "../models/feature_list.json"
	DefaultSamplePath   = "../data/features/train_features_v3.csv"
	DefaultSampleSize   = 5
	DefaultSeed         = int64(42)
)

// Config holds runtime parameters for the tool.
// Zero values mean "unspecified" and are filled by Merge/Defaults.
type Config struct {
	ModelPath       string   `json:"model_path" yaml:"model_path" toml:"model_path"`
	FeaturesPath    string   `json:"features_path" yaml:"features_path" toml:"features_path"`
	SamplePath      string   `json:"sample_path" yaml:"sample_path" toml:"sample_path"`
	SampleSize      int      `json:"sample_size" yaml:"sample_size" toml:"sample_size"`
	Seed            *int64   `json:"seed" yaml:"seed" toml:"seed"`
	IDColumns       []string `json:"id_columns" yaml:"id_columns" toml:"id_columns"`
	LogLevel        string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFile         string   `json:"log_file" yaml:"log_file" toml:"log_file"`
	MetricsTextfile string   `json:"metrics_textfile" yaml:"metrics_textfile" toml:"metrics_textfile"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. Relative paths inside the file are
// taken relative to the file's own directory.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg.Resolve(filepath.Dir(path))
}

// Defaults returns the built-in configuration with artifact paths anchored at base.
func Defaults(base string) (Config, error) {
	seed := DefaultSeed
	cfg := Config{
		ModelPath:    DefaultModelPath,
		FeaturesPath: DefaultFeaturesPath,
		SamplePath:   DefaultSamplePath,
		SampleSize:   DefaultSampleSize,
		Seed:         &seed,
		IDColumns:    []string{"unit", "cycle"},
		LogLevel:     "info",
	}
	return cfg.Resolve(base)
}

// FromEnv reads RULPREDICT_* overrides.
func FromEnv(getenv func(string) string) Config {
	return Config{
		ModelPath:       getenv("RULPREDICT_MODEL"),
		FeaturesPath:    getenv("RULPREDICT_FEATURES"),
		SamplePath:      getenv("RULPREDICT_SAMPLE"),
		LogLevel:        getenv("RULPREDICT_LOG_LEVEL"),
		LogFile:         getenv("RULPREDICT_LOG_FILE"),
		MetricsTextfile: getenv("RULPREDICT_METRICS_TEXTFILE"),
	}
}

// Resolve expands '~' and anchors relative file paths at base.
func (c Config) Resolve(base string) (Config, error) {
	for _, p := range []*string{&c.ModelPath, &c.FeaturesPath, &c.SamplePath, &c.LogFile, &c.MetricsTextfile} {
		r, err := fsutil.Resolve(base, *p)
		if err != nil {
			return c, err
		}
		*p = r
	}
	return c, nil
}

// Merge returns c with every field that is set in over replaced.
func (c Config) Merge(over Config) Config {
	if over.ModelPath != "" {
		c.ModelPath = over.ModelPath
	}
	if over.FeaturesPath != "" {
		c.FeaturesPath = over.FeaturesPath
	}
	if over.SamplePath != "" {
		c.SamplePath = over.SamplePath
	}
	if over.SampleSize > 0 {
		c.SampleSize = over.SampleSize
	}
	if over.Seed != nil {
		s := *over.Seed
		c.Seed = &s
	}
	if len(over.IDColumns) > 0 {
		c.IDColumns = append([]string(nil), over.IDColumns...)
	}
	if over.LogLevel != "" {
		c.LogLevel = over.LogLevel
	}
	if over.LogFile != "" {
		c.LogFile = over.LogFile
	}
	if over.MetricsTextfile != "" {
		c.MetricsTextfile = over.MetricsTextfile
	}
	return c
}

// SeedOrDefault returns the configured seed, or DefaultSeed when unset.
func (c Config) SeedOrDefault() int64 {
	if c.Seed == nil {
		return DefaultSeed
	}
	return *c.Seed
}

package artifact

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rulpredict/internal/common/fsutil"
	"rulpredict/internal/model"
)

// Artifacts is the load-once pair the predictor is built from.
type Artifacts struct {
	Model     model.Regressor
	Features  []string
	ModelPath string
}

// modelFile is the on-disk model document. Fields not used by Kind are ignored.
type modelFile struct {
	Kind      string       `json:"kind"`
	NFeatures int          `json:"n_features"`
	Trees     []model.Tree `json:"trees,omitempty"`
	Intercept float64      `json:"intercept,omitempty"`
	Coef      []float64    `json:"coef,omitempty"`
}

// Load reads the model and feature list and checks they agree on width.
func Load(modelPath, featuresPath string) (Artifacts, error) {
	m, err := LoadModel(modelPath)
	if err != nil {
		return Artifacts{}, err
	}
	features, err := LoadFeatureList(featuresPath)
	if err != nil {
		return Artifacts{}, err
	}
	if m.NumFeatures() != len(features) {
		return Artifacts{}, fmt.Errorf("model %s expects %d features but feature list has %d", modelPath, m.NumFeatures(), len(features))
	}
	return Artifacts{Model: m, Features: features, ModelPath: modelPath}, nil
}

// LoadModel decodes a JSON model artifact and builds the Regressor its kind names.
func LoadModel(path string) (model.Regressor, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var mf modelFile
	if err := json.Unmarshal(b, &mf); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	switch mf.Kind {
	case model.KindRandomForest:
		rf, err := model.NewRandomForest(mf.NFeatures, mf.Trees)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", path, err)
		}
		return rf, nil
	case model.KindLinear:
		if mf.NFeatures != 0 && mf.NFeatures != len(mf.Coef) {
			return nil, fmt.Errorf("linear model %s: n_features=%d but %d coefficients", path, mf.NFeatures, len(mf.Coef))
		}
		l, err := model.NewLinear(mf.Intercept, mf.Coef)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", path, err)
		}
		return l, nil
	case "":
		return nil, fmt.Errorf("model %s: missing kind", path)
	default:
		return nil, fmt.Errorf("model %s: unsupported kind %q", path, mf.Kind)
	}
}

// LoadFeatureList reads an ordered list of column names.
// Supports: .json (array), .yaml/.yml (sequence), .txt (one name per line, # comments).
func LoadFeatureList(path string) ([]string, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(b, &names); err != nil {
			return nil, fmt.Errorf("decode feature list %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &names); err != nil {
			return nil, fmt.Errorf("decode feature list %s: %w", path, err)
		}
	case ".txt":
		sc := bufio.NewScanner(bytes.NewReader(b))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			names = append(names, line)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read feature list %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported feature list extension: %s", ext)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("feature list %s is empty", path)
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			return nil, fmt.Errorf("feature list %s: empty column name", path)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("feature list %s: duplicate column %q", path, n)
		}
		seen[n] = struct{}{}
	}
	return names, nil
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("empty artifact path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

// Package artifact loads and evaluates the fitted preprocessing and model
// artifacts exported next to training.
//
// Artifacts are JSON documents tagged with a kind and a format version. Once
// parsed they are never mutated, so a single instance can serve concurrent
// requests.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FormatVersion is the only artifact format version this build understands.
const FormatVersion = 1

// Artifact kinds.
const (
	KindColumnTransformer = "column_transformer"
	KindRandomForest      = "random_forest"
	KindGradientBoosting  = "gradient_boosting"
)

var (
	errUnknownKind     = errors.New("unknown artifact kind")
	errUnsupportedVer  = errors.New("unsupported artifact version")
	errNotPreprocessor = errors.New("artifact is not a preprocessor")
	errNotClassifier   = errors.New("artifact is not a classifier")
)

// Info summarizes a loaded artifact.
type Info struct {
	Kind     string `json:"kind"`
	Path     string `json:"path,omitempty"`
	Features int    `json:"features"`
	Trees    int    `json:"trees,omitempty"`
	Classes  []int  `json:"classes,omitempty"`
}

// Classifier is implemented by every model artifact.
type Classifier interface {
	Predict(features []float64) (int, error)
	PredictProba(features []float64) ([]float64, error)
	Classes() []int
	Info() Info
}

type header struct {
	Kind    string `json:"kind"`
	Version int    `json:"version"`
}

func readHeader(data []byte) (header, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != FormatVersion {
		return h, fmt.Errorf("%w: %d", errUnsupportedVer, h.Version)
	}
	switch h.Kind {
	case KindColumnTransformer, KindRandomForest, KindGradientBoosting:
		return h, nil
	default:
		return h, fmt.Errorf("%w: %q", errUnknownKind, h.Kind)
	}
}

// ParsePreprocessor decodes a preprocessor artifact.
func ParsePreprocessor(data []byte) (*ColumnTransformer, error) {
	h, err := readHeader(data)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	if h.Kind != KindColumnTransformer {
		return nil, &LoadError{Err: fmt.Errorf("%w: %s", errNotPreprocessor, h.Kind)}
	}

	var ct ColumnTransformer
	if err := json.Unmarshal(data, &ct); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("decode %s: %w", h.Kind, err)}
	}
	if err := ct.validate(); err != nil {
		return nil, &LoadError{Err: err}
	}
	return &ct, nil
}

// ParseClassifier decodes any model artifact.
func ParseClassifier(data []byte) (Classifier, error) {
	h, err := readHeader(data)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	switch h.Kind {
	case KindRandomForest:
		var rf RandomForest
		if err := json.Unmarshal(data, &rf); err != nil {
			return nil, &LoadError{Err: fmt.Errorf("decode %s: %w", h.Kind, err)}
		}
		if err := rf.validate(); err != nil {
			return nil, &LoadError{Err: err}
		}
		return &rf, nil
	case KindGradientBoosting:
		var gb GradientBoosting
		if err := json.Unmarshal(data, &gb); err != nil {
			return nil, &LoadError{Err: fmt.Errorf("decode %s: %w", h.Kind, err)}
		}
		if err := gb.validate(); err != nil {
			return nil, &LoadError{Err: err}
		}
		return &gb, nil
	default:
		return nil, &LoadError{Err: fmt.Errorf("%w: %s", errNotClassifier, h.Kind)}
	}
}

// LoadPreprocessor reads a preprocessor artifact from disk.
func LoadPreprocessor(path string) (*ColumnTransformer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	ct, err := ParsePreprocessor(data)
	if err != nil {
		return nil, withPath(err, path)
	}
	ct.path = path
	return ct, nil
}

// LoadClassifier reads a model artifact from disk.
func LoadClassifier(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	clf, err := ParseClassifier(data)
	if err != nil {
		return nil, withPath(err, path)
	}
	switch c := clf.(type) {
	case *RandomForest:
		c.path = path
	case *GradientBoosting:
		c.path = path
	}
	return clf, nil
}

func withPath(err error, path string) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		loadErr.Path = path
		return loadErr
	}
	return &LoadError{Path: path, Err: err}
}

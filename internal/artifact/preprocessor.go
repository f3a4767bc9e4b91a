package artifact

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Veraticus/churn/internal/model"
)

// Transformer types.
const (
	TransformOneHot      = "one_hot"
	TransformStandard    = "standard_scaler"
	TransformPassthrough = "passthrough"
)

// One-hot drop policies.
const (
	DropNone     = ""
	DropFirst    = "first"
	DropIfBinary = "if_binary"
)

// Unknown-category policies.
const (
	HandleUnknownError  = "error"
	HandleUnknownIgnore = "ignore"
)

var errInvalidTransformer = errors.New("invalid transformer")

// ColumnTransformer maps a customer record to the feature vector the models
// were fitted on. Output is laid out transformer by transformer, column by
// column within each transformer. Columns not named by any transformer are
// dropped.
type ColumnTransformer struct {
	path         string
	Kind         string        `json:"kind"`
	Transformers []Transformer `json:"transformers"`
	Version      int           `json:"version"`
	width        int
}

// Transformer encodes a group of columns.
type Transformer struct {
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	HandleUnknown string     `json:"handle_unknown,omitempty"`
	Drop          string     `json:"drop,omitempty"`
	Columns       []string   `json:"columns"`
	Categories    [][]string `json:"categories,omitempty"`
	Mean          []float64  `json:"mean,omitempty"`
	Scale         []float64  `json:"scale,omitempty"`
}

func (ct *ColumnTransformer) validate() error {
	if len(ct.Transformers) == 0 {
		return fmt.Errorf("%w: no transformers", errInvalidTransformer)
	}

	probe := model.CustomerData{}
	ct.width = 0
	for i := range ct.Transformers {
		t := &ct.Transformers[i]
		if len(t.Columns) == 0 {
			return fmt.Errorf("%w: %s has no columns", errInvalidTransformer, t.Name)
		}
		for _, col := range t.Columns {
			if _, ok := probe.Column(col); !ok {
				return fmt.Errorf("%w: %s references unknown column %q", errInvalidTransformer, t.Name, col)
			}
		}

		switch t.Type {
		case TransformStandard:
			if len(t.Mean) != len(t.Columns) || len(t.Scale) != len(t.Columns) {
				return fmt.Errorf("%w: %s needs one mean and scale per column", errInvalidTransformer, t.Name)
			}
		case TransformOneHot:
			if len(t.Categories) != len(t.Columns) {
				return fmt.Errorf("%w: %s needs one category list per column", errInvalidTransformer, t.Name)
			}
			switch t.HandleUnknown {
			case "":
				t.HandleUnknown = HandleUnknownError
			case HandleUnknownError, HandleUnknownIgnore:
			default:
				return fmt.Errorf("%w: %s has unknown handle_unknown %q", errInvalidTransformer, t.Name, t.HandleUnknown)
			}
			switch t.Drop {
			case DropNone, DropFirst, DropIfBinary:
			default:
				return fmt.Errorf("%w: %s has unknown drop %q", errInvalidTransformer, t.Name, t.Drop)
			}
			for j, cats := range t.Categories {
				if len(cats) == 0 {
					return fmt.Errorf("%w: %s has no categories for %s", errInvalidTransformer, t.Name, t.Columns[j])
				}
			}
		case TransformPassthrough:
		default:
			return fmt.Errorf("%w: %s has unknown type %q", errInvalidTransformer, t.Name, t.Type)
		}

		ct.width += t.outputWidth()
	}
	return nil
}

func (t Transformer) outputWidth() int {
	if t.Type != TransformOneHot {
		return len(t.Columns)
	}
	width := 0
	for _, cats := range t.Categories {
		width += len(cats) - t.dropped(cats)
	}
	return width
}

// dropped returns how many leading categories the drop policy removes.
func (t Transformer) dropped(cats []string) int {
	switch t.Drop {
	case DropFirst:
		return 1
	case DropIfBinary:
		if len(cats) == 2 {
			return 1
		}
	}
	return 0
}

// NumFeatures returns the width of every vector Transform produces.
func (ct *ColumnTransformer) NumFeatures() int {
	return ct.width
}

// Info summarizes the preprocessor.
func (ct *ColumnTransformer) Info() Info {
	return Info{Kind: KindColumnTransformer, Path: ct.path, Features: ct.width}
}

// Transform encodes a customer into a feature vector.
func (ct *ColumnTransformer) Transform(c model.CustomerData) ([]float64, error) {
	out := make([]float64, 0, ct.width)
	for _, t := range ct.Transformers {
		var err error
		out, err = t.apply(c, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (t Transformer) apply(c model.CustomerData, out []float64) ([]float64, error) {
	for i, col := range t.Columns {
		v, ok := c.Column(col)
		if !ok {
			return nil, &EncodingError{Column: col}
		}

		switch t.Type {
		case TransformStandard:
			x, isNum := v.Number()
			if !isNum {
				return nil, &EncodingError{Column: col, Value: v.Text()}
			}
			scale := t.Scale[i]
			if scale == 0 {
				scale = 1
			}
			out = append(out, (x-t.Mean[i])/scale)

		case TransformPassthrough:
			x, isNum := v.Number()
			if !isNum {
				return nil, &EncodingError{Column: col, Value: v.Text()}
			}
			out = append(out, x)

		case TransformOneHot:
			cats := t.Categories[i]
			idx := slices.Index(cats, v.Text())
			if idx < 0 && t.HandleUnknown == HandleUnknownError {
				return nil, &EncodingError{Column: col, Value: v.Text(), Known: cats}
			}
			skip := t.dropped(cats)
			for j := skip; j < len(cats); j++ {
				if j == idx {
					out = append(out, 1)
				} else {
					out = append(out, 0)
				}
			}
		}
	}
	return out, nil
}

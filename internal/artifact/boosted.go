package artifact

import (
	"errors"
	"fmt"
	"math"
)

// Gradient boosting objectives.
const (
	ObjectiveBinaryLogistic = "binary:logistic"
)

// Split conditions.
const (
	SplitLess      = "lt"
	SplitLessEqual = "le"
)

var errInvalidBooster = errors.New("invalid gradient boosting model")

// GradientBoosting is a binary gradient-boosted tree ensemble. Each leaf
// holds one margin contribution; the positive-class probability is the
// logistic of the base margin plus the summed contributions.
type GradientBoosting struct {
	path           string
	Kind           string  `json:"kind"`
	Objective      string  `json:"objective"`
	SplitCondition string  `json:"split_condition,omitempty"`
	Trees          []Tree  `json:"trees"`
	BaseScore      float64 `json:"base_score"`
	NFeatures      int     `json:"n_features"`
	Version        int     `json:"version"`
}

func (gb *GradientBoosting) validate() error {
	if gb.Objective == "" {
		gb.Objective = ObjectiveBinaryLogistic
	}
	if gb.Objective != ObjectiveBinaryLogistic {
		return fmt.Errorf("%w: unsupported objective %q", errInvalidBooster, gb.Objective)
	}
	switch gb.SplitCondition {
	case "":
		gb.SplitCondition = SplitLess
	case SplitLess, SplitLessEqual:
	default:
		return fmt.Errorf("%w: unknown split condition %q", errInvalidBooster, gb.SplitCondition)
	}
	if gb.BaseScore == 0 {
		gb.BaseScore = 0.5
	}
	if gb.BaseScore <= 0 || gb.BaseScore >= 1 {
		return fmt.Errorf("%w: base score %v outside (0, 1)", errInvalidBooster, gb.BaseScore)
	}
	if gb.NFeatures <= 0 {
		return fmt.Errorf("%w: no features", errInvalidBooster)
	}
	if len(gb.Trees) == 0 {
		return fmt.Errorf("%w: no trees", errInvalidBooster)
	}
	for i, t := range gb.Trees {
		if err := t.validate(gb.NFeatures, 1); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// Classes returns the binary class labels.
func (gb *GradientBoosting) Classes() []int {
	return []int{0, 1}
}

// Info summarizes the booster.
func (gb *GradientBoosting) Info() Info {
	return Info{
		Kind:     KindGradientBoosting,
		Path:     gb.path,
		Features: gb.NFeatures,
		Trees:    len(gb.Trees),
		Classes:  gb.Classes(),
	}
}

func (gb *GradientBoosting) margin(features []float64) (float64, error) {
	if len(features) != gb.NFeatures {
		return 0, &ShapeMismatchError{Model: KindGradientBoosting, Want: gb.NFeatures, Got: len(features)}
	}
	m := math.Log(gb.BaseScore / (1 - gb.BaseScore))
	strict := gb.SplitCondition != SplitLessEqual
	for _, t := range gb.Trees {
		m += t.leafValue(features, strict)[0]
	}
	return m, nil
}

// PredictProba returns [P(no churn), P(churn)].
func (gb *GradientBoosting) PredictProba(features []float64) ([]float64, error) {
	m, err := gb.margin(features)
	if err != nil {
		return nil, err
	}
	p := sigmoid(m)
	return []float64{1 - p, p}, nil
}

// Predict returns 1 when the positive-class probability exceeds one half.
func (gb *GradientBoosting) Predict(features []float64) (int, error) {
	m, err := gb.margin(features)
	if err != nil {
		return 0, err
	}
	if sigmoid(m) > 0.5 {
		return 1, nil
	}
	return 0, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

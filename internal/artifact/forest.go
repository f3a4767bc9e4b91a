package artifact

import (
	"fmt"
	"slices"
)

// RandomForest is a bagged ensemble of classification trees. Each leaf holds
// per-class sample weights; the forest averages the normalized leaf
// distributions and predicts the most probable class.
type RandomForest struct {
	path        string
	Kind        string `json:"kind"`
	Trees       []Tree `json:"trees"`
	ClassLabels []int  `json:"classes"`
	NFeatures   int    `json:"n_features"`
	Version     int    `json:"version"`
}

func (rf *RandomForest) validate() error {
	if len(rf.ClassLabels) < 2 {
		return fmt.Errorf("%w: random forest needs at least two classes", errInvalidTree)
	}
	if rf.NFeatures <= 0 {
		return fmt.Errorf("%w: random forest has no features", errInvalidTree)
	}
	if len(rf.Trees) == 0 {
		return fmt.Errorf("%w: random forest has no trees", errInvalidTree)
	}
	for i, t := range rf.Trees {
		if err := t.validate(rf.NFeatures, len(rf.ClassLabels)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// Classes returns the class labels in probability order.
func (rf *RandomForest) Classes() []int {
	return slices.Clone(rf.ClassLabels)
}

// Info summarizes the forest.
func (rf *RandomForest) Info() Info {
	return Info{
		Kind:     KindRandomForest,
		Path:     rf.path,
		Features: rf.NFeatures,
		Trees:    len(rf.Trees),
		Classes:  rf.Classes(),
	}
}

// PredictProba returns the mean class distribution over all trees.
func (rf *RandomForest) PredictProba(features []float64) ([]float64, error) {
	if len(features) != rf.NFeatures {
		return nil, &ShapeMismatchError{Model: KindRandomForest, Want: rf.NFeatures, Got: len(features)}
	}

	proba := make([]float64, len(rf.ClassLabels))
	for _, t := range rf.Trees {
		counts := t.leafValue(features, false)
		var total float64
		for _, c := range counts {
			total += c
		}
		for k, c := range counts {
			if total > 0 {
				proba[k] += c / total
			} else {
				proba[k] += 1 / float64(len(counts))
			}
		}
	}

	n := float64(len(rf.Trees))
	for k := range proba {
		proba[k] /= n
	}
	return proba, nil
}

// Predict returns the class with the highest mean probability. Ties go to
// the class listed first.
func (rf *RandomForest) Predict(features []float64) (int, error) {
	proba, err := rf.PredictProba(features)
	if err != nil {
		return 0, err
	}
	best := 0
	for k := 1; k < len(proba); k++ {
		if proba[k] > proba[best] {
			best = k
		}
	}
	return rf.ClassLabels[best], nil
}

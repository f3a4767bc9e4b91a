// Package inference runs customers through the fitted preprocessor and
// churn models.
package inference

import (
	"fmt"
	"slices"

	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/model"
)

// PositiveClass is the class label that means the customer churns.
const PositiveClass = 1

// Predict encodes c with pre and asks clf for both its label and its
// positive-class probability. The label is the classifier's own decision and
// is not derived from the probability. Errors from either artifact are
// returned unchanged.
func Predict(c model.CustomerData, pre Preprocessor, clf Classifier) (model.PredictionResult, error) {
	x, err := pre.Transform(c)
	if err != nil {
		return model.PredictionResult{}, err
	}

	label, err := clf.Predict(x)
	if err != nil {
		return model.PredictionResult{}, err
	}

	proba, err := clf.PredictProba(x)
	if err != nil {
		return model.PredictionResult{}, err
	}

	classes := clf.Classes()
	idx := slices.Index(classes, PositiveClass)
	if idx < 0 || len(proba) != len(classes) {
		return model.PredictionResult{}, fmt.Errorf("%w: %d probabilities for classes %v",
			common.ErrShapeMismatch, len(proba), classes)
	}

	return model.PredictionResult{
		ChurnPrediction:  label == PositiveClass,
		ChurnProbability: proba[idx],
	}, nil
}

package inference

import "github.com/Veraticus/churn/internal/model"

// Preprocessor encodes a customer into the classifier's feature space.
type Preprocessor interface {
	Transform(c model.CustomerData) ([]float64, error)
}

// Classifier is a fitted churn model.
type Classifier interface {
	Predict(features []float64) (int, error)
	PredictProba(features []float64) ([]float64, error)
	Classes() []int
}

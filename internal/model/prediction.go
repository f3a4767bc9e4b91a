package model

// RiskThreshold is the averaged probability above which a customer is high risk.
// A score exactly at the threshold is low risk.
const RiskThreshold = 0.5

// Risk labels.
const (
	RiskHigh = "High Risk"
	RiskLow  = "Low Risk"
)

// PredictionResult is the output of one classifier for one customer.
type PredictionResult struct {
	ChurnPrediction  bool    `json:"churn_prediction"`
	ChurnProbability float64 `json:"churn_probability"`
}

// Label returns the display label for the prediction.
func (p PredictionResult) Label() string {
	if p.ChurnPrediction {
		return "Churn"
	}
	return "No Churn"
}

// ModelResult pairs a prediction with the model that produced it.
type ModelResult struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Result      PredictionResult `json:"result"`
}

// Assessment is everything shown to the user after a successful prediction.
type Assessment struct {
	RiskLabel          string           `json:"risk_label"`
	Models             []ModelResult    `json:"models"`
	Recommendations    []Recommendation `json:"recommendations"`
	AverageProbability float64          `json:"average_probability"`
}

// AverageProbability returns the mean churn probability across results.
func AverageProbability(results []ModelResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Result.ChurnProbability
	}
	return sum / float64(len(results))
}

// RiskLabelFor binarizes an averaged probability.
func RiskLabelFor(probability float64) string {
	if probability > RiskThreshold {
		return RiskHigh
	}
	return RiskLow
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageProbability(t *testing.T) {
	results := []ModelResult{
		{Name: "random_forest", Result: PredictionResult{ChurnProbability: 0.3}},
		{Name: "xgboost", Result: PredictionResult{ChurnProbability: 0.7}},
	}

	avg := AverageProbability(results)
	assert.InDelta(t, 0.5, avg, 1e-12)
	assert.Equal(t, RiskLow, RiskLabelFor(avg))

	assert.InDelta(t, 0.0, AverageProbability(nil), 0)
}

func TestRiskLabelFor(t *testing.T) {
	tests := []struct {
		name string
		want string
		prob float64
	}{
		{name: "zero", prob: 0, want: RiskLow},
		{name: "boundary is low", prob: 0.5, want: RiskLow},
		{name: "just above", prob: 0.5000001, want: RiskHigh},
		{name: "certain", prob: 1, want: RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLabelFor(tt.prob))
		})
	}
}

func TestPredictionResult_Label(t *testing.T) {
	assert.Equal(t, "Churn", PredictionResult{ChurnPrediction: true}.Label())
	assert.Equal(t, "No Churn", PredictionResult{}.Label())
}

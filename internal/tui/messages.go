package tui

import "github.com/Veraticus/churn/internal/model"

// predictionMsg carries the outcome of a prediction run.
type predictionMsg struct {
	err        error
	assessment model.Assessment
}

package web

import (
	"github.com/Veraticus/churn/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Prediction outcomes.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid_input"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

type metrics struct {
	requests    *prometheus.CounterVec
	predictions *prometheus.CounterVec
	risk        *prometheus.CounterVec
	duration    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "churn_prediction_requests_total",
			Help: "Prediction requests by outcome.",
		}, []string{"outcome"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "churn_model_predictions_total",
			Help: "Per-model predictions by label.",
		}, []string{"model", "label"}),
		risk: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "churn_risk_assessments_total",
			Help: "Completed assessments by risk label.",
		}, []string{"risk"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "churn_prediction_duration_seconds",
			Help:    "Time spent assessing one customer.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	reg.MustRegister(m.requests, m.predictions, m.risk, m.duration)
	return m
}

func (m *metrics) observe(a model.Assessment) {
	m.requests.WithLabelValues(outcomeOK).Inc()
	m.risk.WithLabelValues(a.RiskLabel).Inc()
	for _, r := range a.Models {
		m.predictions.WithLabelValues(r.Name, r.Result.Label()).Inc()
	}
}

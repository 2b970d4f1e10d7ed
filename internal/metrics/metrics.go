package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for served predictions
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Metrics holds the prediction pipeline collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	predictions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	riskScore   prometheus.Histogram
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "premium",
			Name:      "predictions_total",
			Help:      "Premium predictions served, by age band and outcome.",
		}, []string{"age_band", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "premium",
			Name:      "prediction_duration_seconds",
			Help:      "Time spent encoding, scaling and running the model.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"age_band"}),
		riskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "premium",
			Name:      "normalized_risk_score",
			Help:      "Distribution of normalized comorbidity risk scores.",
			Buckets:   prometheus.LinearBuckets(0, 0.125, 9),
		}),
	}
	reg.MustRegister(m.predictions, m.duration, m.riskScore)
	return m
}

// ObservePrediction records one prediction attempt
func (m *Metrics) ObservePrediction(band, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(band, outcome).Inc()
	if outcome == OutcomeSuccess {
		m.duration.WithLabelValues(band).Observe(elapsed.Seconds())
	}
}

// ObserveRiskScore records the risk score of an encoded applicant
func (m *Metrics) ObserveRiskScore(score float64) {
	if m == nil {
		return
	}
	m.riskScore.Observe(score)
}

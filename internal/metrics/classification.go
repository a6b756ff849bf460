package metrics

import "github.com/prometheus/client_golang/prometheus"

// Classification Prometheus metrics.
var (
	ClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intentd",
			Name:      "classifications_total",
			Help:      "Total number of classified messages",
		},
		[]string{"intent", "outcome"},
	)

	ClassificationConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "intentd",
			Name:      "classification_confidence",
			Help:      "Confidence of the winning intent per classification",
			Buckets:   []float64{0.1, 0.15, 0.25, 0.5, 0.75, 0.9, 0.95, 0.99},
		},
	)

	ClassificationRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intentd",
			Name:      "classification_rejected_total",
			Help:      "Messages rejected before classification",
		},
		[]string{"reason"}, // "missing", "empty", "too_long"
	)
)

var classMetricsRegistered bool

// RegisterClassificationMetrics registers Prometheus classification metrics. Must be called once from main.
func RegisterClassificationMetrics() {
	if classMetricsRegistered {
		return
	}
	prometheus.MustRegister(ClassificationsTotal)
	prometheus.MustRegister(ClassificationConfidence)
	prometheus.MustRegister(ClassificationRejectedTotal)
	classMetricsRegistered = true
}

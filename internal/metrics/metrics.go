// Package metrics exposes Prometheus instrumentation for the scoring
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal counts scored queries by final archetype
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtlens",
		Name:      "predictions_total",
		Help:      "Scored projection queries by final archetype.",
	}, []string{"archetype"})

	// PredictionErrors counts failed queries by error code
	PredictionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtlens",
		Name:      "prediction_errors_total",
		Help:      "Failed projection queries by error code.",
	}, []string{"code"})

	// GateApplications counts gate firings by gate name
	GateApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtlens",
		Name:      "gate_applications_total",
		Help:      "Probability gate firings by gate name.",
	}, []string{"gate"})

	// BatchDuration tracks wall time of batch runs
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtlens",
		Name:      "batch_duration_seconds",
		Help:      "Wall time of batch projection runs.",
		Buckets:   prometheus.DefBuckets,
	})
)

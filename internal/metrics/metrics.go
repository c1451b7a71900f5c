package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK           = "ok"
	OutcomeRejected     = "rejected"
	OutcomeInvalidInput = "invalid_input"
)

var (
	Computations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illusion_computations_total",
			Help: "Scenario computations by outcome",
		},
		[]string{"outcome"},
	)

	ComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "illusion_compute_duration_seconds",
			Help:    "Time spent checking and calculating one scenario",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 8),
		},
	)

	ReportsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illusion_reports_rendered_total",
			Help: "Rendered documents by format",
		},
		[]string{"format"},
	)
)

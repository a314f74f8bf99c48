package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	assignmentsCommitted *prometheus.CounterVec
	assignmentConflicts  prometheus.Counter
	recommendRequests    prometheus.Counter
	recommendLatency     prometheus.Histogram
	autoAssignOutcomes   *prometheus.CounterVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Counter, prometheus.Counter, prometheus.Histogram, *prometheus.CounterVec) {
	committed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignments_committed_total",
			Help: "Number of successfully committed assignments",
		},
		[]string{"severity"},
	)
	conflicts := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assignment_conflicts_total",
			Help: "Number of commit attempts lost to a concurrent assignment",
		},
	)
	recs := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Number of candidate ranking requests served",
		},
	)
	lat := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_latency_seconds",
			Help:    "Latency of candidate ranking requests",
			Buckets: prometheus.DefBuckets,
		},
	)
	auto := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auto_assign_outcomes_total",
			Help: "Per-incident outcomes of auto-assign batches",
		},
		[]string{"outcome"},
	)
	return committed, conflicts, recs, lat, auto
}

func init() {
	assignmentsCommitted, assignmentConflicts, recommendRequests, recommendLatency, autoAssignOutcomes = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(assignmentsCommitted, assignmentConflicts, recommendRequests, recommendLatency, autoAssignOutcomes)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	assignmentsCommitted, assignmentConflicts, recommendRequests, recommendLatency, autoAssignOutcomes = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

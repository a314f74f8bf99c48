package dispatch

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsRegistration(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)
	// touch metrics so they are exported
	assignmentsCommitted.WithLabelValues("critical").Inc()
	assignmentConflicts.Inc()
	recommendRequests.Inc()
	recommendLatency.Observe(0.01)
	autoAssignOutcomes.WithLabelValues("assigned").Inc()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[*mf.Name] = true
	}
	expected := []string{
		"assignments_committed_total",
		"assignment_conflicts_total",
		"recommendations_total",
		"recommendation_latency_seconds",
		"auto_assign_outcomes_total",
	}
	for _, n := range expected {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}

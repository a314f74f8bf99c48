package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/floodops/dispatch/core/metrics"
)

// PromSink records committed assignments in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	distance    prometheus.Histogram
	eta         prometheus.Histogram
}

// NewPromSink registers assignment metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_records_total",
		Help: "Total number of exported assignment records",
	}, []string{"incident_type", "severity", "unit_type", "auto"})
	distance := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assignment_distance_km",
		Help:    "Distance between unit and incident at commit time",
		Buckets: []float64{1, 2, 5, 10, 15, 30, 50, 100},
	})
	eta := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assignment_eta_minutes",
		Help:    "Estimated arrival time of committed assignments",
		Buckets: []float64{5, 10, 20, 30, 60, 90, 120},
	})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(distance); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			distance = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(eta); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			eta = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{assignments: assignments, distance: distance, eta: eta}, nil
}

// RecordAssignment increments the counter and observes the histograms for
// each record.
func (s *PromSink) RecordAssignment(recs []coremetrics.AssignmentRecord) error {
	for _, r := range recs {
		s.assignments.WithLabelValues(r.IncidentType, r.Severity, r.UnitType, strconv.FormatBool(r.Auto)).Inc()
		s.distance.Observe(r.DistanceKm)
		s.eta.Observe(float64(r.ETAMinutes))
	}
	return nil
}

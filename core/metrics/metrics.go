// Package metrics defines the sink contract used to export committed
// assignments to external observability backends.
package metrics

import "time"

// AssignmentRecord captures one committed assignment for export.
type AssignmentRecord struct {
	AssignmentID string
	IncidentID   string
	UnitID       string
	IncidentType string
	Severity     string
	UnitType     string
	Score        int
	DistanceKm   float64
	ETAMinutes   int
	Auto         bool
	CommittedAt  time.Time
}

// Sink receives assignment records. Implementations must be safe for
// concurrent use.
type Sink interface {
	RecordAssignment(recs []AssignmentRecord) error
}

// NopSink discards every record. It is used when no backend is configured or
// when a backend fails its health check.
type NopSink struct{}

// RecordAssignment implements Sink.
func (NopSink) RecordAssignment([]AssignmentRecord) error { return nil }

// Config selects and parameterizes the enabled sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

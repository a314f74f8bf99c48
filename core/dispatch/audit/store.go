// Package audit persists a record of every commit attempt so that dispatch
// decisions stay reviewable after the fact.
package audit

import (
	"context"
	"time"
)

// Outcome labels for Record.Outcome.
const (
	OutcomeCommitted = "committed"
	OutcomeConflict  = "conflict"
	OutcomeRejected  = "rejected"
)

// Record is one commit attempt, successful or not.
type Record struct {
	Timestamp    time.Time `json:"timestamp"`
	AssignmentID string    `json:"assignment_id,omitempty"`
	IncidentID   string    `json:"incident_id"`
	UnitID       string    `json:"unit_id"`
	Severity     string    `json:"severity,omitempty"`
	Outcome      string    `json:"outcome"`
	ETAMinutes   int       `json:"eta_minutes,omitempty"`
	Score        int       `json:"score,omitempty"`
	DistanceKm   float64   `json:"distance_km,omitempty"`
	Auto         bool      `json:"auto,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// Store is an append-only audit log.
type Store interface {
	Append(ctx context.Context, rec Record) error
	// List returns records with Timestamp in [from, to). Zero bounds are open.
	List(ctx context.Context, from, to time.Time) ([]Record, error)
	Close() error
}

func inWindow(ts, from, to time.Time) bool {
	if !from.IsZero() && ts.Before(from) {
		return false
	}
	if !to.IsZero() && !ts.Before(to) {
		return false
	}
	return true
}

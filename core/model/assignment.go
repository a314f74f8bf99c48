package model

import "time"

// Assignment records the commitment of a unit to an incident. Assignments are
// immutable; a reassignment creates a new record for the same incident.
type Assignment struct {
	ID                      string    `json:"id"`
	IncidentID              string    `json:"incident_id"`
	UnitID                  string    `json:"unit_id"`
	Priority                Severity  `json:"priority"` // incident severity at commit time
	EstimatedArrivalMinutes int       `json:"estimated_arrival_minutes"`
	Notes                   string    `json:"notes,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

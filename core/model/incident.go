package model

import (
	"fmt"
	"time"
)

// IncidentType categorizes the nature of an emergency.
type IncidentType string

const (
	IncidentFlood                IncidentType = "flood"
	IncidentRescueNeeded         IncidentType = "rescue_needed"
	IncidentInfrastructureDamage IncidentType = "infrastructure_damage"
	IncidentRoadClosure          IncidentType = "road_closure"
	IncidentPowerOutage          IncidentType = "power_outage"
	IncidentWaterContamination   IncidentType = "water_contamination"
	IncidentEvacuationRequired   IncidentType = "evacuation_required"
	IncidentMedicalEmergency     IncidentType = "medical_emergency"
	IncidentOther                IncidentType = "other"
)

// Severity orders incidents from low to critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Rank returns the ordinal position of the severity, -1 for unknown values.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// IncidentStatus tracks an incident through its lifecycle.
type IncidentStatus string

const (
	StatusReported   IncidentStatus = "reported"
	StatusAssigned   IncidentStatus = "assigned"
	StatusInProgress IncidentStatus = "in_progress"
	StatusResolved   IncidentStatus = "resolved"
	StatusClosed     IncidentStatus = "closed"
)

// incidentTransitions encodes the forward-only incident state machine.
// resolved and closed are terminal.
var incidentTransitions = map[IncidentStatus]IncidentStatus{
	StatusReported:   StatusAssigned,
	StatusAssigned:   StatusInProgress,
	StatusInProgress: StatusResolved,
	StatusResolved:   StatusClosed,
}

// CanTransition reports whether moving from the current status to next is a
// legal single step.
func (s IncidentStatus) CanTransition(next IncidentStatus) bool {
	return incidentTransitions[s] == next
}

// Incident is an emergency report. Fields other than Status and AssignedUnitID
// are immutable after creation.
type Incident struct {
	ID             string         `json:"id"`
	Title          string         `json:"title,omitempty"`
	Type           IncidentType   `json:"type"`
	Severity       Severity       `json:"severity"`
	AffectedPeople int            `json:"affected_people_count"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Address        string         `json:"address,omitempty"`
	Status         IncidentStatus `json:"status"`
	AssignedUnitID string         `json:"assigned_unit_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// IsCritical reports whether the incident has the highest severity.
func (i Incident) IsCritical() bool { return i.Severity == SeverityCritical }

// Unassigned reports whether the incident still awaits a first assignment.
func (i Incident) Unassigned() bool {
	return i.Status == StatusReported && i.AssignedUnitID == ""
}

// Validate checks the invariants that must hold for a stored incident.
func (i Incident) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("incident id is required")
	}
	if i.AffectedPeople < 0 {
		return fmt.Errorf("affected people count must not be negative")
	}
	if i.Severity.Rank() < 0 {
		return fmt.Errorf("unknown severity %q", i.Severity)
	}
	if i.Status == StatusReported && i.AssignedUnitID != "" {
		return fmt.Errorf("reported incident must not carry an assigned unit")
	}
	return nil
}

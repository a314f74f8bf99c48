// Package events defines the notification payloads published on the event bus
// after dispatch decisions. Delivery and formatting belong to the subscribers.
package events

import "github.com/floodops/dispatch/core/model"

// AssignmentCommitted is published once per successful commit.
type AssignmentCommitted struct {
	Assignment model.Assignment
	Incident   model.Incident
	Unit       model.RescueUnit
	Auto       bool
}

// AssignmentOutcome summarizes one incident's result inside an auto-assign
// batch.
type AssignmentOutcome struct {
	IncidentID   string
	UnitID       string
	AssignmentID string
	Status       string
	Error        string
}

// AutoAssignCompleted is published once per auto-assign batch.
type AutoAssignCompleted struct {
	Requested int
	Outcomes  []AssignmentOutcome
}

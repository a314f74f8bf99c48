package store

import "errors"

var (
	// ErrNotFound is returned when an incident or unit id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrUnitNoLongerAvailable is returned when the commit-time compare-and-swap
	// on the unit status loses a race.
	ErrUnitNoLongerAvailable = errors.New("unit no longer available")
	// ErrIncidentAlreadyAssigned is returned when the incident left the reported
	// state before the commit.
	ErrIncidentAlreadyAssigned = errors.New("incident already assigned")
)

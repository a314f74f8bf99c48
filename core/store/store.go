// Package store defines the incident and unit state backing the dispatch
// engine. The engine reads fresh state on every call and never caches; the
// store is the sole source of truth and owns the atomic commit primitive.
package store

import (
	"context"

	"github.com/floodops/dispatch/core/model"
)

// CommitResult carries the snapshots taken after a successful assignment
// commit.
type CommitResult struct {
	Assignment model.Assignment
	Incident   model.Incident
	Unit       model.RescueUnit
}

// Store is the engine's view of the backing state.
type Store interface {
	GetIncident(ctx context.Context, id string) (model.Incident, error)
	GetUnit(ctx context.Context, id string) (model.RescueUnit, error)
	ListIncidents(ctx context.Context) ([]model.Incident, error)
	// ListAvailableUnits returns every unit eligible for a new assignment, in
	// stable insertion order.
	ListAvailableUnits(ctx context.Context) ([]model.RescueUnit, error)
	// CommitAssignment atomically creates the assignment, moves the incident
	// from reported to assigned and the unit from available to en_route. The
	// three writes succeed together or not at all: a unit that is no longer
	// available fails with ErrUnitNoLongerAvailable, an incident that left the
	// reported state fails with ErrIncidentAlreadyAssigned.
	CommitAssignment(ctx context.Context, a model.Assignment) (CommitResult, error)
}

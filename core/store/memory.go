package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/floodops/dispatch/core/model"
)

// MemoryStore is the reference in-memory Store. A single mutex serializes
// commits, which makes CommitAssignment an atomic compare-and-swap on both the
// incident and unit status.
type MemoryStore struct {
	mu            sync.RWMutex
	incidents     map[string]model.Incident
	units         map[string]model.RescueUnit
	incidentOrder []string
	unitOrder     []string
	assignments   []model.Assignment
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		incidents: map[string]model.Incident{},
		units:     map[string]model.RescueUnit{},
	}
}

// PutIncident inserts or replaces an incident.
func (s *MemoryStore) PutIncident(inc model.Incident) error {
	if err := inc.Validate(); err != nil {
		return fmt.Errorf("put incident: %w", err)
	}
	s.mu.Lock()
	if _, ok := s.incidents[inc.ID]; !ok {
		s.incidentOrder = append(s.incidentOrder, inc.ID)
	}
	s.incidents[inc.ID] = inc
	s.mu.Unlock()
	return nil
}

// PutUnit inserts or replaces a unit.
func (s *MemoryStore) PutUnit(u model.RescueUnit) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("put unit: %w", err)
	}
	s.mu.Lock()
	if _, ok := s.units[u.ID]; !ok {
		s.unitOrder = append(s.unitOrder, u.ID)
	}
	s.units[u.ID] = u
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetIncident(_ context.Context, id string) (model.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inc, ok := s.incidents[id]
	if !ok {
		return model.Incident{}, fmt.Errorf("incident %s: %w", id, ErrNotFound)
	}
	return inc, nil
}

func (s *MemoryStore) GetUnit(_ context.Context, id string) (model.RescueUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.units[id]
	if !ok {
		return model.RescueUnit{}, fmt.Errorf("unit %s: %w", id, ErrNotFound)
	}
	return u, nil
}

func (s *MemoryStore) ListIncidents(_ context.Context) ([]model.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]model.Incident, 0, len(s.incidentOrder))
	for _, id := range s.incidentOrder {
		res = append(res, s.incidents[id])
	}
	return res, nil
}

// ListAvailableUnits returns available units in insertion order, keeping
// ranking deterministic for identical scores.
func (s *MemoryStore) ListAvailableUnits(_ context.Context) ([]model.RescueUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.RescueUnit
	for _, id := range s.unitOrder {
		if u := s.units[id]; u.IsAvailable() {
			res = append(res, u)
		}
	}
	return res, nil
}

// ListAssignments returns all committed assignments in commit order.
func (s *MemoryStore) ListAssignments(_ context.Context) ([]model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Assignment(nil), s.assignments...), nil
}

// CommitAssignment implements the Store commit contract under the write lock.
func (s *MemoryStore) CommitAssignment(_ context.Context, a model.Assignment) (CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[a.IncidentID]
	if !ok {
		return CommitResult{}, fmt.Errorf("incident %s: %w", a.IncidentID, ErrNotFound)
	}
	u, ok := s.units[a.UnitID]
	if !ok {
		return CommitResult{}, fmt.Errorf("unit %s: %w", a.UnitID, ErrNotFound)
	}
	if !u.IsAvailable() {
		return CommitResult{}, fmt.Errorf("unit %s is %s: %w", u.ID, u.Status, ErrUnitNoLongerAvailable)
	}
	if inc.Status != model.StatusReported {
		return CommitResult{}, fmt.Errorf("incident %s is %s: %w", inc.ID, inc.Status, ErrIncidentAlreadyAssigned)
	}

	inc.Status = model.StatusAssigned
	inc.AssignedUnitID = u.ID
	u.Status = model.UnitEnRoute
	s.incidents[inc.ID] = inc
	s.units[u.ID] = u
	s.assignments = append(s.assignments, a)

	return CommitResult{Assignment: a, Incident: inc, Unit: u}, nil
}

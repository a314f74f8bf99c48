package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/floodops/dispatch/core/events"
	"github.com/floodops/dispatch/core/model"
)

// OutcomeStatus classifies the result of one incident in an auto-assign batch.
type OutcomeStatus string

const (
	// OutcomeAssigned means a unit was committed to the incident.
	OutcomeAssigned OutcomeStatus = "assigned"
	// OutcomeSkipped means the incident was not eligible (not critical, or no
	// longer awaiting a first assignment).
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeNoCandidates means no available unit could be ranked.
	OutcomeNoCandidates OutcomeStatus = "no_candidates"
	// OutcomeFailed means the assignment attempt (and its single retry after a
	// race loss) did not succeed.
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome reports what happened to one incident during AutoAssign.
type Outcome struct {
	IncidentID   string        `json:"incident_id"`
	Status       OutcomeStatus `json:"status"`
	UnitID       string        `json:"unit_id,omitempty"`
	AssignmentID string        `json:"assignment_id,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// AutoAssign attempts to assign the top-ranked unit to each critical,
// unassigned incident in the batch. Incidents are processed concurrently and
// independently: one incident's failure never aborts the others. A commit
// lost to a concurrent assignment is retried once against a fresh ranking
// before the incident is recorded as failed.
func (s *Service) AutoAssign(ctx context.Context, incidentIDs []string) []Outcome {
	outcomes := make([]Outcome, len(incidentIDs))
	var wg sync.WaitGroup
	for i, id := range incidentIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcomes[i] = s.autoAssignOne(ctx, id)
		}(i, id)
	}
	wg.Wait()

	evOutcomes := make([]events.AssignmentOutcome, len(outcomes))
	for i, o := range outcomes {
		autoAssignOutcomes.WithLabelValues(string(o.Status)).Inc()
		evOutcomes[i] = events.AssignmentOutcome{
			IncidentID:   o.IncidentID,
			UnitID:       o.UnitID,
			AssignmentID: o.AssignmentID,
			Status:       string(o.Status),
			Error:        o.Error,
		}
	}
	if s.bus != nil {
		s.bus.Publish(events.AutoAssignCompleted{Requested: len(incidentIDs), Outcomes: evOutcomes})
	}
	return outcomes
}

func (s *Service) autoAssignOne(ctx context.Context, incidentID string) Outcome {
	out := Outcome{IncidentID: incidentID}

	inc, err := s.store.GetIncident(ctx, incidentID)
	if err != nil {
		out.Status = OutcomeFailed
		out.Error = err.Error()
		return out
	}
	if !inc.IsCritical() || !inc.Unassigned() {
		out.Status = OutcomeSkipped
		return out
	}

	cands, err := s.rankLive(ctx, inc, "")
	if err != nil {
		out.Status = OutcomeFailed
		out.Error = err.Error()
		return out
	}
	if len(cands) == 0 {
		out.Status = OutcomeNoCandidates
		return out
	}

	a, err := s.tryCandidate(ctx, inc, cands[0])
	if errors.Is(err, ErrUnitNoLongerAvailable) {
		// Lost the race for the top unit: re-rank once against the fresh pool
		// and try the new best candidate. Retries stay sequential within one
		// incident.
		cands, rerr := s.rankLive(ctx, inc, "")
		if rerr != nil {
			out.Status = OutcomeFailed
			out.Error = rerr.Error()
			return out
		}
		if len(cands) == 0 {
			out.Status = OutcomeNoCandidates
			return out
		}
		a, err = s.tryCandidate(ctx, inc, cands[0])
	}
	if err != nil {
		out.Status = OutcomeFailed
		out.Error = err.Error()
		return out
	}
	out.Status = OutcomeAssigned
	out.UnitID = a.UnitID
	out.AssignmentID = a.ID
	return out
}

func (s *Service) tryCandidate(ctx context.Context, inc model.Incident, c Candidate) (model.Assignment, error) {
	return s.assign(ctx, AssignRequest{
		IncidentID:              inc.ID,
		UnitID:                  c.Unit.ID,
		EstimatedArrivalMinutes: clampETA(c.EstimatedResponseMinutes),
		Notes:                   "auto-assigned",
	}, true)
}

func clampETA(minutes int) int {
	if minutes < minETAMinutes {
		return minETAMinutes
	}
	if minutes > maxETAMinutes {
		return maxETAMinutes
	}
	return minutes
}

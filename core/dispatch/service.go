package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/floodops/dispatch/core/dispatch/audit"
	"github.com/floodops/dispatch/core/events"
	"github.com/floodops/dispatch/core/geo"
	"github.com/floodops/dispatch/core/logger"
	"github.com/floodops/dispatch/core/metrics"
	"github.com/floodops/dispatch/core/model"
	"github.com/floodops/dispatch/core/store"
	"github.com/floodops/dispatch/internal/eventbus"
)

const (
	minETAMinutes = 1
	maxETAMinutes = 120
)

// AssignRequest carries the operator's input for a manual assignment.
type AssignRequest struct {
	IncidentID              string `json:"incident_id"`
	UnitID                  string `json:"unit_id"`
	EstimatedArrivalMinutes int    `json:"estimated_arrival_minutes"`
	Notes                   string `json:"notes,omitempty"`
}

// Service is the dispatch façade consumed by the API layer: ranking,
// assignment and auto-assignment over the live store.
type Service struct {
	store  store.Store
	ranker *Ranker
	tx     Transaction
	bus    eventbus.EventBus
	sink   metrics.Sink
	audit  audit.Store
	log    logger.Logger
	cfg    Config
}

// NewService creates a Service. The bus, sink and audit store are optional;
// the store and logger are not.
func NewService(st store.Store, bus eventbus.EventBus, sink metrics.Sink, auditStore audit.Store, log logger.Logger, cfg Config) (*Service, error) {
	if st == nil || log == nil {
		return nil, fmt.Errorf("dispatch: nil parameter provided to NewService")
	}
	cfg.SetDefaults()
	return &Service{
		store:  st,
		ranker: NewRanker(cfg.AverageSpeedKmh),
		tx:     Transaction{Store: st},
		bus:    bus,
		sink:   sink,
		audit:  auditStore,
		log:    log,
		cfg:    cfg,
	}, nil
}

// Recommend ranks the live available pool against the incident. It is
// read-only: results may be stale by the time a commit is attempted and the
// commit path is what enforces correctness. An empty list is a valid answer.
func (s *Service) Recommend(ctx context.Context, incidentID, query string) ([]Candidate, error) {
	start := time.Now()
	recommendRequests.Inc()

	inc, err := s.store.GetIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	cands, err := s.rankLive(ctx, inc, query)
	if err != nil {
		return nil, err
	}
	recommendLatency.Observe(time.Since(start).Seconds())
	return cands, nil
}

func (s *Service) rankLive(ctx context.Context, inc model.Incident, query string) ([]Candidate, error) {
	pool, err := s.store.ListAvailableUnits(ctx)
	if err != nil {
		return nil, err
	}
	cands, err := s.ranker.Rank(inc, pool, query)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxCandidates > 0 && len(cands) > s.cfg.MaxCandidates {
		cands = cands[:s.cfg.MaxCandidates]
	}
	return cands, nil
}

// Assign validates the request and commits the assignment. Race losses
// surface as ErrUnitNoLongerAvailable and are safe to retry after re-ranking.
func (s *Service) Assign(ctx context.Context, req AssignRequest) (model.Assignment, error) {
	return s.assign(ctx, req, false)
}

func (s *Service) assign(ctx context.Context, req AssignRequest, auto bool) (model.Assignment, error) {
	if req.IncidentID == "" || req.UnitID == "" {
		return model.Assignment{}, fmt.Errorf("incident id and unit id are required: %w", ErrInvalidInput)
	}
	if req.EstimatedArrivalMinutes < minETAMinutes || req.EstimatedArrivalMinutes > maxETAMinutes {
		return model.Assignment{}, fmt.Errorf("estimated arrival must be between %d and %d minutes: %w",
			minETAMinutes, maxETAMinutes, ErrInvalidInput)
	}

	res, err := s.tx.Commit(ctx, req.IncidentID, req.UnitID, req.EstimatedArrivalMinutes, req.Notes)
	if err != nil {
		outcome := audit.OutcomeRejected
		if errors.Is(err, ErrUnitNoLongerAvailable) || errors.Is(err, ErrIncidentAlreadyAssigned) {
			assignmentConflicts.Inc()
			outcome = audit.OutcomeConflict
		}
		s.appendAudit(ctx, audit.Record{
			Timestamp:  time.Now().UTC(),
			IncidentID: req.IncidentID,
			UnitID:     req.UnitID,
			Outcome:    outcome,
			ETAMinutes: req.EstimatedArrivalMinutes,
			Auto:       auto,
			Error:      err.Error(),
		})
		return model.Assignment{}, err
	}

	assignmentsCommitted.WithLabelValues(string(res.Assignment.Priority)).Inc()
	dist, score := s.describeCommit(res.Incident, res.Unit)
	s.appendAudit(ctx, audit.Record{
		Timestamp:    res.Assignment.CreatedAt,
		AssignmentID: res.Assignment.ID,
		IncidentID:   res.Incident.ID,
		UnitID:       res.Unit.ID,
		Severity:     string(res.Assignment.Priority),
		Outcome:      audit.OutcomeCommitted,
		ETAMinutes:   res.Assignment.EstimatedArrivalMinutes,
		Score:        score,
		DistanceKm:   dist,
		Auto:         auto,
	})
	if s.sink != nil {
		rec := metrics.AssignmentRecord{
			AssignmentID: res.Assignment.ID,
			IncidentID:   res.Incident.ID,
			UnitID:       res.Unit.ID,
			IncidentType: string(res.Incident.Type),
			Severity:     string(res.Assignment.Priority),
			UnitType:     string(res.Unit.UnitType),
			Score:        score,
			DistanceKm:   dist,
			ETAMinutes:   res.Assignment.EstimatedArrivalMinutes,
			Auto:         auto,
			CommittedAt:  res.Assignment.CreatedAt,
		}
		if err := s.sink.RecordAssignment([]metrics.AssignmentRecord{rec}); err != nil {
			s.log.Errorf("metrics sink error: %v", err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(events.AssignmentCommitted{
			Assignment: res.Assignment,
			Incident:   res.Incident,
			Unit:       res.Unit,
			Auto:       auto,
		})
	}
	s.log.Infof("assigned unit %s to incident %s (eta %dmin)", res.Unit.ID, res.Incident.ID, res.Assignment.EstimatedArrivalMinutes)
	return res.Assignment, nil
}

// describeCommit recomputes the distance and score for a committed pair so
// the audit trail and metric sinks carry the same figures the ranking showed.
func (s *Service) describeCommit(inc model.Incident, u model.RescueUnit) (float64, int) {
	dist, err := geo.Distance(
		geo.Coordinate{Lat: inc.Latitude, Lon: inc.Longitude},
		geo.Coordinate{Lat: u.Latitude, Lon: u.Longitude},
	)
	if err != nil {
		return 0, 0
	}
	return geo.RoundKm(dist), s.ranker.scorer.Score(inc, u, dist).Value
}

func (s *Service) appendAudit(ctx context.Context, rec audit.Record) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Append(ctx, rec); err != nil {
		s.log.Errorf("audit append error: %v", err)
	}
}

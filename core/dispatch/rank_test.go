package dispatch

import (
	"errors"
	"testing"

	"github.com/floodops/dispatch/core/geo"
	"github.com/floodops/dispatch/core/model"
)

func floodIncident() model.Incident {
	return model.Incident{
		ID: "i1", Type: model.IncidentFlood, Severity: model.SeverityCritical,
		AffectedPeople: 50, Latitude: 9.9252, Longitude: 78.1198, Status: model.StatusReported,
	}
}

func TestRankFloodScenarioOrder(t *testing.T) {
	r := NewRanker(0)
	inc := floodIncident()
	pool := []model.RescueUnit{
		// roughly 40 km north
		{ID: "u2", Name: "Fire 2", UnitType: model.UnitFireRescue, Status: model.UnitAvailable,
			Capacity: 10, TeamSize: 1, FuelLevel: fuel(10), Latitude: 10.2852, Longitude: 78.1198},
		// roughly 2 km north
		{ID: "u1", Name: "Water 1", UnitType: model.UnitWaterRescue, Status: model.UnitAvailable,
			Capacity: 60, TeamSize: 5, FuelLevel: fuel(80), Latitude: 9.9432, Longitude: 78.1198},
	}
	cands, err := r.Rank(inc, pool, "")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(cands) != 2 || cands[0].Unit.ID != "u1" || cands[1].Unit.ID != "u2" {
		t.Fatalf("wrong order: %+v", cands)
	}
	if cands[0].Score != 80 {
		t.Fatalf("u1 score: got %d want 80", cands[0].Score)
	}
	if cands[1].Score != 0 {
		t.Fatalf("u2 score should clamp to 0, got %d", cands[1].Score)
	}
	if cands[0].EstimatedResponseMinutes < 1 {
		t.Fatalf("response estimate must be at least one minute")
	}
}

func TestRankExcludesUnavailableUnits(t *testing.T) {
	r := NewRanker(0)
	inc := floodIncident()
	pool := []model.RescueUnit{
		{ID: "u1", Status: model.UnitBusy, UnitType: model.UnitWaterRescue, Latitude: 9.93, Longitude: 78.12},
		{ID: "u2", Status: model.UnitOffline, UnitType: model.UnitWaterRescue, Latitude: 9.93, Longitude: 78.12},
		{ID: "u3", Status: model.UnitMaintenance, UnitType: model.UnitWaterRescue, Latitude: 9.93, Longitude: 78.12},
		{ID: "u4", Status: model.UnitEnRoute, UnitType: model.UnitWaterRescue, Latitude: 9.93, Longitude: 78.12},
		{ID: "u5", Status: model.UnitOnScene, UnitType: model.UnitWaterRescue, Latitude: 9.93, Longitude: 78.12},
		{ID: "u6", Status: model.UnitAvailable, UnitType: model.UnitWaterRescue, Latitude: 9.93, Longitude: 78.12},
	}
	cands, err := r.Rank(inc, pool, "")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(cands) != 1 || cands[0].Unit.ID != "u6" {
		t.Fatalf("only u6 should qualify: %+v", cands)
	}
}

func TestRankStableTieBreak(t *testing.T) {
	r := NewRanker(0)
	inc := floodIncident()
	// identical units: identical scores, pool order must win
	var pool []model.RescueUnit
	for _, id := range []string{"a", "b", "c", "d"} {
		pool = append(pool, model.RescueUnit{
			ID: id, Status: model.UnitAvailable, UnitType: model.UnitPolice,
			TeamSize: 2, Latitude: 9.93, Longitude: 78.12,
		})
	}
	cands, err := r.Rank(inc, pool, "")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	for i, id := range []string{"a", "b", "c", "d"} {
		if cands[i].Unit.ID != id {
			t.Fatalf("tie-break not stable: %+v", cands)
		}
	}
}

func TestRankTextFilter(t *testing.T) {
	r := NewRanker(0)
	inc := floodIncident()
	pool := []model.RescueUnit{
		{ID: "u1", Name: "River Alpha", CallSign: "RA-7", Status: model.UnitAvailable, UnitType: model.UnitWaterRescue, Latitude: 9.93, Longitude: 78.12},
		{ID: "u2", Name: "City Medic", TeamLeader: "Kumar", Status: model.UnitAvailable, UnitType: model.UnitMedical, Latitude: 9.93, Longitude: 78.12},
	}
	cands, err := r.Rank(inc, pool, "kumar")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(cands) != 1 || cands[0].Unit.ID != "u2" {
		t.Fatalf("filter should keep only u2: %+v", cands)
	}
	cands, err = r.Rank(inc, pool, "no such unit")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("expected empty list, got %+v", cands)
	}
}

func TestRankEmptyPool(t *testing.T) {
	r := NewRanker(0)
	cands, err := r.Rank(floodIncident(), nil, "")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("expected empty list, got %+v", cands)
	}
}

func TestRankInvalidIncidentCoordinate(t *testing.T) {
	r := NewRanker(0)
	inc := floodIncident()
	inc.Latitude = 95
	if _, err := r.Rank(inc, nil, ""); !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestRankSkipsUnitWithBadCoordinates(t *testing.T) {
	r := NewRanker(0)
	pool := []model.RescueUnit{
		{ID: "bad", Status: model.UnitAvailable, Latitude: 200, Longitude: 0},
		{ID: "ok", Status: model.UnitAvailable, Latitude: 9.93, Longitude: 78.12},
	}
	cands, err := r.Rank(floodIncident(), pool, "")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(cands) != 1 || cands[0].Unit.ID != "ok" {
		t.Fatalf("unit with invalid coordinates should be skipped: %+v", cands)
	}
}

package model

import "testing"

func TestSeverityOrdering(t *testing.T) {
	order := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Fatalf("expected %s < %s", order[i-1], order[i])
		}
	}
	if Severity("bogus").Rank() != -1 {
		t.Fatalf("unknown severity should rank -1")
	}
}

func TestIncidentTransitions(t *testing.T) {
	cases := []struct {
		from, to IncidentStatus
		ok       bool
	}{
		{StatusReported, StatusAssigned, true},
		{StatusAssigned, StatusInProgress, true},
		{StatusInProgress, StatusResolved, true},
		{StatusResolved, StatusClosed, true},
		{StatusReported, StatusInProgress, false},
		{StatusAssigned, StatusReported, false},
		{StatusClosed, StatusReported, false},
		{StatusResolved, StatusReported, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Errorf("%s -> %s: got %v want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestIncidentValidate(t *testing.T) {
	inc := Incident{ID: "i1", Severity: SeverityHigh, Status: StatusReported}
	if err := inc.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inc.AssignedUnitID = "u1"
	if err := inc.Validate(); err == nil {
		t.Fatalf("reported incident with assigned unit should be invalid")
	}
	inc = Incident{ID: "i2", Severity: SeverityLow, Status: StatusReported, AffectedPeople: -1}
	if err := inc.Validate(); err == nil {
		t.Fatalf("negative affected count should be invalid")
	}
}

func TestUnitMatchesQuery(t *testing.T) {
	u := RescueUnit{ID: "u1", Name: "River Alpha", CallSign: "RA-7", TeamLeader: "Priya", UnitType: UnitWaterRescue}
	for _, q := range []string{"", "river", "RA-7", "priya", "water"} {
		if !u.MatchesQuery(q) {
			t.Errorf("query %q should match", q)
		}
	}
	if u.MatchesQuery("helicopter") {
		t.Errorf("query should not match")
	}
}

func TestUnitValidate(t *testing.T) {
	fuel := 150.0
	u := RescueUnit{ID: "u1", Status: UnitAvailable, FuelLevel: &fuel}
	if err := u.Validate(); err == nil {
		t.Fatalf("fuel above 100 should be invalid")
	}
}

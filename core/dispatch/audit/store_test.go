package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testRecords(base time.Time) []Record {
	return []Record{
		{Timestamp: base, AssignmentID: "a1", IncidentID: "i1", UnitID: "u1", Severity: "critical", Outcome: OutcomeCommitted, ETAMinutes: 12, Score: 80, DistanceKm: 2.1},
		{Timestamp: base.Add(time.Minute), IncidentID: "i1", UnitID: "u2", Outcome: OutcomeConflict, Error: "unit no longer available"},
		{Timestamp: base.Add(2 * time.Minute), AssignmentID: "a2", IncidentID: "i2", UnitID: "u2", Severity: "high", Outcome: OutcomeCommitted, Auto: true},
	}
}

func runStoreTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	for _, rec := range testRecords(base) {
		if err := s.Append(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := s.List(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].AssignmentID != "a1" || all[2].AssignmentID != "a2" {
		t.Fatalf("records out of order: %+v", all)
	}

	window, err := s.List(ctx, base.Add(30*time.Second), base.Add(90*time.Second))
	if err != nil {
		t.Fatalf("list window: %v", err)
	}
	if len(window) != 1 || window[0].Outcome != OutcomeConflict {
		t.Fatalf("window query wrong: %+v", window)
	}
}

func TestJSONLStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	s, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	runStoreTest(t, s)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	runStoreTest(t, s)
}

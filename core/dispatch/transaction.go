package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/floodops/dispatch/core/model"
	"github.com/floodops/dispatch/core/store"
)

// Transaction commits a unit-to-incident assignment against the store. The
// store's compare-and-swap is the correctness boundary; the pre-checks here
// only surface conflicts before the write is attempted.
type Transaction struct {
	Store store.Store
	Now   func() time.Time
}

// Commit re-reads the current unit and incident state, validates eligibility
// and runs the atomic store commit. On success the assignment record and the
// updated incident/unit snapshots are returned.
func (t Transaction) Commit(ctx context.Context, incidentID, unitID string, etaMinutes int, notes string) (store.CommitResult, error) {
	inc, err := t.Store.GetIncident(ctx, incidentID)
	if err != nil {
		return store.CommitResult{}, err
	}
	// Re-read the unit immediately before commit: ranking results may be stale.
	u, err := t.Store.GetUnit(ctx, unitID)
	if err != nil {
		return store.CommitResult{}, err
	}
	if !u.IsAvailable() {
		return store.CommitResult{}, fmt.Errorf("unit %s is %s: %w", u.ID, u.Status, ErrUnitNoLongerAvailable)
	}
	if inc.Status != model.StatusReported {
		return store.CommitResult{}, fmt.Errorf("incident %s is %s: %w", inc.ID, inc.Status, ErrIncidentAlreadyAssigned)
	}

	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	a := model.Assignment{
		ID:                      uuid.NewString(),
		IncidentID:              inc.ID,
		UnitID:                  u.ID,
		Priority:                inc.Severity,
		EstimatedArrivalMinutes: etaMinutes,
		Notes:                   notes,
		CreatedAt:               now().UTC(),
	}
	return t.Store.CommitAssignment(ctx, a)
}

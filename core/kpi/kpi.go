// Package kpi derives fleet performance indicators from the assignment audit
// trail.
package kpi

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/floodops/dispatch/core/dispatch/audit"
)

// Summary aggregates committed assignments over a reporting window.
type Summary struct {
	Assignments      int     `json:"assignments"`
	Conflicts        int     `json:"conflicts"`
	AutoAssignments  int     `json:"auto_assignments"`
	MeanDistanceKm   float64 `json:"mean_distance_km"`
	StdDevDistanceKm float64 `json:"stddev_distance_km"`
	MedianScore      float64 `json:"median_score"`
	ScoreP90         float64 `json:"score_p90"`
	MeanETAMinutes   float64 `json:"mean_eta_minutes"`
}

// Summarize computes the indicators over the given records. Conflict records
// count toward Conflicts; all other figures cover committed assignments only.
func Summarize(recs []audit.Record) Summary {
	var s Summary
	var distances, scores, etas []float64
	for _, r := range recs {
		switch r.Outcome {
		case audit.OutcomeCommitted:
			s.Assignments++
			if r.Auto {
				s.AutoAssignments++
			}
			distances = append(distances, r.DistanceKm)
			scores = append(scores, float64(r.Score))
			etas = append(etas, float64(r.ETAMinutes))
		case audit.OutcomeConflict:
			s.Conflicts++
		}
	}
	if len(distances) == 0 {
		return s
	}
	s.MeanDistanceKm = stat.Mean(distances, nil)
	if len(distances) > 1 {
		s.StdDevDistanceKm = stat.StdDev(distances, nil)
	}
	sort.Float64s(scores)
	s.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	s.ScoreP90 = stat.Quantile(0.9, stat.Empirical, scores, nil)
	s.MeanETAMinutes = stat.Mean(etas, nil)
	return s
}

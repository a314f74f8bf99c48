package dispatch

import (
	"math"
	"sort"

	"github.com/floodops/dispatch/core/geo"
	"github.com/floodops/dispatch/core/model"
)

// Candidate is one ranked recommendation.
type Candidate struct {
	Unit model.RescueUnit `json:"unit"`
	// DistanceKm is rounded to one decimal for display; ranking happens on
	// full precision before rounding.
	DistanceKm float64  `json:"distance_km"`
	Score      int      `json:"score"`
	Reasons    []string `json:"reasons,omitempty"`
	// EstimatedResponseMinutes projects travel time at the configured average
	// speed. It is a suggestion for the operator, not a commitment.
	EstimatedResponseMinutes int `json:"estimated_response_minutes"`

	raw int
}

// Ranker filters a unit pool down to eligible candidates and orders them by
// suitability.
type Ranker struct {
	scorer      *Scorer
	avgSpeedKmh float64
}

// NewRanker creates a Ranker. avgSpeedKmh parameterizes the response time
// estimate and falls back to the default when non-positive.
func NewRanker(avgSpeedKmh float64) *Ranker {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = defaultAverageSpeedKmh
	}
	return &Ranker{scorer: NewScorer(), avgSpeedKmh: avgSpeedKmh}
}

// Rank scores every eligible unit against the incident and returns candidates
// ordered by descending raw score, ties broken by pool order. Only available
// units that match the optional free-text query participate. An empty result
// is not an error. The incident's own coordinates must be valid; a unit with
// out-of-range coordinates is skipped since it cannot be scored.
func (r *Ranker) Rank(inc model.Incident, pool []model.RescueUnit, query string) ([]Candidate, error) {
	origin := geo.Coordinate{Lat: inc.Latitude, Lon: inc.Longitude}
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(pool))
	for _, u := range pool {
		if !u.IsAvailable() || !u.MatchesQuery(query) {
			continue
		}
		dist, err := geo.Distance(origin, geo.Coordinate{Lat: u.Latitude, Lon: u.Longitude})
		if err != nil {
			continue
		}
		sc := r.scorer.Score(inc, u, dist)
		candidates = append(candidates, Candidate{
			Unit:                     u,
			DistanceKm:               geo.RoundKm(dist),
			Score:                    sc.Value,
			Reasons:                  sc.Reasons,
			EstimatedResponseMinutes: responseMinutes(dist, r.avgSpeedKmh),
			raw:                      sc.Raw,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].raw > candidates[j].raw
	})
	return candidates, nil
}

// responseMinutes converts a distance to estimated travel minutes, never less
// than one.
func responseMinutes(distanceKm, speedKmh float64) int {
	m := int(math.Round(distanceKm / speedKmh * 60))
	if m < 1 {
		m = 1
	}
	return m
}

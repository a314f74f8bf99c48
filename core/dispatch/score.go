package dispatch

import (
	"fmt"
	"strings"

	"github.com/floodops/dispatch/core/model"
)

// Score is the result of evaluating one unit against one incident.
type Score struct {
	// Value is the displayed suitability score, clamped at zero.
	Value int
	// Raw is the unclamped rule total used as the ranking key.
	Raw int
	// Reasons lists why the leading rules fired, in firing order, truncated
	// for compact display.
	Reasons []string
}

const maxDisplayReasons = 2

// typeBonuses maps an incident type to tiered bonuses per unit specialization.
// Incident types absent from the table fall back to the generalist bonus.
var typeBonuses = map[model.IncidentType]map[model.UnitType]int{
	model.IncidentFlood: {
		model.UnitWaterRescue: 30,
		model.UnitFireRescue:  20,
	},
	model.IncidentWaterContamination: {
		model.UnitWaterRescue: 30,
		model.UnitFireRescue:  20,
	},
	model.IncidentMedicalEmergency: {
		model.UnitMedical: 30,
	},
	model.IncidentRescueNeeded: {
		model.UnitSearchRescue: 30,
	},
	model.IncidentEvacuationRequired: {
		model.UnitEvacuation: 30,
	},
}

const generalistBonus = 15

// scoreRule yields a point delta and an optional human-readable reason. An
// empty reason means the rule did not fire.
type scoreRule func(inc model.Incident, u model.RescueUnit, distanceKm float64) (int, string)

// Scorer applies an ordered list of additive rules. The order is part of the
// contract: it fixes both tie-breaking and the reason list callers display.
type Scorer struct {
	rules []scoreRule
}

// NewScorer builds the standard rule set: type match, distance, capacity,
// team size, fuel.
func NewScorer() *Scorer {
	return &Scorer{rules: []scoreRule{
		typeMatchRule,
		distanceRule,
		capacityRule,
		teamSizeRule,
		fuelRule,
	}}
}

// Score evaluates the unit against the incident at the given distance.
func (s *Scorer) Score(inc model.Incident, u model.RescueUnit, distanceKm float64) Score {
	var total int
	var reasons []string
	for _, r := range s.rules {
		delta, reason := r(inc, u, distanceKm)
		total += delta
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}
	if len(reasons) > maxDisplayReasons {
		reasons = reasons[:maxDisplayReasons]
	}
	value := total
	if value < 0 {
		value = 0
	}
	return Score{Value: value, Raw: total, Reasons: reasons}
}

func typeMatchRule(inc model.Incident, u model.RescueUnit, _ float64) (int, string) {
	if bonuses, ok := typeBonuses[inc.Type]; ok {
		if b, ok := bonuses[u.UnitType]; ok {
			return b, fmt.Sprintf("%s unit suited for %s", label(string(u.UnitType)), label(string(inc.Type)))
		}
		return 0, ""
	}
	if u.UnitType == model.UnitEmergencyServices {
		return generalistBonus, "general emergency services unit"
	}
	return 0, ""
}

func distanceRule(_ model.Incident, _ model.RescueUnit, distanceKm float64) (int, string) {
	switch {
	case distanceKm < 5:
		return 20, "very close"
	case distanceKm <= 15:
		return 10, "close"
	case distanceKm > 30:
		return -10, "far"
	}
	return 0, ""
}

func capacityRule(inc model.Incident, u model.RescueUnit, _ float64) (int, string) {
	if inc.AffectedPeople > 0 && u.Capacity >= inc.AffectedPeople {
		return 15, "capacity covers all affected people"
	}
	if float64(u.Capacity) < float64(inc.AffectedPeople)/2 {
		return -5, "capacity well below affected people"
	}
	return 0, ""
}

func teamSizeRule(_ model.Incident, u model.RescueUnit, _ float64) (int, string) {
	if u.TeamSize >= 4 {
		return 10, "large team"
	}
	if u.TeamSize < 2 {
		return -5, "undersized team"
	}
	return 0, ""
}

func fuelRule(_ model.Incident, u model.RescueUnit, _ float64) (int, string) {
	if u.FuelLevel == nil {
		return 0, ""
	}
	if *u.FuelLevel < 25 {
		return -15, "low fuel"
	}
	if *u.FuelLevel > 75 {
		return 5, "fuel topped up"
	}
	return 0, ""
}

func label(s string) string { return strings.ReplaceAll(s, "_", " ") }

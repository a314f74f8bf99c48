package model

import (
	"fmt"
	"strings"
)

// UnitType categorizes a rescue unit's specialization.
type UnitType string

const (
	UnitFireRescue        UnitType = "fire_rescue"
	UnitMedical           UnitType = "medical"
	UnitWaterRescue       UnitType = "water_rescue"
	UnitEvacuation        UnitType = "evacuation"
	UnitSearchRescue      UnitType = "search_rescue"
	UnitPolice            UnitType = "police"
	UnitEmergencyServices UnitType = "emergency_services"
	UnitVolunteer         UnitType = "volunteer"
)

// UnitStatus tracks a unit's availability.
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitBusy        UnitStatus = "busy"
	UnitEnRoute     UnitStatus = "en_route"
	UnitOnScene     UnitStatus = "on_scene"
	UnitOffline     UnitStatus = "offline"
	UnitMaintenance UnitStatus = "maintenance"
)

// RescueUnit is a field team or vehicle that can respond to incidents.
type RescueUnit struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CallSign   string     `json:"call_sign,omitempty"`
	TeamLeader string     `json:"team_leader,omitempty"`
	UnitType   UnitType   `json:"unit_type"`
	Status     UnitStatus `json:"status"`
	Capacity   int        `json:"capacity"`
	TeamSize   int        `json:"team_size"`
	FuelLevel  *float64   `json:"fuel_level,omitempty"` // percentage 0-100 when known
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
}

// IsAvailable reports whether the unit may receive a new assignment.
// Available is the only eligible status.
func (u RescueUnit) IsAvailable() bool { return u.Status == UnitAvailable }

// MatchesQuery reports whether the unit matches a free-text search over its
// name, call sign, team leader and unit type. An empty query matches all.
func (u RescueUnit) MatchesQuery(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, field := range []string{u.Name, u.CallSign, u.TeamLeader, string(u.UnitType)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Validate checks the invariants that must hold for a stored unit.
func (u RescueUnit) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("unit id is required")
	}
	if u.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative")
	}
	if u.TeamSize < 0 {
		return fmt.Errorf("team size must not be negative")
	}
	if u.FuelLevel != nil && (*u.FuelLevel < 0 || *u.FuelLevel > 100) {
		return fmt.Errorf("fuel level must be between 0 and 100")
	}
	return nil
}

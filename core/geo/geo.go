// Package geo provides great-circle distance helpers for dispatch ranking.
package geo

import (
	"errors"
	"math"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is outside the
// WGS84 range.
var ErrInvalidCoordinate = errors.New("coordinate out of range")

const earthRadiusKm = 6371

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate checks the WGS84 degree ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 ||
		math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return ErrInvalidCoordinate
	}
	return nil
}

// Distance returns the haversine distance between a and b in kilometers on a
// spherical Earth. The result keeps full float precision; use RoundKm when
// formatting for display.
func Distance(a, b Coordinate) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h)), nil
}

// RoundKm rounds a distance to one decimal for display.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

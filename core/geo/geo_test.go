package geo

import (
	"errors"
	"math"
	"testing"
)

func TestDistanceSymmetry(t *testing.T) {
	a := Coordinate{Lat: 9.9252, Lon: 78.1198}
	b := Coordinate{Lat: 13.0827, Lon: 80.2707}
	ab, err := Distance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Distance(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceZero(t *testing.T) {
	a := Coordinate{Lat: -33.8688, Lon: 151.2093}
	d, err := Distance(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Madurai to Chennai, roughly 430 km.
	a := Coordinate{Lat: 9.9252, Lon: 78.1198}
	b := Coordinate{Lat: 13.0827, Lon: 80.2707}
	d, err := Distance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d < 400 || d > 460 {
		t.Fatalf("distance out of expected band: %v", d)
	}
}

func TestDistanceInvalidCoordinate(t *testing.T) {
	bad := []Coordinate{
		{Lat: 91, Lon: 0},
		{Lat: -91, Lon: 0},
		{Lat: 0, Lon: 181},
		{Lat: 0, Lon: -181},
		{Lat: math.NaN(), Lon: 0},
	}
	ok := Coordinate{Lat: 0, Lon: 0}
	for _, c := range bad {
		if _, err := Distance(c, ok); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("coordinate %+v: expected ErrInvalidCoordinate, got %v", c, err)
		}
		if _, err := Distance(ok, c); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("coordinate %+v as second arg: expected ErrInvalidCoordinate, got %v", c, err)
		}
	}
}

func TestRoundKm(t *testing.T) {
	if got := RoundKm(12.3456); got != 12.3 {
		t.Fatalf("got %v", got)
	}
	if got := RoundKm(12.35); got != 12.4 {
		t.Fatalf("got %v", got)
	}
}

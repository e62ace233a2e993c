package domain

import (
	"errors"
	"math"
	"testing"
)

func TestGeoPointValidate(t *testing.T) {
	valid := []GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 90, Lon: 180},
		{Lat: -90, Lon: -180},
		{Lat: 33.4484, Lon: -112.074},
	}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%v) unexpected error: %v", p, err)
		}
	}

	invalid := []GeoPoint{
		{Lat: 90.0001, Lon: 0},
		{Lat: -91, Lon: 0},
		{Lat: 0, Lon: 180.5},
		{Lat: 0, Lon: -181},
		{Lat: math.NaN(), Lon: 0},
		{Lat: 0, Lon: math.Inf(1)},
	}
	for _, p := range invalid {
		if err := p.Validate(); err == nil {
			t.Errorf("Validate(%v) expected error, got nil", p)
		}
	}
}

func TestStopWithLocationCopies(t *testing.T) {
	s := Stop{ID: "A", Payload: StopPayload{Address: "1 Main St", City: "Phoenix"}}

	located := s.WithLocation(GeoPoint{Lat: 1, Lon: 2})
	if s.HasLocation() {
		t.Fatalf("original stop should remain unresolved")
	}
	if !located.HasLocation() || located.Location.Lat != 1 || located.Location.Lon != 2 {
		t.Fatalf("located stop = %+v, want location (1,2)", located.Location)
	}
	if q := s.GeocodeQuery(); q != "1 Main St, Phoenix" {
		t.Fatalf("GeocodeQuery = %q, want %q", q, "1 Main St, Phoenix")
	}
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{&MissingCoordinateError{StopID: "A"}, ErrMissingCoordinate},
		{&InvalidCoordinateError{StopID: "A"}, ErrInvalidCoordinate},
		{&InvalidConfigurationError{Field: "average_speed_kmh"}, ErrInvalidConfiguration},
		{&DuplicateStopError{StopID: "A"}, ErrDuplicateStop},
		{&UnknownStopError{StopIDs: []string{"A"}}, ErrUnknownStop},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.want) {
			t.Errorf("errors.Is(%v, %v) = false", c.err, c.want)
		}
	}
}

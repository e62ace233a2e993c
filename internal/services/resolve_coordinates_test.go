package services

import (
	"context"
	"delivery-route-planner/internal/adapters/geocoding"
	"delivery-route-planner/internal/domain"
	"errors"
	"testing"
)

type failingGeocoder struct{}

func (failingGeocoder) Geocode(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	return nil, errors.New("service unavailable")
}

func TestResolveCoordinatesFillsOnlyMissing(t *testing.T) {
	known := stopAt("known", 1, 1)
	known.Payload.Address = "1 Main St"

	pending := domain.Stop{ID: "pending", Payload: domain.StopPayload{Address: "2 Oak Ave", City: "Tempe"}}
	lost := domain.Stop{ID: "lost", Payload: domain.StopPayload{Address: "Nowhere"}}

	geocoder := geocoding.NewStaticGeocoder(map[string]domain.GeoPoint{
		"1 Main St":        {Lat: 50, Lon: 50},
		"2 Oak Ave, Tempe": {Lat: 33.42, Lon: -111.94},
	})

	input := []domain.Stop{known, pending, lost}
	got, err := ResolveCoordinates(context.Background(), input, geocoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *got[0].Location != (domain.GeoPoint{Lat: 1, Lon: 1}) {
		t.Fatalf("known stop location changed to %v", *got[0].Location)
	}
	if got[1].Location == nil || *got[1].Location != (domain.GeoPoint{Lat: 33.42, Lon: -111.94}) {
		t.Fatalf("pending stop location = %v, want (33.42,-111.94)", got[1].Location)
	}
	if got[2].Location != nil {
		t.Fatalf("unresolvable stop got location %v, want nil", *got[2].Location)
	}
	if input[1].Location != nil {
		t.Fatalf("input slice was modified")
	}
}

func TestResolveCoordinatesSkipsGeocoderWhenNothingMissing(t *testing.T) {
	geocoder := geocoding.NewStaticGeocoder(nil)
	_, err := ResolveCoordinates(context.Background(), []domain.Stop{stopAt("a", 1, 1)}, geocoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geocoder.Calls() != 0 {
		t.Fatalf("geocoder called %d times, want 0", geocoder.Calls())
	}

	got, err := ResolveCoordinates(context.Background(), []domain.Stop{{ID: "x"}}, nil)
	if err != nil || got[0].Location != nil {
		t.Fatalf("nil geocoder: got %v, %v", got, err)
	}
}

func TestResolveCoordinatesPropagatesGeocoderError(t *testing.T) {
	_, err := ResolveCoordinates(context.Background(), []domain.Stop{{ID: "x", Payload: domain.StopPayload{Address: "a"}}}, failingGeocoder{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

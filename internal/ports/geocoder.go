package ports

import (
	"context"
	"delivery-route-planner/internal/domain"
)

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Resolve addresses to points. Addresses that cannot be resolved are
	// absent from the result; a substitute location is never returned.
	Geocode(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
}

// Persistent address -> coordinate cache used by geocoders.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
	PutMany(ctx context.Context, results map[string]domain.GeoPoint) error
}

package ports

import (
	"context"
	"delivery-route-planner/internal/domain"
)

// Port: a boundary for retrieving delivery stops from a data source.
type StopRepository interface {
	// Retrieve all stops available for routing, ordered by id.
	ListStops(ctx context.Context) ([]domain.Stop, error)
	// Retrieve the given stops in request order.
	// Unknown ids fail with *domain.UnknownStopError.
	GetStops(ctx context.Context, ids []string) ([]domain.Stop, error)
}

// Optional extension of StopRepository that persists resolved coordinates.
type StopLocationWriter interface {
	UpdateLocation(ctx context.Context, id string, p domain.GeoPoint) error
}

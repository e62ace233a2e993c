package services

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/obs"
	"delivery-route-planner/internal/ports"
	"fmt"
	"log"
)

// ResolveCoordinates fills in locations for stops that arrive without one.
//
// Stops that already have a location are returned as-is. A stop whose address the
// geocoder cannot resolve keeps a nil location so that PlanRoute fails with
// MissingCoordinateError instead of routing to a guessed point.
// The input slice is not modified.
func ResolveCoordinates(
	ctx context.Context,
	stops []domain.Stop,
	geocoder ports.Geocoder,
) (_ []domain.Stop, err error) {
	out := make([]domain.Stop, len(stops))
	copy(out, stops)

	if geocoder == nil {
		return out, nil
	}

	queries := make([]string, 0)
	seen := make(map[string]struct{})
	for _, s := range out {
		if s.HasLocation() {
			continue
		}
		q := s.GeocodeQuery()
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}

	if len(queries) == 0 {
		return out, nil
	}

	defer obs.Time(ctx, "services.ResolveCoordinates")(&err)

	points, err := geocoder.Geocode(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("resolve coordinates: geocode %d addresses: %w", len(queries), err)
	}

	unresolved := 0
	for i, s := range out {
		if s.HasLocation() {
			continue
		}
		p, ok := points[s.GeocodeQuery()]
		if !ok {
			unresolved++
			continue
		}
		out[i] = s.WithLocation(p)
	}

	if unresolved > 0 {
		log.Printf("req_id=%s op=services.ResolveCoordinates unresolved=%d", obs.RequestID(ctx), unresolved)
	}

	return out, nil
}

package services

import (
	"delivery-route-planner/internal/domain"
	"math"
)

// NearestNeighborOrder builds a visiting order using a greedy nearest-neighbor heuristic.
//
// Starting at the depot, it repeatedly moves to the closest unvisited stop.
// It does not attempt global route optimization; the result seeds TwoOptImprove.
// Equidistant candidates are resolved by the lowest stop ID so the order never
// depends on the input order. Every stop must carry a location.
func NearestNeighborOrder(depot domain.GeoPoint, stops []domain.Stop) []domain.Stop {
	order := make([]domain.Stop, 0, len(stops))
	if len(stops) <= 1 {
		return append(order, stops...)
	}

	remaining := make([]domain.Stop, len(stops))
	copy(remaining, stops)

	current := depot
	for len(remaining) > 0 {
		bestIdx := -1
		minDist := math.Inf(1)

		// Select next stop by minimum great-circle distance (greedy step).
		for i, s := range remaining {
			d := HaversineKm(current, *s.Location)
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if d < minDist || (bestIdx >= 0 && d == minDist && s.ID < remaining[bestIdx].ID) {
				minDist = d
				bestIdx = i
			}
		}

		next := remaining[bestIdx]
		order = append(order, next)
		current = *next.Location

		remaining[bestIdx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return order
}

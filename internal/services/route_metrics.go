package services

import "delivery-route-planner/internal/domain"

// EvaluateRoute walks order from the depot and returns per-stop and aggregate metrics.
//
// Each stop is credited with the leg from the previous location. The closing leg back
// to the depot counts toward the total but is not attributed to any stop.
// Duration = total / average speed + stops * dwell minutes / 60, in hours.
func EvaluateRoute(depot domain.GeoPoint, order []domain.Stop, opts PlannerOptions) domain.RouteMetrics {
	metrics := domain.RouteMetrics{Stops: make([]domain.StopMetrics, 0, len(order))}
	if len(order) == 0 {
		return metrics
	}

	current := depot
	cumulative := 0.0
	for i, s := range order {
		leg := HaversineKm(current, *s.Location)
		cumulative += leg

		metrics.Stops = append(metrics.Stops, domain.StopMetrics{
			StopID:               s.ID,
			Position:             i + 1,
			LegDistanceKm:        leg,
			CumulativeDistanceKm: cumulative,
		})
		current = *s.Location
	}

	metrics.ReturnLegKm = HaversineKm(current, depot)
	metrics.TotalDistanceKm = cumulative + metrics.ReturnLegKm
	metrics.DrivingHours = metrics.TotalDistanceKm / opts.AverageSpeedKmh
	metrics.DwellHours = float64(len(order)) * opts.DwellMinutesPerStop / 60
	metrics.EstimatedDurationHours = metrics.DrivingHours + metrics.DwellHours

	return metrics
}

// RouteDistanceKm returns the closed-tour length depot -> order... -> depot.
func RouteDistanceKm(depot domain.GeoPoint, order []domain.Stop) float64 {
	if len(order) == 0 {
		return 0
	}

	total := 0.0
	current := depot
	for _, s := range order {
		total += HaversineKm(current, *s.Location)
		current = *s.Location
	}
	return total + HaversineKm(current, depot)
}

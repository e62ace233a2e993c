package services

import (
	"delivery-route-planner/internal/domain"
	"fmt"
	"math"
	"strings"
)

// Strategy selects how the planner builds the visiting order.
type Strategy string

const (
	StrategyConstructionOnly     Strategy = "construction_only"
	StrategyConstructionPlus2Opt Strategy = "construction_plus_2opt"
)

const (
	DefaultAverageSpeedKmh     = 40.0
	DefaultDwellMinutesPerStop = 5.0

	// 2-opt has no non-trivial move on fewer stops.
	minStopsForImprovement = 4
)

// ParseStrategy maps a configuration string onto a Strategy. Empty means the default.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.TrimSpace(strings.ToLower(s))) {
	case "":
		return StrategyConstructionPlus2Opt, nil
	case StrategyConstructionOnly:
		return StrategyConstructionOnly, nil
	case StrategyConstructionPlus2Opt:
		return StrategyConstructionPlus2Opt, nil
	}
	return "", &domain.InvalidConfigurationError{
		Field:  "strategy",
		Reason: fmt.Sprintf("must be %q or %q, got %q", StrategyConstructionOnly, StrategyConstructionPlus2Opt, s),
	}
}

// PlannerOptions tunes the route planner for a vehicle type or region.
type PlannerOptions struct {
	Strategy            Strategy
	AverageSpeedKmh     float64
	DwellMinutesPerStop float64
}

func DefaultPlannerOptions() PlannerOptions {
	return PlannerOptions{
		Strategy:            StrategyConstructionPlus2Opt,
		AverageSpeedKmh:     DefaultAverageSpeedKmh,
		DwellMinutesPerStop: DefaultDwellMinutesPerStop,
	}
}

func (o PlannerOptions) Validate() error {
	if _, err := ParseStrategy(string(o.Strategy)); err != nil {
		return err
	}
	if math.IsNaN(o.AverageSpeedKmh) || math.IsInf(o.AverageSpeedKmh, 0) || o.AverageSpeedKmh <= 0 {
		return &domain.InvalidConfigurationError{
			Field:  "average_speed_kmh",
			Reason: fmt.Sprintf("must be a positive number, got %v", o.AverageSpeedKmh),
		}
	}
	if math.IsNaN(o.DwellMinutesPerStop) || math.IsInf(o.DwellMinutesPerStop, 0) || o.DwellMinutesPerStop < 0 {
		return &domain.InvalidConfigurationError{
			Field:  "dwell_minutes_per_stop",
			Reason: fmt.Sprintf("must be a non-negative number, got %v", o.DwellMinutesPerStop),
		}
	}
	return nil
}

// PlanRoute orders stops for a round trip from depot and reports route metrics.
//
// All input is validated before any computation: options, duplicate stop IDs,
// unresolved locations (MissingCoordinateError) and out-of-range coordinates.
// The planner performs no I/O and returns the same plan for the same input.
func PlanRoute(depot domain.GeoPoint, stops []domain.Stop, opts PlannerOptions) (*domain.RoutePlan, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}
	strategy, _ := ParseStrategy(string(opts.Strategy))
	opts.Strategy = strategy

	if err := depot.Validate(); err != nil {
		return nil, fmt.Errorf("plan route: %w", &domain.InvalidCoordinateError{StopID: "depot", Point: depot, Reason: err.Error()})
	}

	if err := validateStops(stops); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	order := NearestNeighborOrder(depot, stops)
	if strategy == StrategyConstructionPlus2Opt && len(order) >= minStopsForImprovement {
		order = TwoOptImprove(depot, order)
	}

	return &domain.RoutePlan{
		Depot:    depot,
		Strategy: string(strategy),
		Stops:    order,
		Metrics:  EvaluateRoute(depot, order, opts),
	}, nil
}

func validateStops(stops []domain.Stop) error {
	seen := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		if _, ok := seen[s.ID]; ok {
			return &domain.DuplicateStopError{StopID: s.ID}
		}
		seen[s.ID] = struct{}{}
	}

	for _, s := range stops {
		if s.Location == nil {
			return &domain.MissingCoordinateError{StopID: s.ID}
		}
	}

	for _, s := range stops {
		if err := s.Location.Validate(); err != nil {
			return &domain.InvalidCoordinateError{StopID: s.ID, Point: *s.Location, Reason: err.Error()}
		}
	}

	return nil
}

package domain

// Per-stop metrics for a planned route.
// LegDistanceKm is measured from the previous location (the depot for the first stop).
type StopMetrics struct {
	StopID               string
	Position             int
	LegDistanceKm        float64
	CumulativeDistanceKm float64
}

// Summary of an ordered route that starts and ends at the depot.
// TotalDistanceKm includes ReturnLegKm, which is not attributed to any stop.
type RouteMetrics struct {
	Stops                  []StopMetrics
	ReturnLegKm            float64
	TotalDistanceKm        float64
	DrivingHours           float64
	DwellHours             float64
	EstimatedDurationHours float64
}

// Represents the planned visiting order for one depot.
// A RoutePlan is the output of the routing engine; Stops is a permutation
// of the input stops and carries their payloads unchanged.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	Depot    GeoPoint
	Strategy string
	Stops    []Stop
	Metrics  RouteMetrics
}

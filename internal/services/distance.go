package services

import (
	"delivery-route-planner/internal/domain"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by the great-circle model.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in kilometers.
// It is symmetric and total over real inputs; range checks happen upstream.
func HaversineKm(a, b domain.GeoPoint) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*sinLon*sinLon
	// Rounding can push h marginally outside [0, 1] for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// distanceMatrix precomputes pairwise distances for points; index 0 is the depot.
func distanceMatrix(points []domain.GeoPoint) [][]float64 {
	n := len(points)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := HaversineKm(points[i], points[j])
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m
}

// tourPoints lays out the depot followed by each stop's location.
func tourPoints(depot domain.GeoPoint, order []domain.Stop) []domain.GeoPoint {
	points := make([]domain.GeoPoint, 0, 1+len(order))
	points = append(points, depot)
	for _, s := range order {
		points = append(points, *s.Location)
	}
	return points
}

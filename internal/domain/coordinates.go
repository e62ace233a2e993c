package domain

import (
	"fmt"
	"math"
)

// Immutable geographic point in signed decimal degrees.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Validate reports whether the point lies inside the valid latitude/longitude ranges.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v outside [-90, 90]", p.Lat)
	}
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %v outside [-180, 180]", p.Lon)
	}
	return nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.6f,%.6f)", p.Lat, p.Lon)
}

package geocoding

import (
	"context"
	"delivery-route-planner/internal/domain"
	"sync"
)

// StaticGeocoder resolves addresses from a fixed table.
// It is used for tests and offline runs where no geocoding service is configured.
type StaticGeocoder struct {
	mu     sync.Mutex
	points map[string]domain.GeoPoint
	calls  int
}

func NewStaticGeocoder(points map[string]domain.GeoPoint) *StaticGeocoder {
	m := make(map[string]domain.GeoPoint, len(points))
	for k, v := range points {
		m[Normalize(k)] = v
	}
	return &StaticGeocoder{points: m}
}

func (g *StaticGeocoder) Geocode(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++

	out := make(map[string]domain.GeoPoint, len(addresses))
	for _, a := range addresses {
		if p, ok := g.points[Normalize(a)]; ok {
			out[a] = p
		}
	}
	return out, nil
}

// Calls reports how many times Geocode has been invoked.
func (g *StaticGeocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

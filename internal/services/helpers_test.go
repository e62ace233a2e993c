package services

import (
	"delivery-route-planner/internal/domain"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"testing"
)

const tolKm = 1e-9

func stopAt(id string, lat, lon float64) domain.Stop {
	return domain.Stop{ID: id, Location: &domain.GeoPoint{Lat: lat, Lon: lon}}
}

func stopIDs(stops []domain.Stop) []string {
	ids := make([]string, 0, len(stops))
	for _, s := range stops {
		ids = append(ids, s.ID)
	}
	return ids
}

func assertOrder(t *testing.T, got []domain.Stop, want ...string) {
	t.Helper()
	ids := stopIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

// assertPermutation checks that got holds exactly the ids of want, each once.
func assertPermutation(t *testing.T, got, want []domain.Stop) {
	t.Helper()
	g := stopIDs(got)
	w := stopIDs(want)
	sort.Strings(g)
	sort.Strings(w)
	if len(g) != len(w) {
		t.Fatalf("len = %d, want %d", len(g), len(w))
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("ids = %v, want permutation of %v", g, w)
		}
	}
}

func randomStops(rng *rand.Rand, n int) []domain.Stop {
	stops := make([]domain.Stop, 0, n)
	for i := 0; i < n; i++ {
		stops = append(stops, stopAt("s"+strconv.Itoa(i), 33+rng.Float64(), -112+rng.Float64()))
	}
	return stops
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// segmentsCross treats lat/lon as planar coordinates; fine for small test regions.
func segmentsCross(p1, p2, p3, p4 domain.GeoPoint) bool {
	ccw := func(a, b, c domain.GeoPoint) bool {
		return (c.Lon-a.Lon)*(b.Lat-a.Lat) > (b.Lon-a.Lon)*(c.Lat-a.Lat)
	}
	return ccw(p1, p3, p4) != ccw(p2, p3, p4) && ccw(p1, p2, p3) != ccw(p1, p2, p4)
}

func tourCrosses(depot domain.GeoPoint, order []domain.Stop) bool {
	pts := tourPoints(depot, order)
	pts = append(pts, depot)
	m := len(pts) - 1
	for i := 0; i < m; i++ {
		for j := i + 2; j < m; j++ {
			if i == 0 && j == m-1 {
				continue
			}
			if segmentsCross(pts[i], pts[i+1], pts[j], pts[j+1]) {
				return true
			}
		}
	}
	return false
}

package services

import "delivery-route-planner/internal/domain"

// improvementEpsilonKm is the minimum gain, in kilometers, for a 2-opt move to be accepted.
const improvementEpsilonKm = 1e-9

// TwoOptImprove refines a visiting order with first-improvement 2-opt.
//
// The route is treated as a closed cycle depot -> order... -> depot. For every pair of
// edges (a,b) and (c,d) it reverses the segment b..c when
// dist(a,c) + dist(b,d) < dist(a,b) + dist(c,d), and repeats full passes until a pass
// finds no improving move. The result is never longer than the input.
//
// The input slice is not modified; a new slice is returned.
func TwoOptImprove(depot domain.GeoPoint, order []domain.Stop) []domain.Stop {
	out := make([]domain.Stop, len(order))
	copy(out, order)

	n := len(out)
	if n < 3 {
		return out
	}

	// Tour positions: 0 is the depot, 1..n are stops. idx maps position -> matrix index
	// so reversals only shuffle integers.
	dist := distanceMatrix(tourPoints(depot, out))
	idx := make([]int, n+1)
	for p := range idx {
		idx[p] = p
	}

	improved := true
	for improved {
		improved = false
		for i := 0; i < n-1; i++ {
			for j := i + 2; j <= n; j++ {
				// Edges (0,1) and (n,0) share the depot; reversing 1..n only flips direction.
				if i == 0 && j == n {
					continue
				}

				a, b := idx[i], idx[i+1]
				c, d := idx[j], idx[(j+1)%(n+1)]

				delta := dist[a][c] + dist[b][d] - dist[a][b] - dist[c][d]
				if delta < -improvementEpsilonKm {
					reverse(idx, i+1, j)
					improved = true
				}
			}
		}
	}

	result := make([]domain.Stop, n)
	for p := 1; p <= n; p++ {
		result[p-1] = out[idx[p]-1]
	}
	return result
}

// reverse flips s[i..j] in place.
func reverse(s []int, i, j int) {
	for i < j {
		s[i], s[j] = s[j], s[i]
		i++
		j--
	}
}

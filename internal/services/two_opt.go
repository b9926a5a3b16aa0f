package services

import (
	"meal-delivery-service/internal/domain"
	"slices"
)

// twoOptOpenPath runs deterministic first-improvement 2-opt on an open path
// anchored at depot.
//
// The path is depot, points[order[0]], ..., points[order[n-1]]. Reversing the
// segment order[i..k] replaces arcs (a,b) and (c,d) by (a,c) and (b,d), where
// a precedes b=order[i] and d follows c=order[k]. When k is the last position
// there is no d and only the arc into the segment changes. A move is applied
// when it shortens the path by more than eps; the scan restarts after each
// applied move, up to maxPasses moves (0 means until a local optimum).
func twoOptOpenPath(depot domain.Coordinates, points []domain.Coordinates, order []int, maxPasses int, eps float64) []int {
	n := len(order)
	cur := make([]int, n)
	copy(cur, order)
	if n < 2 {
		return cur
	}
	if eps < 0 {
		eps = 0
	}

	at := func(pos int) domain.Coordinates {
		if pos < 0 {
			return depot
		}
		return points[cur[pos]]
	}

	applied := 0
	for maxPasses <= 0 || applied < maxPasses {
		improved := false

	scan:
		for i := 0; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				a, b, c := at(i-1), at(i), at(k)

				delta := planarDistance(a, c) - planarDistance(a, b)
				if k < n-1 {
					d := at(k + 1)
					delta += planarDistance(b, d) - planarDistance(c, d)
				}

				if delta < -eps {
					slices.Reverse(cur[i : k+1])
					applied++
					improved = true
					break scan
				}
			}
		}

		if !improved {
			break
		}
	}

	return cur
}

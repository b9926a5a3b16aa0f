package services

import (
	"math"
	"meal-delivery-service/internal/domain"
)

// RouteOptions tunes OptimizeRoute.
type RouteOptions struct {
	// TwoOpt enables the 2-opt improvement pass after nearest-neighbor construction.
	TwoOpt bool
	// MaxPasses bounds the number of improving moves of the 2-opt pass; 0 means unbounded.
	MaxPasses int
	// Eps is the minimum gain for a 2-opt move to be accepted.
	Eps float64
}

// DefaultRouteOptions enables a bounded 2-opt pass.
func DefaultRouteOptions() RouteOptions {
	return RouteOptions{TwoOpt: true, MaxPasses: 1000, Eps: 1e-12}
}

// OptimizeRoute returns the stop ids in an order approximating the shortest
// open path starting at depot and visiting every stop once.
//
// Distances are planar Euclidean on raw latitude/longitude, which is close
// enough over the extent of a delivery route. The path is built greedily by
// nearest neighbor from the depot, ties going to the stop listed first, then
// optionally improved by 2-opt. The depot is not part of the result. Stops
// without coordinates are ignored. Identical input yields identical output.
func OptimizeRoute(depot domain.Coordinates, stops []domain.RouteWaypoint, opts RouteOptions) []int {
	points := make([]domain.Coordinates, 0, len(stops))
	ids := make([]int, 0, len(stops))
	for _, s := range stops {
		if s.Coordinates == nil {
			continue
		}
		points = append(points, *s.Coordinates)
		ids = append(ids, s.StopID)
	}

	order := nearestNeighborOrder(depot, points)
	if opts.TwoOpt {
		order = twoOptOpenPath(depot, points, order, opts.MaxPasses, opts.Eps)
	}

	out := make([]int, 0, len(order))
	for _, i := range order {
		out = append(out, ids[i])
	}
	return out
}

// nearestNeighborOrder returns indexes of points, greedily picking the
// closest unvisited point from the current position.
func nearestNeighborOrder(depot domain.Coordinates, points []domain.Coordinates) []int {
	visited := make([]bool, len(points))
	order := make([]int, 0, len(points))
	current := depot

	for len(order) < len(points) {
		best := -1
		minDist := math.Inf(1)

		// Strict comparison keeps the first listed point on ties.
		for i, p := range points {
			if visited[i] {
				continue
			}
			if d := planarDistance(current, p); d < minDist {
				minDist = d
				best = i
			}
		}

		visited[best] = true
		order = append(order, best)
		current = points[best]
	}

	return order
}

// PathLength returns the length of the open path from depot through stops
// taken in the order of stopIDs. Unknown ids and stops without coordinates
// are skipped.
func PathLength(depot domain.Coordinates, stops []domain.RouteWaypoint, stopIDs []int) float64 {
	byID := make(map[int]domain.Coordinates, len(stops))
	for _, s := range stops {
		if s.Coordinates != nil {
			byID[s.StopID] = *s.Coordinates
		}
	}

	total := 0.0
	current := depot
	for _, id := range stopIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		total += planarDistance(current, p)
		current = p
	}
	return total
}

func planarDistance(a, b domain.Coordinates) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lon-b.Lon)
}

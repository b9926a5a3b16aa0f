package services

import (
	"math/rand"
	"meal-delivery-service/internal/domain"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var origin = domain.Coordinates{}

func TestOptimizeRouteNearestNeighbor(t *testing.T) {
	stops := []domain.RouteWaypoint{
		{StopID: 3, Coordinates: pt(0, 10)},
		{StopID: 1, Coordinates: pt(0, 1)},
		{StopID: 2, Coordinates: pt(0, 2)},
	}

	for _, twoOpt := range []bool{false, true} {
		got := OptimizeRoute(origin, stops, RouteOptions{TwoOpt: twoOpt})
		if !slices.Equal(got, []int{1, 2, 3}) {
			t.Fatalf("order (two-opt=%v) = %v, want [1 2 3]", twoOpt, got)
		}
	}
}

func TestOptimizeRouteEdgeCases(t *testing.T) {
	assert.Empty(t, OptimizeRoute(origin, nil, DefaultRouteOptions()))

	one := []domain.RouteWaypoint{{StopID: 7, Coordinates: pt(4, 4)}}
	assert.Equal(t, []int{7}, OptimizeRoute(origin, one, DefaultRouteOptions()))

	unlocated := []domain.RouteWaypoint{
		{StopID: 1, Coordinates: pt(1, 1)},
		{StopID: 2},
	}
	assert.Equal(t, []int{1}, OptimizeRoute(origin, unlocated, DefaultRouteOptions()))
}

func TestOptimizeRouteTieGoesToFirstListed(t *testing.T) {
	stops := []domain.RouteWaypoint{
		{StopID: 9, Coordinates: pt(0, 1)},
		{StopID: 4, Coordinates: pt(1, 0)},
	}

	got := OptimizeRoute(origin, stops, RouteOptions{})
	assert.Equal(t, []int{9, 4}, got)
}

func TestOptimizeRouteTwoOptNeverLonger(t *testing.T) {
	stops := []domain.RouteWaypoint{
		{StopID: 1, Coordinates: pt(0, 1)},
		{StopID: 2, Coordinates: pt(0, 2.1)},
		{StopID: 3, Coordinates: pt(3, 1)},
		{StopID: 4, Coordinates: pt(3, 3)},
	}

	nn := OptimizeRoute(origin, stops, RouteOptions{})
	improved := OptimizeRoute(origin, stops, DefaultRouteOptions())

	assert.LessOrEqual(t, PathLength(origin, stops, improved), PathLength(origin, stops, nn))
	assert.ElementsMatch(t, nn, improved)
}

func TestOptimizeRouteProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		n := 1 + rng.Intn(30)
		stops := make([]domain.RouteWaypoint, 0, n)
		want := make([]int, 0, n)
		for i := 0; i < n; i++ {
			stops = append(stops, domain.RouteWaypoint{
				StopID:      100 + i,
				Coordinates: pt(45.4+rng.Float64()*0.2, -73.7+rng.Float64()*0.2),
			})
			want = append(want, 100+i)
		}
		depot := domain.Coordinates{Lat: 45.516564, Lon: -73.575145}

		nn := OptimizeRoute(depot, stops, RouteOptions{})
		got := OptimizeRoute(depot, stops, DefaultRouteOptions())
		again := OptimizeRoute(depot, stops, DefaultRouteOptions())

		require.ElementsMatch(t, want, got, "run %d: result is a permutation of the stops", run)
		require.Equal(t, got, again, "run %d: result is deterministic", run)
		require.LessOrEqual(t, PathLength(depot, stops, got), PathLength(depot, stops, nn)+1e-9, "run %d", run)
	}
}

func TestTwoOptBoundedByMaxPasses(t *testing.T) {
	points := []domain.Coordinates{{Lat: 0, Lon: 3}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}}
	order := []int{0, 1, 2}

	unchanged := twoOptOpenPath(origin, points, order, 0, 1e9)
	assert.Equal(t, order, unchanged, "no move beats a huge eps")

	oneMove := twoOptOpenPath(origin, points, order, 1, 0)
	assert.Equal(t, []int{1, 0, 2}, oneMove)

	best := twoOptOpenPath(origin, points, order, 0, 0)
	assert.Equal(t, []int{1, 2, 0}, best)
	assert.Less(t, pathOf(points, best), pathOf(points, oneMove))
	assert.Equal(t, []int{0, 1, 2}, order, "input order is not modified")
}

func TestPathLength(t *testing.T) {
	stops := []domain.RouteWaypoint{
		{StopID: 1, Coordinates: pt(3, 4)},
		{StopID: 2, Coordinates: pt(3, 0)},
		{StopID: 3},
	}

	assert.InDelta(t, 9.0, PathLength(origin, stops, []int{1, 2, 3, 42}), 1e-12)
	assert.Zero(t, PathLength(origin, stops, nil))
}

func pathOf(points []domain.Coordinates, order []int) float64 {
	total, cur := 0.0, origin
	for _, i := range order {
		total += planarDistance(cur, points[i])
		cur = points[i]
	}
	return total
}

package services

import (
	"context"
	"meal-delivery-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routeDate = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func newTestPlanner() (*RoutePlanner, *fakeOrders, *fakeSequences) {
	orders := &fakeOrders{
		stops: map[int][]domain.RouteWaypoint{
			1: {
				{StopID: 3, Member: "Cote, Ma.", Coordinates: pt(0, 10)},
				{StopID: 1, Member: "Abel, Jo.", Coordinates: pt(0, 1)},
				{StopID: 2, Member: "Brun, Al.", Coordinates: pt(0, 2)},
			},
		},
		clients: map[int][]domain.RouteWaypoint{
			1: {
				{StopID: 3, Coordinates: pt(0, 10)},
				{StopID: 1, Coordinates: pt(0, 1)},
				{StopID: 2, Coordinates: pt(0, 2)},
				{StopID: 4, Address: "1 Rue   Sainte-Catherine"},
			},
		},
		deliveries: map[int][]domain.RouteDelivery{
			1: {
				{ClientID: 1, DeliveryItems: []domain.DeliveryItem{{ComponentGroup: domain.GroupMainDish, Size: domain.SizeRegular, TotalQuantity: 1}}},
				{ClientID: 2, DeliveryItems: []domain.DeliveryItem{{ComponentGroup: domain.GroupMainDish, Size: domain.SizeLarge, TotalQuantity: 1}}},
			},
		},
	}
	sequences := &fakeSequences{routes: map[int]*domain.Route{
		1: {RouteID: 1, Name: "Centre", ClientIDSequence: []int{2, 3}},
	}}

	return &RoutePlanner{
		Orders:    orders,
		Sequences: sequences,
		Options:   DefaultRouteOptions(),
	}, orders, sequences
}

func waypointIDs(ws []domain.RouteWaypoint) []int {
	out := make([]int, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.StopID)
	}
	return out
}

func TestRoutePlannerWaypointsEuclidean(t *testing.T) {
	planner, _, _ := newTestPlanner()

	got, err := planner.Waypoints(context.Background(), 1, routeDate, ModeEuclidean)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, waypointIDs(got))
	assert.InDelta(t, 1.0, got[0].Distance, 1e-12)
	assert.InDelta(t, 1.0, got[1].Distance, 1e-12)
	assert.InDelta(t, 8.0, got[2].Distance, 1e-12)
}

func TestRoutePlannerWaypointsRetrieve(t *testing.T) {
	planner, _, _ := newTestPlanner()

	got, err := planner.Waypoints(context.Background(), 1, routeDate, ModeRetrieve)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, waypointIDs(got))
}

func TestRoutePlannerWaypointsUnknownMode(t *testing.T) {
	planner, _, _ := newTestPlanner()

	_, err := planner.Waypoints(context.Background(), 1, routeDate, "fastest")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestRoutePlannerWaypointsUsesCache(t *testing.T) {
	planner, _, _ := newTestPlanner()
	cache := &fakeRouteCache{}
	planner.Cache = cache

	first, err := planner.Waypoints(context.Background(), 1, routeDate, ModeEuclidean)
	require.NoError(t, err)
	second, err := planner.Waypoints(context.Background(), 1, routeDate, ModeEuclidean)
	require.NoError(t, err)

	assert.Equal(t, waypointIDs(first), waypointIDs(second))
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.puts)
}

func TestRoutePlannerOptimizedSequenceGeocodes(t *testing.T) {
	planner, _, _ := newTestPlanner()
	geocoder := &fakeGeocoder{coords: map[string]domain.Coordinates{
		"1 Rue Sainte-Catherine": {Lat: 0, Lon: 1.5},
	}}
	planner.Geocoder = geocoder

	got, err := planner.OptimizedSequence(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"1 Rue Sainte-Catherine"}, geocoder.asked)
	assert.Equal(t, []int{1, 4, 2, 3}, got)
}

func TestRoutePlannerOptimizedSequenceSkipsUnlocated(t *testing.T) {
	planner, _, _ := newTestPlanner()

	got, err := planner.OptimizedSequence(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestRoutePlannerSaveRouteSequence(t *testing.T) {
	planner, _, sequences := newTestPlanner()
	ctx := context.Background()

	require.NoError(t, planner.SaveRouteSequence(ctx, 1, []int{3, 1}))
	assert.Equal(t, []int{3, 1}, sequences.routes[1].ClientIDSequence)

	assert.ErrorIs(t, planner.SaveRouteSequence(ctx, 1, []int{3, 3}), ErrInvalidSequence)
	assert.ErrorIs(t, planner.SaveRouteSequence(ctx, 99, []int{1}), domain.ErrNotFound)
}

func TestRoutePlannerClientsOnRoute(t *testing.T) {
	planner, _, _ := newTestPlanner()

	got, err := planner.ClientsOnRoute(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, []int{2, 3, 1, 4}, waypointIDs(Items(got)))
	assert.True(t, got[0].HasBeenConfigured)
	assert.False(t, got[2].HasBeenConfigured)
}

func TestRoutePlannerClientsOnDeliveryHistory(t *testing.T) {
	planner, _, _ := newTestPlanner()
	ctx := context.Background()

	require.NoError(t, planner.SaveDeliverySequence(ctx, 1, routeDate, []int{1, 42}))

	got, stale, err := planner.ClientsOnDeliveryHistory(ctx, 1, routeDate)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, waypointIDs(Items(got)))
	assert.True(t, got[0].HasBeenConfigured)
	assert.False(t, got[1].HasBeenConfigured)
	assert.Equal(t, []int{42}, stale)

	got, stale, err = planner.ClientsOnDeliveryHistory(ctx, 1, routeDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, waypointIDs(Items(got)))
	assert.Empty(t, stale)
}

func TestRoutePlannerRouteSheet(t *testing.T) {
	planner, _, _ := newTestPlanner()

	sheet, err := planner.RouteSheet(context.Background(), 1, routeDate)
	require.NoError(t, err)

	assert.Equal(t, "Centre", sheet.RouteName)
	assert.Equal(t, []domain.RouteSummaryLine{
		{ComponentGroup: domain.GroupMainDish, RegularQty: 1, LargeQty: 1},
	}, sheet.Summary)
	require.Len(t, sheet.Deliveries, 2)
	assert.Equal(t, 2, sheet.Deliveries[0].ClientID)
	assert.Equal(t, 1, sheet.Deliveries[1].ClientID)
}

func TestRouteFingerprint(t *testing.T) {
	stops := []domain.RouteWaypoint{{StopID: 1, Coordinates: pt(1, 2)}, {StopID: 2}}
	opts := DefaultRouteOptions()

	key := RouteFingerprint(origin, stops, opts)
	assert.Equal(t, key, RouteFingerprint(origin, stops, opts))
	assert.Equal(t, key, RouteFingerprint(origin, stops[:1], opts), "unlocated stops are ignored")
	assert.NotEqual(t, key, RouteFingerprint(domain.Coordinates{Lat: 1}, stops, opts))

	moved := []domain.RouteWaypoint{{StopID: 1, Coordinates: pt(1, 2.5)}}
	assert.NotEqual(t, key, RouteFingerprint(origin, moved, opts))
}

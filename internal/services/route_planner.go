package services

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"
	"meal-delivery-service/internal/ports"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	ModeEuclidean = "euclidean"
	ModeRetrieve  = "retrieve"
)

var (
	ErrUnknownMode     = errors.New("unknown waypoint mode")
	ErrInvalidSequence = errors.New("invalid sequence")
)

// Delivery sheet of one route for a day.
type RouteSheet struct {
	RouteID    int
	RouteName  string
	Date       time.Time
	Summary    []domain.RouteSummaryLine
	Deliveries []domain.RouteDelivery
}

// RoutePlanner orders the clients of a route, either by minimizing the
// euclidean path from the depot or by following a saved sequence.
//
// Geocoder and Cache are optional.
type RoutePlanner struct {
	Orders    ports.OrderRepository
	Sequences ports.SequenceStore
	Geocoder  ports.Geocoder
	Cache     ports.RouteCache

	Depot    domain.Coordinates
	Options  RouteOptions
	CacheTTL time.Duration
}

// Waypoints returns the stops of the clients having an order on route for date.
//
// In euclidean mode the stops are optimized from the depot and stops that
// could not be located are left out. In retrieve mode every stop is returned,
// following the route's saved sequence.
func (p *RoutePlanner) Waypoints(ctx context.Context, routeID int, date time.Time, mode string) (_ []domain.RouteWaypoint, err error) {
	defer obs.Time(ctx, "route_waypoints")(&err)

	if mode != ModeEuclidean && mode != ModeRetrieve {
		return nil, fmt.Errorf("waypoints: %w: %q", ErrUnknownMode, mode)
	}

	stops, err := p.Orders.RouteStops(ctx, routeID, date)
	if err != nil {
		return nil, fmt.Errorf("waypoints: list stops of route %d: %w", routeID, err)
	}

	stops, err = p.locate(ctx, stops)
	if err != nil {
		return nil, fmt.Errorf("waypoints: %w", err)
	}

	if mode == ModeEuclidean {
		order, err := p.optimize(ctx, stops)
		if err != nil {
			return nil, fmt.Errorf("waypoints: %w", err)
		}
		return withLegDistances(p.Depot, byStopID(stops, order)), nil
	}

	route, err := p.Sequences.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("waypoints: get route %d: %w", routeID, err)
	}

	ordered := Items(SortBySequence(stops, stopID, route.ClientIDSequence))
	return withLegDistances(p.Depot, ordered), nil
}

// OptimizedSequence returns the ids of every client of route in optimized
// euclidean order, whether or not they have an order today.
func (p *RoutePlanner) OptimizedSequence(ctx context.Context, routeID int) (_ []int, err error) {
	defer obs.Time(ctx, "route_optimized_sequence")(&err)

	clients, err := p.Orders.RouteClients(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("optimized sequence: list clients of route %d: %w", routeID, err)
	}

	clients, err = p.locate(ctx, clients)
	if err != nil {
		return nil, fmt.Errorf("optimized sequence: %w", err)
	}

	order, err := p.optimize(ctx, clients)
	if err != nil {
		return nil, fmt.Errorf("optimized sequence: %w", err)
	}
	return order, nil
}

// SaveRouteSequence stores the default visiting order of route.
func (p *RoutePlanner) SaveRouteSequence(ctx context.Context, routeID int, clientIDs []int) (err error) {
	defer obs.Time(ctx, "route_save_sequence")(&err)

	if err := validateSequence(clientIDs); err != nil {
		return fmt.Errorf("save route sequence: %w", err)
	}
	if _, err := p.Sequences.GetRoute(ctx, routeID); err != nil {
		return fmt.Errorf("save route sequence: get route %d: %w", routeID, err)
	}
	if err := p.Sequences.SaveRouteSequence(ctx, routeID, clientIDs); err != nil {
		return fmt.Errorf("save route sequence: route %d: %w", routeID, err)
	}
	return nil
}

// SaveDeliverySequence stores the visiting order used on route for date.
func (p *RoutePlanner) SaveDeliverySequence(ctx context.Context, routeID int, date time.Time, clientIDs []int) (err error) {
	defer obs.Time(ctx, "route_save_delivery_sequence")(&err)

	if err := validateSequence(clientIDs); err != nil {
		return fmt.Errorf("save delivery sequence: %w", err)
	}
	if _, err := p.Sequences.GetRoute(ctx, routeID); err != nil {
		return fmt.Errorf("save delivery sequence: get route %d: %w", routeID, err)
	}
	if err := p.Sequences.SaveDeliverySequence(ctx, routeID, date, clientIDs); err != nil {
		return fmt.Errorf("save delivery sequence: route %d: %w", routeID, err)
	}
	return nil
}

// ClientsOnRoute returns every client of route following its saved sequence.
func (p *RoutePlanner) ClientsOnRoute(ctx context.Context, routeID int) (_ []Sequenced[domain.RouteWaypoint], err error) {
	defer obs.Time(ctx, "route_clients")(&err)

	route, err := p.Sequences.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("clients on route: get route %d: %w", routeID, err)
	}

	clients, err := p.Orders.RouteClients(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("clients on route: list clients of route %d: %w", routeID, err)
	}

	return SortBySequence(clients, stopID, route.ClientIDSequence), nil
}

// ClientsOnDeliveryHistory returns the clients delivered on route for date,
// following the sequence saved for that day, then the route's default
// sequence. Ids of the day's sequence matching no delivered client are
// returned in stale.
func (p *RoutePlanner) ClientsOnDeliveryHistory(
	ctx context.Context,
	routeID int,
	date time.Time,
) (_ []Sequenced[domain.RouteWaypoint], stale []int, err error) {
	defer obs.Time(ctx, "route_delivery_history")(&err)

	route, err := p.Sequences.GetRoute(ctx, routeID)
	if err != nil {
		return nil, nil, fmt.Errorf("delivery history: get route %d: %w", routeID, err)
	}

	stops, err := p.Orders.RouteStops(ctx, routeID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("delivery history: list stops of route %d: %w", routeID, err)
	}

	daySeq, err := p.daySequence(ctx, routeID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("delivery history: %w", err)
	}

	seq, stale := ReconcileDeliverySequence(stops, stopID, daySeq, route.ClientIDSequence)
	p.warnStale(ctx, routeID, date, stale)
	return seq, stale, nil
}

// RouteSheet returns what to load and whom to visit on route for date.
func (p *RoutePlanner) RouteSheet(ctx context.Context, routeID int, date time.Time) (_ *RouteSheet, err error) {
	defer obs.Time(ctx, "route_sheet")(&err)

	route, err := p.Sequences.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("route sheet: get route %d: %w", routeID, err)
	}

	deliveries, err := p.Orders.RouteDeliveries(ctx, routeID, date)
	if err != nil {
		return nil, fmt.Errorf("route sheet: list deliveries of route %d: %w", routeID, err)
	}

	daySeq, err := p.daySequence(ctx, routeID, date)
	if err != nil {
		return nil, fmt.Errorf("route sheet: %w", err)
	}

	seq, stale := ReconcileDeliverySequence(
		deliveries,
		func(d domain.RouteDelivery) int { return d.ClientID },
		daySeq,
		route.ClientIDSequence,
	)
	p.warnStale(ctx, routeID, date, stale)

	return &RouteSheet{
		RouteID:    route.RouteID,
		RouteName:  route.Name,
		Date:       date,
		Summary:    MakeRouteSheetLines(deliveries),
		Deliveries: Items(seq),
	}, nil
}

func (p *RoutePlanner) daySequence(ctx context.Context, routeID int, date time.Time) ([]int, error) {
	hist, ok, err := p.Sequences.GetDeliveryHistory(ctx, routeID, date)
	if err != nil {
		return nil, fmt.Errorf("get delivery history of route %d: %w", routeID, err)
	}
	if !ok {
		return nil, nil
	}
	return hist.ClientIDSequence, nil
}

func (p *RoutePlanner) warnStale(ctx context.Context, routeID int, date time.Time, stale []int) {
	if len(stale) == 0 {
		return
	}
	reqID := obs.RequestID(ctx)
	log.Printf(
		"req_id=%s op=reconcile_sequence route_id=%d date=%s stale_client_ids=%v",
		reqID, routeID, date.Format(time.DateOnly), stale,
	)
	obs.StaleSequenceIDsTotal.Add(float64(len(stale)))
}

// locate fills missing coordinates through the geocoder.
// Stops that cannot be resolved keep nil coordinates.
func (p *RoutePlanner) locate(ctx context.Context, stops []domain.RouteWaypoint) ([]domain.RouteWaypoint, error) {
	if p.Geocoder == nil {
		return stops, nil
	}

	addresses := make([]string, 0)
	for _, s := range stops {
		if s.Coordinates == nil && domain.NormalizeAddress(s.Address) != "" {
			addresses = append(addresses, domain.NormalizeAddress(s.Address))
		}
	}
	if len(addresses) == 0 {
		return stops, nil
	}

	found, err := p.Geocoder.Geocode(ctx, addresses)
	if err != nil {
		return nil, fmt.Errorf("geocode %d addresses: %w", len(addresses), err)
	}

	out := make([]domain.RouteWaypoint, len(stops))
	for i, s := range stops {
		if s.Coordinates == nil {
			if c, ok := found[domain.NormalizeAddress(s.Address)]; ok {
				s.Coordinates = &c
			}
		}
		out[i] = s
	}
	return out, nil
}

// optimize returns the optimized stop ids, going through the route cache
// when one is configured. Cache failures only cost a recomputation.
func (p *RoutePlanner) optimize(ctx context.Context, stops []domain.RouteWaypoint) ([]int, error) {
	if p.Cache == nil {
		obs.RouteOptimizationsTotal.WithLabelValues("computed").Inc()
		return OptimizeRoute(p.Depot, stops, p.Options), nil
	}

	key := RouteFingerprint(p.Depot, stops, p.Options)
	reqID := obs.RequestID(ctx)

	cached, ok, err := p.Cache.GetSequence(ctx, key)
	if err != nil {
		log.Printf("req_id=%s op=route_cache_get key=%s err=%v", reqID, key, err)
	} else if ok {
		obs.RouteOptimizationsTotal.WithLabelValues("cache").Inc()
		return cached, nil
	}

	order := OptimizeRoute(p.Depot, stops, p.Options)
	obs.RouteOptimizationsTotal.WithLabelValues("computed").Inc()

	if err := p.Cache.PutSequence(ctx, key, order, p.CacheTTL); err != nil {
		log.Printf("req_id=%s op=route_cache_put key=%s err=%v", reqID, key, err)
	}
	return order, nil
}

// RouteFingerprint identifies an optimization input: the depot, the located
// stops in input order and the options. Stops without coordinates do not
// take part in the optimization and are not hashed.
func RouteFingerprint(depot domain.Coordinates, stops []domain.RouteWaypoint, opts RouteOptions) string {
	d := xxhash.New()
	var buf [8]byte

	putFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	putInt := func(i int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		_, _ = d.Write(buf[:])
	}

	putFloat(depot.Lat)
	putFloat(depot.Lon)
	if opts.TwoOpt {
		putInt(1)
	} else {
		putInt(0)
	}
	putInt(int64(opts.MaxPasses))
	putFloat(opts.Eps)

	for _, s := range stops {
		if s.Coordinates == nil {
			continue
		}
		putInt(int64(s.StopID))
		putFloat(s.Coordinates.Lat)
		putFloat(s.Coordinates.Lon)
	}

	return "route:" + strconv.FormatUint(d.Sum64(), 16)
}

func validateSequence(clientIDs []int) error {
	seen := make(map[int]struct{}, len(clientIDs))
	for _, id := range clientIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: client %d listed twice", ErrInvalidSequence, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func stopID(w domain.RouteWaypoint) int { return w.StopID }

// byStopID returns the stops listed in ids, in that order.
func byStopID(stops []domain.RouteWaypoint, ids []int) []domain.RouteWaypoint {
	index := make(map[int]domain.RouteWaypoint, len(stops))
	for _, s := range stops {
		index[s.StopID] = s
	}
	out := make([]domain.RouteWaypoint, 0, len(ids))
	for _, id := range ids {
		if s, ok := index[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// withLegDistances sets on each stop the planar distance from the previous
// located point, starting at depot. Stops without coordinates get 0.
func withLegDistances(depot domain.Coordinates, stops []domain.RouteWaypoint) []domain.RouteWaypoint {
	current := depot
	for i := range stops {
		if stops[i].Coordinates == nil {
			stops[i].Distance = 0
			continue
		}
		stops[i].Distance = planarDistance(current, *stops[i].Coordinates)
		current = *stops[i].Coordinates
	}
	return stops
}

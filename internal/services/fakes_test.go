package services

import (
	"context"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/ports"
	"sync"
	"time"
)

type fakeIngredients struct {
	mu     sync.Mutex
	byID   map[int][]string
	err    error
	called map[int]int
}

func (f *fakeIngredients) IngredientsFor(_ context.Context, componentID int, _ time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.called == nil {
		f.called = make(map[int]int)
	}
	f.called[componentID]++
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[componentID], nil
}

type fakeComponents struct {
	byGroup map[domain.ComponentGroup][]ports.Component
	err     error
}

func (f *fakeComponents) ComponentsByGroup(_ context.Context, group domain.ComponentGroup) ([]ports.Component, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byGroup[group], nil
}

type fakeOrders struct {
	items      []domain.KitchenItem
	stops      map[int][]domain.RouteWaypoint
	deliveries map[int][]domain.RouteDelivery
	clients    map[int][]domain.RouteWaypoint
	err        error
}

func (f *fakeOrders) KitchenItems(context.Context, time.Time) ([]domain.KitchenItem, error) {
	return f.items, f.err
}

func (f *fakeOrders) RouteStops(_ context.Context, routeID int, _ time.Time) ([]domain.RouteWaypoint, error) {
	return f.stops[routeID], f.err
}

func (f *fakeOrders) RouteDeliveries(_ context.Context, routeID int, _ time.Time) ([]domain.RouteDelivery, error) {
	return f.deliveries[routeID], f.err
}

func (f *fakeOrders) RouteClients(_ context.Context, routeID int) ([]domain.RouteWaypoint, error) {
	return f.clients[routeID], f.err
}

type fakeSequences struct {
	routes  map[int]*domain.Route
	history map[string][]int
}

func historyKey(routeID int, date time.Time) string {
	return fmt.Sprintf("%d/%s", routeID, date.Format(time.DateOnly))
}

func (f *fakeSequences) GetRoute(_ context.Context, routeID int) (*domain.Route, error) {
	r, ok := f.routes[routeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeSequences) SaveRouteSequence(_ context.Context, routeID int, clientIDs []int) error {
	r, ok := f.routes[routeID]
	if !ok {
		return domain.ErrNotFound
	}
	r.ClientIDSequence = clientIDs
	return nil
}

func (f *fakeSequences) GetDeliveryHistory(_ context.Context, routeID int, date time.Time) (*domain.DeliveryHistory, bool, error) {
	seq, ok := f.history[historyKey(routeID, date)]
	if !ok {
		return nil, false, nil
	}
	return &domain.DeliveryHistory{RouteID: routeID, Date: date, ClientIDSequence: seq}, true, nil
}

func (f *fakeSequences) SaveDeliverySequence(_ context.Context, routeID int, date time.Time, clientIDs []int) error {
	if f.history == nil {
		f.history = make(map[string][]int)
	}
	f.history[historyKey(routeID, date)] = clientIDs
	return nil
}

type fakeGeocoder struct {
	coords map[string]domain.Coordinates
	asked  []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	f.asked = append(f.asked, addresses...)
	out := make(map[string]domain.Coordinates)
	for _, a := range addresses {
		if c, ok := f.coords[a]; ok {
			out[a] = c
		}
	}
	return out, nil
}

type fakeRouteCache struct {
	m    map[string][]int
	gets int
	puts int
}

func (f *fakeRouteCache) GetSequence(_ context.Context, key string) ([]int, bool, error) {
	f.gets++
	ids, ok := f.m[key]
	return ids, ok, nil
}

func (f *fakeRouteCache) PutSequence(_ context.Context, key string, ids []int, _ time.Duration) error {
	f.puts++
	if f.m == nil {
		f.m = make(map[string][]int)
	}
	f.m[key] = ids
	return nil
}

func pt(lat, lon float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lon: lon}
}

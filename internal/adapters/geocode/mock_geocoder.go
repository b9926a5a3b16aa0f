package geocode

import (
	"context"
	"meal-delivery-service/internal/domain"
)

// MockGeocoder resolves addresses from a fixed table. It is used offline
// and in tests.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(known map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(known))
	for a, c := range known {
		m[domain.NormalizeAddress(a)] = c
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates)
	for _, a := range uniqueAddresses(addresses) {
		if c, ok := g.m[a]; ok {
			out[a] = c
		}
	}
	return out, nil
}

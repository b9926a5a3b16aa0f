package ports

import (
	"context"
	"meal-delivery-service/internal/domain"
)

// Contract for resolving postal addresses to coordinates.
type Geocoder interface {
	// Return coordinates keyed by the normalized address.
	// Addresses that cannot be resolved are absent from the result.
	Geocode(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}

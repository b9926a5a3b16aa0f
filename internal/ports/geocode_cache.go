package ports

import (
	"context"
	"meal-delivery-service/internal/domain"
)

// Persistent memo of geocoding results keyed by normalized address.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

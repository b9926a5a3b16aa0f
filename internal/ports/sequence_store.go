package ports

import (
	"context"
	"meal-delivery-service/internal/domain"
	"time"
)

// Port: persistence of client visiting orders.
// The engine only reads and writes these sequences as opaque ordered lists.
type SequenceStore interface {
	// Return the route, including its default client sequence.
	// Returns domain.ErrNotFound when the route does not exist.
	GetRoute(ctx context.Context, routeID int) (*domain.Route, error)
	SaveRouteSequence(ctx context.Context, routeID int, clientIDs []int) error

	// Return the sequence used on a delivery date; ok is false when none was saved.
	GetDeliveryHistory(ctx context.Context, routeID int, date time.Time) (_ *domain.DeliveryHistory, ok bool, err error)
	SaveDeliverySequence(ctx context.Context, routeID int, date time.Time, clientIDs []int) error
}

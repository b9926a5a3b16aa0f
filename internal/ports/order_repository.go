package ports

import (
	"context"
	"meal-delivery-service/internal/domain"
	"time"
)

// Port: a boundary for retrieving the orders to prepare and deliver.
type OrderRepository interface {
	// Retrieve one KitchenItem per order to deliver on date, in a stable order.
	// Clash sets are left empty; they depend on the ingredients of the day.
	KitchenItems(ctx context.Context, date time.Time) ([]domain.KitchenItem, error)
	// Retrieve the stops of the clients having an order on route for date.
	RouteStops(ctx context.Context, routeID int, date time.Time) ([]domain.RouteWaypoint, error)
	// Retrieve the items to deliver per client on route for date.
	RouteDeliveries(ctx context.Context, routeID int, date time.Time) ([]domain.RouteDelivery, error)
	// Retrieve the stops of every client assigned to route, whatever their orders.
	RouteClients(ctx context.Context, routeID int) ([]domain.RouteWaypoint, error)
}

package domain

import "time"

// Represents a delivery route and its default client visiting order.
type Route struct {
	RouteID          int
	Name             string
	ClientIDSequence []int
}

// Visiting order actually used on a route for a given delivery date.
type DeliveryHistory struct {
	RouteID          int
	Date             time.Time
	ClientIDSequence []int
}

// Represents a single stop to visit on a route.
// Coordinates is nil when the address has not been geolocalized yet.
type RouteWaypoint struct {
	StopID      int
	Coordinates *Coordinates
	Member      string
	Address     string
	Distance    float64
}

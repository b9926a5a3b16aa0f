package dto

type WaypointResponse struct {
	ID       int      `json:"id"`
	Member   string   `json:"member"`
	Address  string   `json:"address"`
	Lat      *float64 `json:"latitude"`
	Lon      *float64 `json:"longitude"`
	Distance float64  `json:"distance"`
}

type WaypointsResponse struct {
	RouteID   int                `json:"route_id"`
	Mode      string             `json:"mode"`
	Waypoints []WaypointResponse `json:"waypoints"`
}

type RouteClientResponse struct {
	WaypointResponse
	HasBeenConfigured bool `json:"has_been_configured"`
}

type RouteClientsResponse struct {
	RouteID        int                   `json:"route_id"`
	Date           string                `json:"date,omitempty"`
	Clients        []RouteClientResponse `json:"clients"`
	StaleClientIDs []int                 `json:"stale_client_ids,omitempty"`
}

// SaveSequenceRequest saves the default order of a route, or the order used
// on Date when it is set.
type SaveSequenceRequest struct {
	ClientIDs []int  `json:"client_ids"`
	Date      string `json:"date"`
}

type SequenceResponse struct {
	RouteID   int    `json:"route_id"`
	Date      string `json:"date,omitempty"`
	ClientIDs []int  `json:"client_ids"`
}

type DeliveryItemResponse struct {
	ComponentGroup string `json:"component_group"`
	Size           string `json:"size"`
	TotalQuantity  int    `json:"total_quantity"`
}

type RouteDeliveryResponse struct {
	ClientID   int                    `json:"client_id"`
	ClientName string                 `json:"client_name"`
	Address    string                 `json:"address"`
	Items      []DeliveryItemResponse `json:"items"`
}

type RouteSummaryLineResponse struct {
	ComponentGroup string `json:"component_group"`
	RegularQty     int    `json:"regular_qty"`
	LargeQty       int    `json:"large_qty"`
}

type RouteSheetResponse struct {
	RouteID    int                        `json:"route_id"`
	RouteName  string                     `json:"route_name"`
	Date       string                     `json:"date"`
	Summary    []RouteSummaryLineResponse `json:"summary"`
	Deliveries []RouteDeliveryResponse    `json:"deliveries"`
}

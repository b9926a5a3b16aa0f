package api

import (
	"meal-delivery-service/internal/api/handlers"
	"meal-delivery-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(kitchen *services.KitchenReportService, planner *services.RoutePlanner) http.Handler {
	mux := http.NewServeMux()

	kitchenHandler := &handlers.KitchenHandler{Service: kitchen}
	routeHandler := &handlers.RouteHandler{Planner: planner}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /kitchen-count", kitchenHandler.KitchenCount)
	mux.HandleFunc("GET /kitchen-count/labels", kitchenHandler.Labels)

	mux.HandleFunc("GET /routes/{id}/waypoints", routeHandler.Waypoints)
	mux.HandleFunc("POST /routes/{id}/sequence", routeHandler.SaveSequence)
	mux.HandleFunc("GET /routes/{id}/clients", routeHandler.Clients)
	mux.HandleFunc("GET /routes/{id}/optimized-sequence", routeHandler.OptimizedSequence)
	mux.HandleFunc("GET /routes/{id}/sheet", routeHandler.Sheet)
	mux.HandleFunc("GET /routes/{id}/history/{date}", routeHandler.History)

	return requestIDMiddleware(loggingMiddleware(mux))
}

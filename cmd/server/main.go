package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"meal-delivery-service/internal/adapters/cache"
	"meal-delivery-service/internal/adapters/geocode"
	"meal-delivery-service/internal/adapters/repositories"
	"meal-delivery-service/internal/api"
	"meal-delivery-service/internal/config"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/db"
	"meal-delivery-service/internal/services"
	"net/http"
	"strings"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, geocoder) behind ports and starts the HTTP server.
func main() {
	cfg := config.Load()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(context.Background(), conn); err != nil {
		log.Fatal(err)
	}

	planner, err := newRoutePlanner(cfg, conn)
	if err != nil {
		log.Fatal(err)
	}

	orders := repositories.NewPostgresOrderRepository(conn)
	components := repositories.NewPostgresComponentRepository(conn)
	kitchen := services.NewKitchenReportService(orders, components, components)

	router := api.NewRouter(kitchen, planner)

	// Timeouts are tuned for cold-cache geocoding (external API latency).
	log.Printf("Server listening addr=:%s geocoder=%s", cfg.Port, cfg.Geocoder)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func newRoutePlanner(cfg config.Config, conn *sql.DB) (*services.RoutePlanner, error) {
	geocoder, err := geocode.New(cfg.Geocoder, cfg.ORSAPIKey, cfg.GoogleMapsAPIKey, cache.NewSQLGeocodeCache(conn))
	if err != nil {
		return nil, fmt.Errorf("new route planner: %w", err)
	}

	planner := &services.RoutePlanner{
		Orders:    repositories.NewPostgresOrderRepository(conn),
		Sequences: repositories.NewPostgresSequenceStore(conn),
		Geocoder:  geocoder,
		Depot:     domain.Coordinates{Lat: cfg.DepotLat, Lon: cfg.DepotLon},
		Options: services.RouteOptions{
			TwoOpt:    cfg.RouteTwoOpt,
			MaxPasses: cfg.RouteMaxPasses,
			Eps:       services.DefaultRouteOptions().Eps,
		},
		CacheTTL: cfg.RouteCacheTTL,
	}

	// Redis is optional; without it every request recomputes its route.
	if cfg.RedisAddr != "" {
		planner.Cache = cache.NewRedisRouteCache(cache.NewRedis(cfg.RedisAddr))
		log.Printf("route cache enabled addr=%s ttl=%s", cfg.RedisAddr, cfg.RouteCacheTTL)
	}

	return planner, nil
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default depot: the kitchen, in Montreal.
const (
	DefaultDepotLat = 45.516564
	DefaultDepotLon = -73.575145
)

// Config holds the settings shared by the server and the tools.
type Config struct {
	DatabaseURL string
	RedisAddr   string
	Port        string
	SeedPath    string
	SQLitePath  string

	DepotLat float64
	DepotLon float64

	// Geocoder is "ors", "google" or "none".
	Geocoder         string
	ORSAPIKey        string
	GoogleMapsAPIKey string

	RouteTwoOpt    bool
	RouteMaxPasses int
	RouteCacheTTL  time.Duration
}

// Load reads a .env file when present, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	return Config{
		DatabaseURL:      Get("DATABASE_URL", ""),
		RedisAddr:        Get("REDIS_ADDR", ""),
		Port:             Get("PORT", "8080"),
		SeedPath:         Get("SEED_PATH", "data/seeds/kitchen.json"),
		SQLitePath:       Get("KITCHENCTL_DB", "data/kitchen.db"),
		DepotLat:         GetFloat("DEPOT_LAT", DefaultDepotLat),
		DepotLon:         GetFloat("DEPOT_LON", DefaultDepotLon),
		Geocoder:         strings.ToLower(Get("GEOCODER", "none")),
		ORSAPIKey:        Get("ORS_API_KEY", ""),
		GoogleMapsAPIKey: Get("GOOGLE_MAPS_API_KEY", ""),
		RouteTwoOpt:      GetBool("ROUTE_TWO_OPT", true),
		RouteMaxPasses:   GetInt("ROUTE_MAX_PASSES", 1000),
		RouteCacheTTL:    GetDuration("ROUTE_CACHE_TTL", 24*time.Hour),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func GetBool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"meal-delivery-service/internal/adapters/cache"
	"meal-delivery-service/internal/adapters/geocode"
	"meal-delivery-service/internal/adapters/repositories"
	"meal-delivery-service/internal/config"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/db"
	"meal-delivery-service/internal/services"
)

// RootCmd returns the kitchenctl command tree. Every subcommand works on the
// local SQLite database named by --db.
func RootCmd(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kitchenctl",
		Short: "Kitchen count, meal labels and delivery routes from a local database",
		Long: `kitchenctl runs the kitchen and routing reports against a local SQLite
database, without the HTTP server.

Examples:
  kitchenctl init
  kitchenctl seed data/seeds/kitchen.json
  kitchenctl kitchen-count --date 2026-10-19
  kitchenctl route show 1 --mode euclidean`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("db", cfg.SQLitePath, "SQLite database file")

	rootCmd.AddCommand(initCmd(cfg))
	rootCmd.AddCommand(seedCmd(cfg))
	rootCmd.AddCommand(kitchenCountCmd(cfg))
	rootCmd.AddCommand(labelsCmd(cfg))
	rootCmd.AddCommand(routeCmd(cfg))

	return rootCmd
}

// app holds the services of one command invocation.
type app struct {
	db      *sql.DB
	kitchen *services.KitchenReportService
	planner *services.RoutePlanner
}

func openApp(ctx context.Context, path string, cfg config.Config) (*app, error) {
	conn, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	geocoder, err := geocode.New(cfg.Geocoder, cfg.ORSAPIKey, cfg.GoogleMapsAPIKey, cache.NewSqliteGeocodeCache(conn))
	if err != nil {
		conn.Close()
		return nil, err
	}

	orders := repositories.NewSqliteOrderRepository(conn)
	components := repositories.NewSqliteComponentRepository(conn)

	a := &app{
		db:      conn,
		kitchen: services.NewKitchenReportService(orders, components, components),
		planner: &services.RoutePlanner{
			Orders:    orders,
			Sequences: repositories.NewSqliteSequenceStore(conn),
			Geocoder:  geocoder,
			Depot:     domain.Coordinates{Lat: cfg.DepotLat, Lon: cfg.DepotLon},
			Options: services.RouteOptions{
				TwoOpt:    cfg.RouteTwoOpt,
				MaxPasses: cfg.RouteMaxPasses,
				Eps:       services.DefaultRouteOptions().Eps,
			},
			CacheTTL: cfg.RouteCacheTTL,
		},
	}
	if cfg.RedisAddr != "" {
		a.planner.Cache = cache.NewRedisRouteCache(cache.NewRedis(cfg.RedisAddr))
	}

	return a, nil
}

func (a *app) Close() error { return a.db.Close() }

// withApp opens the database for the duration of fn.
func withApp(cmd *cobra.Command, cfg config.Config, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path, _ := cmd.Flags().GetString("db")

	a, err := openApp(ctx, path, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func initCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(_ context.Context, _ *app) error {
				path, _ := cmd.Flags().GetString("db")
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Schema ready in %s\n", path)
				return nil
			})
		},
	}
}

func seedCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Load routes, clients, menu and orders from a JSON seed file",
		Long: `Load a JSON seed file into the database. Loading the same file twice
leaves the database unchanged.

Examples:
  kitchenctl seed data/seeds/kitchen.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.SeedPath
			if len(args) == 1 {
				path = args[0]
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				if err := repositories.SeedFromJSON(ctx, a.db, repositories.SQLite, path); err != nil {
					return fmt.Errorf("failed to seed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded from %s\n", path)
				return nil
			})
		},
	}
}

// dateFlag reads --date, defaulting to today.
func dateFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", raw)
	}
	return d, nil
}

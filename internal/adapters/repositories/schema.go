package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Dates are stored as YYYY-MM-DD text and sequences as JSON arrays of client
// ids so that the same schema runs on Postgres and SQLite.
var schemaStatements = []string{
	`
	CREATE TABLE IF NOT EXISTS routes (
		route_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		client_sequence TEXT NOT NULL DEFAULT '[]'
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS clients (
		client_id INTEGER PRIMARY KEY,
		firstname TEXT NOT NULL,
		lastname TEXT NOT NULL,
		route_id INTEGER REFERENCES routes (route_id),
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS client_restrictions (
		client_id INTEGER NOT NULL REFERENCES clients (client_id),
		kind TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (client_id, kind, value)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS components (
		component_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		component_group TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS component_ingredients (
		component_id INTEGER NOT NULL REFERENCES components (component_id),
		day TEXT NOT NULL,
		position INTEGER NOT NULL,
		ingredient TEXT NOT NULL,
		PRIMARY KEY (component_id, day, ingredient)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		client_id INTEGER NOT NULL REFERENCES clients (client_id),
		delivery_date TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS order_items (
		order_id INTEGER NOT NULL REFERENCES orders (order_id),
		component_group TEXT NOT NULL,
		component_id INTEGER REFERENCES components (component_id),
		size TEXT NOT NULL DEFAULT 'R',
		quantity INTEGER NOT NULL,
		PRIMARY KEY (order_id, component_group)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS delivery_history (
		route_id INTEGER NOT NULL REFERENCES routes (route_id),
		delivery_date TEXT NOT NULL,
		client_sequence TEXT NOT NULL,
		PRIMARY KEY (route_id, delivery_date)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_orders_delivery_date
	ON orders (delivery_date, client_id);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_clients_route
	ON clients (route_id);
	`,
}

// Restriction kinds stored in client_restrictions.
const (
	restrictionAvoid       = "avoid"
	restrictionRestricted  = "restricted"
	restrictionPreparation = "preparation"
)

// InitSchema creates the tables of the service when missing.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

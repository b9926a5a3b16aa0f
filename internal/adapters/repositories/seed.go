package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"meal-delivery-service/internal/domain"
	"os"
	"strings"
	"time"
)

type RouteSeed struct {
	RouteID        int    `json:"route_id"`
	Name           string `json:"name"`
	ClientSequence []int  `json:"client_sequence"`
}

type ClientSeed struct {
	ClientID         int      `json:"client_id"`
	Firstname        string   `json:"firstname"`
	Lastname         string   `json:"lastname"`
	RouteID          int      `json:"route_id"`
	Address          string   `json:"address"`
	Lat              *float64 `json:"lat"`
	Lon              *float64 `json:"lon"`
	AvoidIngredients []string `json:"avoid_ingredients"`
	RestrictedItems  []string `json:"restricted_items"`
	Preparation      []string `json:"preparation"`
}

type ComponentSeed struct {
	ComponentID int    `json:"component_id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
}

type DayIngredientsSeed struct {
	ComponentID int      `json:"component_id"`
	Date        string   `json:"date"`
	Ingredients []string `json:"ingredients"`
}

type OrderItemSeed struct {
	Group       string `json:"group"`
	ComponentID *int   `json:"component_id"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
}

type OrderSeed struct {
	OrderID  int             `json:"order_id"`
	ClientID int             `json:"client_id"`
	Date     string          `json:"date"`
	Items    []OrderItemSeed `json:"items"`
}

// Seed is the content of a seed file.
type Seed struct {
	Routes         []RouteSeed          `json:"routes"`
	Clients        []ClientSeed         `json:"clients"`
	Components     []ComponentSeed      `json:"components"`
	DayIngredients []DayIngredientsSeed `json:"day_ingredients"`
	Orders         []OrderSeed          `json:"orders"`
}

// SeedFromJSON populates the database from a JSON seed file.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	f, err := os.Open(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: open %q: %w", jsonPath, err)
	}
	defer f.Close()

	return SeedFrom(ctx, db, dialect, f)
}

// SeedFrom populates the database from a JSON seed document.
// Rows are upserted so that seeding twice is harmless.
func SeedFrom(ctx context.Context, db *sql.DB, dialect Dialect, r io.Reader) error {
	var seed Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	if err := seed.validate(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	exec := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, dialect.rebind(query), args...)
		return err
	}

	for _, rt := range seed.Routes {
		seq, err := encodeSequence(rt.ClientSequence)
		if err != nil {
			return fmt.Errorf("seed: route_id=%d: %w", rt.RouteID, err)
		}
		err = exec(`
		INSERT INTO routes (route_id, name, client_sequence)
		VALUES (?, ?, ?)
		ON CONFLICT (route_id) DO UPDATE
		SET name = EXCLUDED.name,
			client_sequence = EXCLUDED.client_sequence;
		`, rt.RouteID, strings.TrimSpace(rt.Name), seq)
		if err != nil {
			return fmt.Errorf("seed: insert route_id=%d: %w", rt.RouteID, err)
		}
	}

	for _, c := range seed.Clients {
		var routeID any
		if c.RouteID > 0 {
			routeID = c.RouteID
		}
		err := exec(`
		INSERT INTO clients (client_id, firstname, lastname, route_id, address, lat, lon)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (client_id) DO UPDATE
		SET firstname = EXCLUDED.firstname,
			lastname = EXCLUDED.lastname,
			route_id = EXCLUDED.route_id,
			address = EXCLUDED.address,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon;
		`, c.ClientID, c.Firstname, c.Lastname, routeID, domain.NormalizeAddress(c.Address), c.Lat, c.Lon)
		if err != nil {
			return fmt.Errorf("seed: insert client_id=%d: %w", c.ClientID, err)
		}

		if err := exec(`DELETE FROM client_restrictions WHERE client_id = ?;`, c.ClientID); err != nil {
			return fmt.Errorf("seed: clear restrictions of client_id=%d: %w", c.ClientID, err)
		}
		restrictions := map[string][]string{
			restrictionAvoid:       c.AvoidIngredients,
			restrictionRestricted:  c.RestrictedItems,
			restrictionPreparation: c.Preparation,
		}
		for kind, values := range restrictions {
			for _, v := range domain.NormalizeSet(values) {
				err := exec(`INSERT INTO client_restrictions (client_id, kind, value) VALUES (?, ?, ?);`, c.ClientID, kind, v)
				if err != nil {
					return fmt.Errorf("seed: insert %s %q of client_id=%d: %w", kind, v, c.ClientID, err)
				}
			}
		}
	}

	for _, c := range seed.Components {
		err := exec(`
		INSERT INTO components (component_id, name, component_group)
		VALUES (?, ?, ?)
		ON CONFLICT (component_id) DO UPDATE
		SET name = EXCLUDED.name,
			component_group = EXCLUDED.component_group;
		`, c.ComponentID, strings.TrimSpace(c.Name), c.Group)
		if err != nil {
			return fmt.Errorf("seed: insert component_id=%d: %w", c.ComponentID, err)
		}
	}

	for _, d := range seed.DayIngredients {
		if err := exec(`DELETE FROM component_ingredients WHERE component_id = ? AND day = ?;`, d.ComponentID, d.Date); err != nil {
			return fmt.Errorf("seed: clear ingredients of component_id=%d: %w", d.ComponentID, err)
		}
		seen := make(map[string]struct{}, len(d.Ingredients))
		for i, ing := range d.Ingredients {
			ing = strings.TrimSpace(ing)
			if _, dup := seen[ing]; dup || ing == "" {
				continue
			}
			seen[ing] = struct{}{}
			err := exec(`
			INSERT INTO component_ingredients (component_id, day, position, ingredient)
			VALUES (?, ?, ?, ?);
			`, d.ComponentID, d.Date, i, ing)
			if err != nil {
				return fmt.Errorf("seed: insert ingredient %q of component_id=%d: %w", ing, d.ComponentID, err)
			}
		}
	}

	for _, o := range seed.Orders {
		err := exec(`
		INSERT INTO orders (order_id, client_id, delivery_date)
		VALUES (?, ?, ?)
		ON CONFLICT (order_id) DO UPDATE
		SET client_id = EXCLUDED.client_id,
			delivery_date = EXCLUDED.delivery_date;
		`, o.OrderID, o.ClientID, o.Date)
		if err != nil {
			return fmt.Errorf("seed: insert order_id=%d: %w", o.OrderID, err)
		}

		if err := exec(`DELETE FROM order_items WHERE order_id = ?;`, o.OrderID); err != nil {
			return fmt.Errorf("seed: clear items of order_id=%d: %w", o.OrderID, err)
		}
		for _, it := range o.Items {
			size := it.Size
			if size == "" {
				size = string(domain.SizeRegular)
			}
			err := exec(`
			INSERT INTO order_items (order_id, component_group, component_id, size, quantity)
			VALUES (?, ?, ?, ?, ?);
			`, o.OrderID, it.Group, it.ComponentID, size, it.Quantity)
			if err != nil {
				return fmt.Errorf("seed: insert %s item of order_id=%d: %w", it.Group, o.OrderID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func (s Seed) validate() error {
	for i, rt := range s.Routes {
		if rt.RouteID <= 0 || strings.TrimSpace(rt.Name) == "" {
			return fmt.Errorf("route at index %d: route_id and name are required", i+1)
		}
	}
	for i, c := range s.Clients {
		if c.ClientID <= 0 {
			return fmt.Errorf("client at index %d: invalid client_id %d", i+1, c.ClientID)
		}
		if (c.Lat == nil) != (c.Lon == nil) {
			return fmt.Errorf("client_id=%d: lat and lon go together", c.ClientID)
		}
	}
	for i, c := range s.Components {
		if c.ComponentID <= 0 || strings.TrimSpace(c.Name) == "" || c.Group == "" {
			return fmt.Errorf("component at index %d: component_id, name and group are required", i+1)
		}
	}
	for _, d := range s.DayIngredients {
		if _, err := time.Parse(time.DateOnly, d.Date); err != nil {
			return fmt.Errorf("ingredients of component_id=%d: invalid date %q", d.ComponentID, d.Date)
		}
	}
	for _, o := range s.Orders {
		if o.OrderID <= 0 || o.ClientID <= 0 {
			return fmt.Errorf("order_id=%d: order_id and client_id are required", o.OrderID)
		}
		if _, err := time.Parse(time.DateOnly, o.Date); err != nil {
			return fmt.Errorf("order_id=%d: invalid date %q", o.OrderID, o.Date)
		}
		for _, it := range o.Items {
			if it.Quantity < 0 {
				return fmt.Errorf("order_id=%d: negative quantity for %s", o.OrderID, it.Group)
			}
			if it.Size != "" && it.Size != string(domain.SizeRegular) && it.Size != string(domain.SizeLarge) {
				return fmt.Errorf("order_id=%d: unknown size %q", o.OrderID, it.Size)
			}
		}
	}
	return nil
}

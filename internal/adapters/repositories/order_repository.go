package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"
	"time"
)

// SQL-backed implementation of the OrderRepository port.
//
// Every result set is drained and closed before the next query so that the
// repository also works on a single-connection SQLite pool.
type SQLOrderRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewPostgresOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: db, Dialect: Postgres}
}

func NewSqliteOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: db, Dialect: SQLite}
}

func (s *SQLOrderRepository) KitchenItems(ctx context.Context, date time.Time) (_ []domain.KitchenItem, err error) {
	defer obs.Time(ctx, "orders.KitchenItems")(&err)

	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}
	day := date.Format(time.DateOnly)

	items, err := s.kitchenOrders(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("kitchen items %s: %w", day, err)
	}
	if len(items) == 0 {
		return items, nil
	}

	byOrder := make(map[int]*domain.KitchenItem, len(items))
	byClient := make(map[int][]*domain.KitchenItem, len(items))
	for i := range items {
		byOrder[items[i].OrderID] = &items[i]
		byClient[items[i].ClientID] = append(byClient[items[i].ClientID], &items[i])
	}

	if err := s.fillComponents(ctx, day, byOrder); err != nil {
		return nil, fmt.Errorf("kitchen items %s: %w", day, err)
	}
	if err := s.fillRestrictions(ctx, day, byClient); err != nil {
		return nil, fmt.Errorf("kitchen items %s: %w", day, err)
	}

	return items, nil
}

func (s *SQLOrderRepository) kitchenOrders(ctx context.Context, day string) ([]domain.KitchenItem, error) {
	q := s.Dialect.rebind(`
	SELECT
		o.order_id,
		c.client_id,
		c.firstname,
		c.lastname,
		COALESCE(r.name, '')
	FROM orders o
	JOIN clients c ON c.client_id = o.client_id
	LEFT JOIN routes r ON r.route_id = c.route_id
	WHERE o.delivery_date = ?
	ORDER BY o.order_id;
	`)
	rows, err := s.DB.QueryContext(ctx, q, day)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	items := make([]domain.KitchenItem, 0, 64)
	for rows.Next() {
		var (
			it                  domain.KitchenItem
			firstname, lastname string
		)
		if err := rows.Scan(&it.OrderID, &it.ClientID, &firstname, &lastname, &it.RouteName); err != nil {
			return nil, fmt.Errorf("query orders: scan row: %w", err)
		}
		it.ClientName = domain.ClientLabel(lastname, firstname)
		it.MealSize = domain.SizeRegular
		it.MealComponents = make(map[domain.ComponentGroup]domain.MealComponent)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query orders: row iteration: %w", err)
	}

	return items, nil
}

func (s *SQLOrderRepository) fillComponents(ctx context.Context, day string, byOrder map[int]*domain.KitchenItem) error {
	q := s.Dialect.rebind(`
	SELECT
		oi.order_id,
		oi.component_group,
		COALESCE(oi.component_id, 0),
		COALESCE(cp.name, ''),
		oi.size,
		oi.quantity
	FROM order_items oi
	JOIN orders o ON o.order_id = oi.order_id
	LEFT JOIN components cp ON cp.component_id = oi.component_id
	WHERE o.delivery_date = ?
	ORDER BY oi.order_id, oi.component_group;
	`)
	rows, err := s.DB.QueryContext(ctx, q, day)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int
			group   string
			size    string
			comp    domain.MealComponent
		)
		if err := rows.Scan(&orderID, &group, &comp.ComponentID, &comp.Name, &size, &comp.Qty); err != nil {
			return fmt.Errorf("query order items: scan row: %w", err)
		}

		it, ok := byOrder[orderID]
		if !ok {
			continue
		}
		g := domain.ComponentGroup(group)
		it.MealComponents[g] = comp
		if g == domain.GroupMainDish {
			it.MealSize = domain.MealSize(size)
			it.MealQty = comp.Qty
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("query order items: row iteration: %w", err)
	}

	return nil
}

func (s *SQLOrderRepository) fillRestrictions(ctx context.Context, day string, byClient map[int][]*domain.KitchenItem) error {
	q := s.Dialect.rebind(`
	SELECT client_id, kind, value
	FROM client_restrictions
	WHERE client_id IN (SELECT client_id FROM orders WHERE delivery_date = ?)
	ORDER BY client_id, kind, value;
	`)
	rows, err := s.DB.QueryContext(ctx, q, day)
	if err != nil {
		return fmt.Errorf("query restrictions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			clientID    int
			kind, value string
		)
		if err := rows.Scan(&clientID, &kind, &value); err != nil {
			return fmt.Errorf("query restrictions: scan row: %w", err)
		}

		for _, it := range byClient[clientID] {
			switch kind {
			case restrictionAvoid:
				it.AvoidIngredients = append(it.AvoidIngredients, value)
			case restrictionRestricted:
				it.RestrictedItems = append(it.RestrictedItems, value)
			case restrictionPreparation:
				it.Preparation = append(it.Preparation, value)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("query restrictions: row iteration: %w", err)
	}

	return nil
}

func (s *SQLOrderRepository) RouteStops(ctx context.Context, routeID int, date time.Time) (_ []domain.RouteWaypoint, err error) {
	defer obs.Time(ctx, "orders.RouteStops")(&err)

	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	q := s.Dialect.rebind(`
	SELECT DISTINCT c.client_id, c.firstname, c.lastname, c.address, c.lat, c.lon
	FROM clients c
	JOIN orders o ON o.client_id = c.client_id
	WHERE c.route_id = ? AND o.delivery_date = ?
	ORDER BY c.client_id;
	`)
	stops, err := s.queryWaypoints(ctx, q, routeID, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("route stops %d: %w", routeID, err)
	}
	return stops, nil
}

func (s *SQLOrderRepository) RouteClients(ctx context.Context, routeID int) (_ []domain.RouteWaypoint, err error) {
	defer obs.Time(ctx, "orders.RouteClients")(&err)

	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	q := s.Dialect.rebind(`
	SELECT c.client_id, c.firstname, c.lastname, c.address, c.lat, c.lon
	FROM clients c
	WHERE c.route_id = ?
	ORDER BY c.client_id;
	`)
	clients, err := s.queryWaypoints(ctx, q, routeID)
	if err != nil {
		return nil, fmt.Errorf("route clients %d: %w", routeID, err)
	}
	return clients, nil
}

func (s *SQLOrderRepository) queryWaypoints(ctx context.Context, q string, args ...any) ([]domain.RouteWaypoint, error) {
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RouteWaypoint, 0, 32)
	for rows.Next() {
		var (
			w                   domain.RouteWaypoint
			firstname, lastname string
			lat, lon            sql.NullFloat64
		)
		if err := rows.Scan(&w.StopID, &firstname, &lastname, &w.Address, &lat, &lon); err != nil {
			return nil, fmt.Errorf("query clients: scan row: %w", err)
		}
		w.Member = domain.ClientLabel(lastname, firstname)
		if lat.Valid && lon.Valid {
			w.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query clients: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLOrderRepository) RouteDeliveries(ctx context.Context, routeID int, date time.Time) (_ []domain.RouteDelivery, err error) {
	defer obs.Time(ctx, "orders.RouteDeliveries")(&err)

	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	q := s.Dialect.rebind(`
	SELECT
		c.client_id,
		c.firstname,
		c.lastname,
		c.address,
		oi.component_group,
		oi.size,
		SUM(oi.quantity)
	FROM clients c
	JOIN orders o ON o.client_id = c.client_id
	JOIN order_items oi ON oi.order_id = o.order_id
	WHERE c.route_id = ? AND o.delivery_date = ?
	GROUP BY c.client_id, c.firstname, c.lastname, c.address, oi.component_group, oi.size
	ORDER BY c.client_id, oi.component_group, oi.size;
	`)
	rows, err := s.DB.QueryContext(ctx, q, routeID, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("route deliveries %d: %w", routeID, err)
	}
	defer rows.Close()

	out := make([]domain.RouteDelivery, 0, 32)
	for rows.Next() {
		var (
			clientID            int
			firstname, lastname string
			address             string
			group, size         string
			qty                 int
		)
		if err := rows.Scan(&clientID, &firstname, &lastname, &address, &group, &size, &qty); err != nil {
			return nil, fmt.Errorf("route deliveries %d: scan row: %w", routeID, err)
		}

		if n := len(out); n == 0 || out[n-1].ClientID != clientID {
			out = append(out, domain.RouteDelivery{
				ClientID:   clientID,
				ClientName: domain.ClientLabel(lastname, firstname),
				Address:    address,
			})
		}
		last := &out[len(out)-1]
		last.DeliveryItems = append(last.DeliveryItems, domain.DeliveryItem{
			ComponentGroup: domain.ComponentGroup(group),
			Size:           domain.MealSize(size),
			TotalQuantity:  qty,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("route deliveries %d: row iteration: %w", routeID, err)
	}

	return out, nil
}

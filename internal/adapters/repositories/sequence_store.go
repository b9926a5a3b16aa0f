package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"
	"time"
)

// SQL-backed implementation of the SequenceStore port.
type SQLSequenceStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewPostgresSequenceStore(db *sql.DB) *SQLSequenceStore {
	return &SQLSequenceStore{DB: db, Dialect: Postgres}
}

func NewSqliteSequenceStore(db *sql.DB) *SQLSequenceStore {
	return &SQLSequenceStore{DB: db, Dialect: SQLite}
}

func (s *SQLSequenceStore) GetRoute(ctx context.Context, routeID int) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "sequences.GetRoute")(&err)

	if s.DB == nil {
		return nil, errors.New("sequence store: DB is nil")
	}

	var (
		name string
		raw  string
	)
	q := s.Dialect.rebind(`SELECT name, client_sequence FROM routes WHERE route_id = ?;`)
	if err := s.DB.QueryRowContext(ctx, q, routeID).Scan(&name, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get route %d: %w", routeID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get route %d: %w", routeID, err)
	}

	seq, err := decodeSequence(raw)
	if err != nil {
		return nil, fmt.Errorf("get route %d: %w", routeID, err)
	}

	return &domain.Route{RouteID: routeID, Name: name, ClientIDSequence: seq}, nil
}

func (s *SQLSequenceStore) SaveRouteSequence(ctx context.Context, routeID int, clientIDs []int) (err error) {
	defer obs.Time(ctx, "sequences.SaveRouteSequence")(&err)

	if s.DB == nil {
		return errors.New("sequence store: DB is nil")
	}

	raw, err := encodeSequence(clientIDs)
	if err != nil {
		return fmt.Errorf("save route sequence %d: %w", routeID, err)
	}

	q := s.Dialect.rebind(`UPDATE routes SET client_sequence = ? WHERE route_id = ?;`)
	res, err := s.DB.ExecContext(ctx, q, raw, routeID)
	if err != nil {
		return fmt.Errorf("save route sequence %d: %w", routeID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("save route sequence %d: %w", routeID, domain.ErrNotFound)
	}

	return nil
}

func (s *SQLSequenceStore) GetDeliveryHistory(
	ctx context.Context,
	routeID int,
	date time.Time,
) (_ *domain.DeliveryHistory, _ bool, err error) {
	defer obs.Time(ctx, "sequences.GetDeliveryHistory")(&err)

	if s.DB == nil {
		return nil, false, errors.New("sequence store: DB is nil")
	}

	var raw string
	q := s.Dialect.rebind(`
	SELECT client_sequence
	FROM delivery_history
	WHERE route_id = ? AND delivery_date = ?;
	`)
	if err := s.DB.QueryRowContext(ctx, q, routeID, date.Format(time.DateOnly)).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get delivery history %d: %w", routeID, err)
	}

	seq, err := decodeSequence(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get delivery history %d: %w", routeID, err)
	}

	return &domain.DeliveryHistory{RouteID: routeID, Date: date, ClientIDSequence: seq}, true, nil
}

func (s *SQLSequenceStore) SaveDeliverySequence(ctx context.Context, routeID int, date time.Time, clientIDs []int) (err error) {
	defer obs.Time(ctx, "sequences.SaveDeliverySequence")(&err)

	if s.DB == nil {
		return errors.New("sequence store: DB is nil")
	}

	raw, err := encodeSequence(clientIDs)
	if err != nil {
		return fmt.Errorf("save delivery sequence %d: %w", routeID, err)
	}

	q := s.Dialect.rebind(`
	INSERT INTO delivery_history (route_id, delivery_date, client_sequence)
	VALUES (?, ?, ?)
	ON CONFLICT (route_id, delivery_date) DO UPDATE
	SET client_sequence = EXCLUDED.client_sequence;
	`)
	if _, err := s.DB.ExecContext(ctx, q, routeID, date.Format(time.DateOnly), raw); err != nil {
		return fmt.Errorf("save delivery sequence %d: %w", routeID, err)
	}

	return nil
}

func encodeSequence(ids []int) (string, error) {
	if ids == nil {
		ids = []int{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode sequence: %w", err)
	}
	return string(b), nil
}

func decodeSequence(raw string) ([]int, error) {
	var ids []int
	if raw == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode sequence %q: %w", raw, err)
	}
	return ids, nil
}

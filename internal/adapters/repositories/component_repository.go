package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"
	"meal-delivery-service/internal/ports"
	"time"
)

// SQL-backed implementation of the ComponentRepository and IngredientLookup ports.
type SQLComponentRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewPostgresComponentRepository(db *sql.DB) *SQLComponentRepository {
	return &SQLComponentRepository{DB: db, Dialect: Postgres}
}

func NewSqliteComponentRepository(db *sql.DB) *SQLComponentRepository {
	return &SQLComponentRepository{DB: db, Dialect: SQLite}
}

func (s *SQLComponentRepository) ComponentsByGroup(
	ctx context.Context,
	group domain.ComponentGroup,
) (_ []ports.Component, err error) {
	defer obs.Time(ctx, "components.ComponentsByGroup")(&err)

	if s.DB == nil {
		return nil, errors.New("component repository: DB is nil")
	}

	q := s.Dialect.rebind(`
	SELECT component_id, name
	FROM components
	WHERE component_group = ?
	ORDER BY LOWER(name), component_id;
	`)
	rows, err := s.DB.QueryContext(ctx, q, string(group))
	if err != nil {
		return nil, fmt.Errorf("list components of %s: %w", group, err)
	}
	defer rows.Close()

	out := make([]ports.Component, 0, 4)
	for rows.Next() {
		c := ports.Component{Group: group}
		if err := rows.Scan(&c.ComponentID, &c.Name); err != nil {
			return nil, fmt.Errorf("list components of %s: scan row: %w", group, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list components of %s: row iteration: %w", group, err)
	}

	return out, nil
}

func (s *SQLComponentRepository) IngredientsFor(
	ctx context.Context,
	componentID int,
	date time.Time,
) (_ []string, err error) {
	defer obs.Time(ctx, "components.IngredientsFor")(&err)

	if s.DB == nil {
		return nil, errors.New("component repository: DB is nil")
	}

	q := s.Dialect.rebind(`
	SELECT ingredient
	FROM component_ingredients
	WHERE component_id = ? AND day = ?
	ORDER BY position, ingredient;
	`)
	rows, err := s.DB.QueryContext(ctx, q, componentID, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("ingredients of component %d: %w", componentID, err)
	}
	defer rows.Close()

	out := make([]string, 0, 8)
	for rows.Next() {
		var ing string
		if err := rows.Scan(&ing); err != nil {
			return nil, fmt.Errorf("ingredients of component %d: scan row: %w", componentID, err)
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ingredients of component %d: row iteration: %w", componentID, err)
	}

	return out, nil
}

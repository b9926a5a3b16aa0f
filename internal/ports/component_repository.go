package ports

import (
	"context"
	"meal-delivery-service/internal/domain"
)

// Component is a dish known to the kitchen.
type Component struct {
	ComponentID int
	Name        string
	Group       domain.ComponentGroup
}

// Port: a boundary for retrieving dish components.
type ComponentRepository interface {
	// Return components of group sorted by case-insensitive name.
	ComponentsByGroup(ctx context.Context, group domain.ComponentGroup) ([]Component, error)
}

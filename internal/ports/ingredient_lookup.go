package ports

import (
	"context"
	"time"
)

// Contract for retrieving the ingredients actually used in a component on a date.
type IngredientLookup interface {
	// Return ingredient names in display order.
	IngredientsFor(ctx context.Context, componentID int, date time.Time) ([]string, error)
}

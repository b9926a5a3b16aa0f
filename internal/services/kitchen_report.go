package services

import (
	"context"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"
	"meal-delivery-service/internal/ports"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Everything printed for the kitchen on a delivery day.
type KitchenReport struct {
	Date           time.Time
	ComponentLines []domain.ComponentLine
	MealLines      []domain.MealLine
	Labels         []domain.MealLabel
	NumLabels      int
}

// KitchenReportService assembles the kitchen count and the meal labels of a day.
type KitchenReportService struct {
	Orders      ports.OrderRepository
	Components  ports.ComponentRepository
	Ingredients ports.IngredientLookup
}

func NewKitchenReportService(
	orders ports.OrderRepository,
	components ports.ComponentRepository,
	ingredients ports.IngredientLookup,
) *KitchenReportService {
	return &KitchenReportService{Orders: orders, Components: components, Ingredients: ingredients}
}

// KitchenCount loads the orders of date, flags the clients whose restrictions
// clash with the ingredients of the day, and builds the report.
//
// Returns domain.ErrMissingSingleton when the kitchen does not have exactly
// one Sides component.
func (s *KitchenReportService) KitchenCount(ctx context.Context, date time.Time) (_ *KitchenReport, err error) {
	defer obs.Time(ctx, "kitchen_count")(&err)

	var (
		items []domain.KitchenItem
		sides []ports.Component
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		items, e = s.Orders.KitchenItems(gctx, date)
		if e != nil {
			return fmt.Errorf("list kitchen items: %w", e)
		}
		return nil
	})
	g.Go(func() error {
		var e error
		sides, e = s.Components.ComponentsByGroup(gctx, domain.GroupSides)
		if e != nil {
			return fmt.Errorf("list sides components: %w", e)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("kitchen count: %w", err)
	}

	if len(sides) != 1 {
		return nil, fmt.Errorf(
			"kitchen count: found %d components of group %q, want 1: %w",
			len(sides), domain.GroupSides, domain.ErrMissingSingleton,
		)
	}

	lookup := newMemoLookup(s.Ingredients)
	main, hasMain := mainDishOf(items)

	var mainIngredients, sidesIngredients []string
	g, gctx = errgroup.WithContext(ctx)
	if hasMain {
		g.Go(func() error {
			var e error
			mainIngredients, e = lookup.IngredientsFor(gctx, main.ComponentID, date)
			if e != nil {
				return fmt.Errorf("ingredients of main dish %q: %w", main.Name, e)
			}
			return nil
		})
	}
	g.Go(func() error {
		var e error
		sidesIngredients, e = lookup.IngredientsFor(gctx, sides[0].ComponentID, date)
		if e != nil {
			return fmt.Errorf("ingredients of sides: %w", e)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("kitchen count: %w", err)
	}

	items = AnnotateClashes(items, mainIngredients, sidesIngredients)

	componentLines, mealLines, err := MakeKitchenCountLines(ctx, items, date, lookup)
	if err != nil {
		return nil, err
	}

	labels := MakeMealLabels(items, main.Name, strings.Join(mainIngredients, ", "), date)

	specials := 0
	for _, it := range items {
		if it.IsSpecial() {
			specials++
		}
	}
	obs.SpecialMealsGauge.Set(float64(specials))

	return &KitchenReport{
		Date:           date,
		ComponentLines: componentLines,
		MealLines:      mealLines,
		Labels:         labels,
		NumLabels:      len(labels),
	}, nil
}

// mainDishOf returns the main dish component of the first order having one.
func mainDishOf(items []domain.KitchenItem) (domain.MealComponent, bool) {
	for _, it := range items {
		if c, ok := it.MealComponents[domain.GroupMainDish]; ok {
			return c, true
		}
	}
	return domain.MealComponent{}, false
}

// memoLookup remembers the ingredients already resolved for a component.
type memoLookup struct {
	next ports.IngredientLookup

	mu   sync.Mutex
	seen map[int][]string
}

func newMemoLookup(next ports.IngredientLookup) *memoLookup {
	return &memoLookup{next: next, seen: make(map[int][]string)}
}

func (m *memoLookup) IngredientsFor(ctx context.Context, componentID int, date time.Time) ([]string, error) {
	m.mu.Lock()
	cached, ok := m.seen[componentID]
	m.mu.Unlock()
	if ok {
		return cached, nil
	}

	ingredients, err := m.next.IngredientsFor(ctx, componentID, date)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.seen[componentID] = ingredients
	m.mu.Unlock()
	return ingredients, nil
}

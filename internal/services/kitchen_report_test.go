package services

import (
	"context"
	"errors"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sidesComponents(n int) *fakeComponents {
	sides := make([]ports.Component, 0, n)
	for i := 0; i < n; i++ {
		sides = append(sides, ports.Component{ComponentID: 50 + i, Name: "Sides", Group: domain.GroupSides})
	}
	return &fakeComponents{byGroup: map[domain.ComponentGroup][]ports.Component{domain.GroupSides: sides}}
}

func kitchenOrders() *fakeOrders {
	items := kitchenItems()
	for i := range items {
		items[i].IncompatibleIngredients = nil
	}
	return &fakeOrders{items: items}
}

func TestKitchenCount(t *testing.T) {
	ingredients := &fakeIngredients{byID: map[int][]string{
		10: {"pasta", "pork", "cheese"},
		50: {"nuts"},
	}}
	svc := NewKitchenReportService(kitchenOrders(), sidesComponents(1), ingredients)

	report, err := svc.KitchenCount(context.Background(), countDate)
	require.NoError(t, err)

	require.NotEmpty(t, report.ComponentLines)
	assert.Equal(t, "Lasagna", report.ComponentLines[0].Name)
	assert.Equal(t, "pasta, pork, cheese", report.ComponentLines[0].Ingredients)
	assert.Equal(t, 1, ingredients.called[10])
	assert.Equal(t, 1, ingredients.called[50])

	// Brun, Cote avoid pork; Dion avoids cheese.
	clashes := map[string]string{}
	for _, l := range report.MealLines {
		if l.Client == "SUBTOTAL" {
			clashes[l.IngredientClash] += "x"
		}
	}
	assert.Equal(t, map[string]string{"cheese": "x", "pork": "x"}, clashes)

	require.Equal(t, 4, report.NumLabels)
	require.Len(t, report.Labels, 4)
	for _, l := range report.Labels {
		if l.Name == "Brun, Al." {
			assert.Equal(t, []string{"DISH_CLASHES= pork"}, l.DishClashes)
			assert.Equal(t, []string{"SIDES_CLASHES= nuts"}, l.RequirementLines)
		}
		if l.Name == "Abel, Jo." {
			assert.Equal(t, "Lasagna", l.MainDishName)
			assert.Equal(t, []string{"INGREDIENTS : pasta, pork, cheese"}, l.MainDishIngredientLines)
		}
	}
}

func TestKitchenCountSidesSingleton(t *testing.T) {
	for _, n := range []int{0, 2} {
		svc := NewKitchenReportService(kitchenOrders(), sidesComponents(n), &fakeIngredients{})

		_, err := svc.KitchenCount(context.Background(), countDate)
		if !errors.Is(err, domain.ErrMissingSingleton) {
			t.Fatalf("%d sides: err = %v, want ErrMissingSingleton", n, err)
		}
	}
}

func TestKitchenCountNoOrders(t *testing.T) {
	svc := NewKitchenReportService(&fakeOrders{}, sidesComponents(1), &fakeIngredients{})

	report, err := svc.KitchenCount(context.Background(), countDate)
	require.NoError(t, err)
	assert.Zero(t, report.NumLabels)
	assert.Empty(t, report.ComponentLines)
	assert.Len(t, report.MealLines, 1)
}

func TestKitchenCountRepositoryError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewKitchenReportService(&fakeOrders{err: boom}, sidesComponents(1), &fakeIngredients{})

	_, err := svc.KitchenCount(context.Background(), countDate)
	assert.ErrorIs(t, err, boom)
}

package services

import (
	"context"
	"errors"
	"meal-delivery-service/internal/domain"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var countDate = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func kitchenItems() []domain.KitchenItem {
	main := func(qty int) domain.MealComponent {
		return domain.MealComponent{ComponentID: 10, Name: "Lasagna", Qty: qty}
	}
	return []domain.KitchenItem{
		{
			ClientID: 1, ClientName: "Abel, Jo.", RouteName: "Centre",
			MealSize: domain.SizeRegular, MealQty: 1,
			MealComponents: map[domain.ComponentGroup]domain.MealComponent{
				domain.GroupMainDish: main(1),
				domain.GroupDessert:  {ComponentID: 20, Name: "Pie", Qty: 1},
			},
		},
		{
			ClientID: 2, ClientName: "Brun, Al.", RouteName: "Centre",
			MealSize: domain.SizeLarge, MealQty: 2,
			MealComponents: map[domain.ComponentGroup]domain.MealComponent{
				domain.GroupMainDish: main(2),
				domain.GroupDessert:  {ComponentID: 20, Name: "Pie", Qty: 2},
			},
			AvoidIngredients:        []string{"nuts", "pork"},
			IncompatibleIngredients: []string{"pork"},
		},
		{
			ClientID: 3, ClientName: "Cote, Ma.", RouteName: "Sud",
			MealSize: domain.SizeRegular, MealQty: 1,
			MealComponents: map[domain.ComponentGroup]domain.MealComponent{
				domain.GroupMainDish:   main(1),
				domain.GroupGreenSalad: {ComponentID: 30, Name: "Salad", Qty: 1},
			},
			AvoidIngredients:        []string{"pork"},
			IncompatibleIngredients: []string{"pork"},
			RestrictedItems:         []string{"Coke"},
		},
		{
			ClientID: 4, ClientName: "Dion, Lu.", RouteName: "Sud",
			MealSize: domain.SizeRegular, MealQty: 3,
			MealComponents: map[domain.ComponentGroup]domain.MealComponent{
				domain.GroupMainDish: main(3),
			},
			AvoidIngredients:        []string{"eggs", "cheese"},
			IncompatibleIngredients: []string{"eggs", "cheese"},
		},
	}
}

func TestMakeKitchenCountLinesComponents(t *testing.T) {
	lookup := &fakeIngredients{byID: map[int][]string{10: {"pasta", "pork"}}}

	components, _, err := MakeKitchenCountLines(context.Background(), kitchenItems(), countDate, lookup)
	require.NoError(t, err)

	assert.Equal(t, []domain.ComponentLine{
		{ComponentGroup: domain.GroupMainDish, RegularQty: 5, LargeQty: 2, Name: "Lasagna", Ingredients: "pasta, pork"},
		{ComponentGroup: domain.GroupDessert, RegularQty: 3},
		{ComponentGroup: domain.GroupGreenSalad, RegularQty: 1},
	}, components)
	assert.Equal(t, 1, lookup.called[10], "main dish ingredients are resolved once")
}

func TestMakeKitchenCountLinesSpecials(t *testing.T) {
	_, meals, err := MakeKitchenCountLines(context.Background(), kitchenItems(), countDate, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.MealLine{
		{Client: "SUBTOTAL", RegularQty: "3", LargeQty: "0", IngredientClash: "cheese, eggs", Span: 2},
		{Client: "Dion, Lu.", RegularQty: "3", Span: -1},
		{Span: 1},
		{Client: "SUBTOTAL", RegularQty: "1", LargeQty: "2", IngredientClash: "pork", Span: 3},
		{Client: "Brun, Al.", LargeQty: "2", RestIngredients: "nuts", Span: -1},
		{Client: "Cote, Ma.", RegularQty: "1", RestItems: "Coke", Span: -1},
		{Span: 1},
		{RegularQty: "4", LargeQty: "2", IngredientClash: "TOTAL SPECIALS", Span: 1},
	}, meals)
}

func TestMakeKitchenCountLinesSubtotalsAddUp(t *testing.T) {
	_, meals, err := MakeKitchenCountLines(context.Background(), kitchenItems(), countDate, nil)
	require.NoError(t, err)

	regular, large := 0, 0
	for i, l := range meals {
		if l.Client != "SUBTOTAL" {
			continue
		}
		// The subtotal heads exactly Span-1 client rows.
		for j := i + 1; j < i+l.Span; j++ {
			assert.Equal(t, -1, meals[j].Span)
		}
		r, _ := strconv.Atoi(l.RegularQty)
		g, _ := strconv.Atoi(l.LargeQty)
		regular += r
		large += g
	}

	total := meals[len(meals)-1]
	assert.Equal(t, strconv.Itoa(regular), total.RegularQty)
	assert.Equal(t, strconv.Itoa(large), total.LargeQty)
}

func TestMakeKitchenCountLinesNoSpecial(t *testing.T) {
	items := []domain.KitchenItem{kitchenItems()[0]}

	components, meals, err := MakeKitchenCountLines(context.Background(), items, countDate, nil)
	require.NoError(t, err)

	require.Len(t, components, 2)
	assert.Equal(t, domain.GroupMainDish, components[0].ComponentGroup)
	assert.Empty(t, components[0].Ingredients)
	assert.Equal(t, []domain.MealLine{
		{RegularQty: "0", LargeQty: "0", IngredientClash: "TOTAL SPECIALS", Span: 1},
	}, meals)
}

func TestMakeKitchenCountLinesEmpty(t *testing.T) {
	components, meals, err := MakeKitchenCountLines(context.Background(), nil, countDate, nil)
	require.NoError(t, err)
	assert.Empty(t, components)
	assert.Len(t, meals, 1)
}

func TestMakeKitchenCountLinesWithoutMainDish(t *testing.T) {
	items := []domain.KitchenItem{{
		ClientName: "Abel, Jo.", MealSize: domain.SizeLarge, MealQty: 1,
		MealComponents: map[domain.ComponentGroup]domain.MealComponent{
			domain.GroupPudding: {ComponentID: 40, Name: "Rice pudding", Qty: 1},
		},
	}}

	components, _, err := MakeKitchenCountLines(context.Background(), items, countDate, &fakeIngredients{})
	require.NoError(t, err)
	assert.Equal(t, []domain.ComponentLine{{ComponentGroup: domain.GroupPudding, RegularQty: 1}}, components)
}

func TestMakeKitchenCountLinesMalformedClash(t *testing.T) {
	items := kitchenItems()
	items[1].IncompatibleIngredients = []string{"pork", "  "}

	_, _, err := MakeKitchenCountLines(context.Background(), items, countDate, nil)
	assert.ErrorIs(t, err, domain.ErrMalformedClashKey)
}

func TestMakeKitchenCountLinesLookupError(t *testing.T) {
	boom := errors.New("boom")

	_, _, err := MakeKitchenCountLines(context.Background(), kitchenItems(), countDate, &fakeIngredients{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestMakeKitchenCountLinesClashOrderIrrelevant(t *testing.T) {
	items := kitchenItems()
	items[1].IncompatibleIngredients = []string{"eggs", "cheese"}
	items[1].AvoidIngredients = []string{"cheese", "eggs"}

	_, meals, err := MakeKitchenCountLines(context.Background(), items, countDate, nil)
	require.NoError(t, err)

	// Brun joins Dion's combination, which sorts first.
	assert.Equal(t, "cheese, eggs", meals[0].IngredientClash)
	assert.Equal(t, 3, meals[0].Span)
	assert.Equal(t, "Brun, Al.", meals[1].Client)
	assert.Equal(t, "Dion, Lu.", meals[2].Client)
}

func TestSortComponentGroupsCaseInsensitive(t *testing.T) {
	groups := []domain.ComponentGroup{"pudding", "Dessert", "compote", "dessert"}

	sortComponentGroups(groups, func(g domain.ComponentGroup) domain.ComponentGroup { return g })

	assert.Equal(t, []domain.ComponentGroup{"compote", "Dessert", "dessert", "pudding"}, groups)
}

func TestAnnotateClashes(t *testing.T) {
	items := []domain.KitchenItem{
		{ClientName: "a", AvoidIngredients: []string{"pork", "nuts", "celery"}},
		{ClientName: "b"},
	}

	got := AnnotateClashes(items, []string{"pork", "pasta"}, []string{"celery"})

	assert.Equal(t, []string{"pork"}, got[0].IncompatibleIngredients)
	assert.Equal(t, []string{"celery"}, got[0].SidesClashes)
	assert.Empty(t, got[1].IncompatibleIngredients)
	assert.Empty(t, items[0].IncompatibleIngredients, "input is left untouched")
}

package services

import (
	"fmt"
	"meal-delivery-service/internal/domain"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	labelClashWidth      = 55
	labelIngredientWidth = 74

	specialDishPlaceholder = "SPECIAL _____________________________________"
	largeSizeTag           = "LARGE"
	labelDateLayout        = "Mon, Jan-02"
)

// MakeMealLabels builds one label per kitchen item, in the order they must
// be laid out on the label sheets: grouped by route, then by client name.
//
// Clients with a clash get a SPECIAL label listing the clashing ingredients;
// the others get today's main dish with its ingredients. Both kinds carry an
// optional block of extra requirements. An empty result means there are no
// orders for the day.
func MakeMealLabels(
	items []domain.KitchenItem,
	mainDishName string,
	mainDishIngredients string,
	date time.Time,
) []domain.MealLabel {
	labels := make([]domain.MealLabel, 0, len(items))
	for _, item := range items {
		labels = append(labels, mealLabel(item, mainDishName, mainDishIngredients, date))
	}

	routeWidth, nameWidth := 0, 0
	for _, l := range labels {
		routeWidth = max(routeWidth, utf8.RuneCountInString(l.Route))
		nameWidth = max(nameWidth, utf8.RuneCountInString(l.Name))
	}
	for i := range labels {
		labels[i].SortKey = fmt.Sprintf("%-*s%-*s", routeWidth, labels[i].Route, nameWidth, labels[i].Name)
	}

	slices.SortStableFunc(labels, func(a, b domain.MealLabel) int {
		return strings.Compare(a.SortKey, b.SortKey)
	})

	return labels
}

func mealLabel(item domain.KitchenItem, mainDishName, mainDishIngredients string, date time.Time) domain.MealLabel {
	label := domain.MealLabel{
		Route: item.RouteName,
		Name:  item.ClientName,
		Date:  date.Format(labelDateLayout),
	}
	if item.MealSize == domain.SizeLarge {
		label.Size = largeSizeTag
	}

	if item.IsSpecial() {
		label.MainDishName = specialDishPlaceholder
		label.DishClashes = WrapText(
			"DISH_CLASHES= "+strings.Join(domain.NormalizeSet(item.IncompatibleIngredients), " , "),
			labelClashWidth,
		)
	} else {
		label.MainDishName = mainDishName
		label.MainDishIngredientLines = WrapText(
			"INGREDIENTS : "+mainDishIngredients,
			labelIngredientWidth,
		)
	}

	if requirements := labelRequirements(item); requirements != "" {
		label.RequirementLines = WrapText(requirements, labelClashWidth)
	}

	return label
}

// labelRequirements merges sides clashes, preparation and other restrictions
// into one " / " separated text.
func labelRequirements(item domain.KitchenItem) string {
	parts := make([]string, 0, 3)

	if sides := domain.NormalizeSet(item.SidesClashes); len(sides) > 0 {
		parts = append(parts, "SIDES_CLASHES= "+strings.Join(sides, " , "))
	}
	if prep := domain.NormalizeSet(item.Preparation); len(prep) > 0 {
		parts = append(parts, "PREPARATION= "+strings.Join(prep, " , "))
	}

	other := domain.SetDifference(item.AvoidIngredients, item.IncompatibleIngredients, item.SidesClashes)
	other = append(other, domain.SetDifference(item.RestrictedItems, item.IncompatibleIngredients, item.SidesClashes)...)
	if len(other) > 0 {
		parts = append(parts, "OTHER_RESTRICTIONS= "+strings.Join(other, " , "))
	}

	return strings.Join(parts, " / ")
}

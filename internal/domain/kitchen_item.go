package domain

import (
	"slices"
	"strings"
)

// Size of the meal ordered by a client.
type MealSize string

const (
	SizeRegular MealSize = "R"
	SizeLarge   MealSize = "L"
)

// Category of dish composing a meal.
type ComponentGroup string

const (
	GroupMainDish   ComponentGroup = "main_dish"
	GroupDessert    ComponentGroup = "dessert"
	GroupDiabetic   ComponentGroup = "diabetic"
	GroupFruitSalad ComponentGroup = "fruit_salad"
	GroupGreenSalad ComponentGroup = "green_salad"
	GroupPudding    ComponentGroup = "pudding"
	GroupCompote    ComponentGroup = "compote"
	GroupSides      ComponentGroup = "sides"
)

// One dish category ordered by a client for the day.
type MealComponent struct {
	ComponentID int
	Name        string
	Qty         int
}

// Represents everything the kitchen needs to know about one client's
// order for a delivery day. Set-valued fields hold unique names; order
// carries no meaning.
type KitchenItem struct {
	OrderID    int
	ClientID   int
	ClientName string
	RouteName  string

	MealSize       MealSize
	MealQty        int
	MealComponents map[ComponentGroup]MealComponent

	AvoidIngredients        []string
	IncompatibleIngredients []string
	SidesClashes            []string
	Preparation             []string
	RestrictedItems         []string
}

// IsSpecial reports whether the client has at least one clash with today's main dish.
func (k KitchenItem) IsSpecial() bool { return len(k.IncompatibleIngredients) > 0 }

// ClientLabel builds the "Lastname, Fi." display name printed on reports and labels.
func ClientLabel(lastname, firstname string) string {
	r := []rune(firstname)
	if len(r) > 2 {
		r = r[:2]
	}
	return lastname + ", " + string(r) + "."
}

// NormalizeSet trims, drops blanks and duplicates, and sorts names.
func NormalizeSet(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// SetDifference returns the sorted names of a that are in none of the excluded sets.
func SetDifference(a []string, excluded ...[]string) []string {
	skip := make(map[string]struct{})
	for _, ex := range excluded {
		for _, n := range ex {
			skip[n] = struct{}{}
		}
	}
	out := make([]string, 0, len(a))
	for _, n := range a {
		if _, ok := skip[n]; ok {
			continue
		}
		out = append(out, n)
	}
	return NormalizeSet(out)
}

// SetIntersection returns the sorted names present in both a and b.
func SetIntersection(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, n := range b {
		in[n] = struct{}{}
	}
	out := make([]string, 0)
	for _, n := range a {
		if _, ok := in[n]; ok {
			out = append(out, n)
		}
	}
	return NormalizeSet(out)
}

package services

import (
	"context"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/ports"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

const (
	subtotalLabel      = "SUBTOTAL"
	totalSpecialsLabel = "TOTAL SPECIALS"

	// Joins clash names into a grouping key; must never occur inside a name.
	clashKeySeparator = "\x1f"
)

// MakeKitchenCountLines builds the two sections of the kitchen count report.
//
// The first section sums, per component group, the quantities to cook; the
// main dish is split by meal size and always comes first. The second section
// lists clients whose meal clashes with today's main dish, grouped by identical
// clash combination with a SUBTOTAL row heading each group and a final
// TOTAL SPECIALS row.
//
// lookup resolves the ingredients of the main dish for date; it may be nil,
// in which case the ingredient text is left empty.
func MakeKitchenCountLines(
	ctx context.Context,
	items []domain.KitchenItem,
	date time.Time,
	lookup ports.IngredientLookup,
) ([]domain.ComponentLine, []domain.MealLine, error) {
	componentLines, err := makeComponentLines(ctx, items, date, lookup)
	if err != nil {
		return nil, nil, fmt.Errorf("kitchen count: %w", err)
	}

	mealLines, err := makeMealLines(items)
	if err != nil {
		return nil, nil, fmt.Errorf("kitchen count: %w", err)
	}

	return componentLines, mealLines, nil
}

func makeComponentLines(
	ctx context.Context,
	items []domain.KitchenItem,
	date time.Time,
	lookup ports.IngredientLookup,
) ([]domain.ComponentLine, error) {
	lines := make(map[domain.ComponentGroup]*domain.ComponentLine)
	mainDishResolved := false

	for _, item := range items {
		for group, component := range item.MealComponents {
			line, ok := lines[group]
			if !ok {
				line = &domain.ComponentLine{ComponentGroup: group}
				lines[group] = line
			}

			if group == domain.GroupMainDish && !mainDishResolved {
				mainDishResolved = true
				line.Name = component.Name
				if lookup != nil {
					ingredients, err := lookup.IngredientsFor(ctx, component.ComponentID, date)
					if err != nil {
						return nil, fmt.Errorf(
							"ingredients of main dish %q: %w",
							component.Name, err,
						)
					}
					line.Ingredients = strings.Join(ingredients, ", ")
				}
			}

			if group == domain.GroupMainDish && item.MealSize == domain.SizeLarge {
				line.LargeQty += component.Qty
			} else {
				line.RegularQty += component.Qty
			}
		}
	}

	out := make([]domain.ComponentLine, 0, len(lines))
	if main, ok := lines[domain.GroupMainDish]; ok {
		out = append(out, *main)
	}

	others := make([]domain.ComponentLine, 0, len(lines))
	for group, line := range lines {
		if group != domain.GroupMainDish {
			others = append(others, *line)
		}
	}
	sortComponentGroups(others, func(l domain.ComponentLine) domain.ComponentGroup { return l.ComponentGroup })

	return append(out, others...), nil
}

// sortComponentGroups orders lines case-insensitively by group identifier,
// falling back to a byte comparison so that the order stays total.
func sortComponentGroups[T any](lines []T, group func(T) domain.ComponentGroup) {
	// A Caser keeps state, so each call gets its own.
	folder := cases.Fold()
	folded := make(map[domain.ComponentGroup]string, len(lines))
	for _, l := range lines {
		g := group(l)
		if _, ok := folded[g]; !ok {
			folded[g] = folder.String(string(g))
		}
	}

	slices.SortFunc(lines, func(a, b T) int {
		ga, gb := group(a), group(b)
		if c := strings.Compare(folded[ga], folded[gb]); c != 0 {
			return c
		}
		return strings.Compare(string(ga), string(gb))
	})
}

type specialMeal struct {
	item    domain.KitchenItem
	key     string
	clashes []string
}

func makeMealLines(items []domain.KitchenItem) ([]domain.MealLine, error) {
	specials := make([]specialMeal, 0, len(items))
	for _, item := range items {
		if !item.IsSpecial() {
			continue
		}

		key, clashes, err := clashKey(item.IncompatibleIngredients)
		if err != nil {
			return nil, fmt.Errorf("client %q: %w", item.ClientName, err)
		}
		specials = append(specials, specialMeal{item: item, key: key, clashes: clashes})
	}

	// Stable so that clients of a combination keep their input order.
	slices.SortStableFunc(specials, func(a, b specialMeal) int {
		return strings.Compare(a.key, b.key)
	})

	lines := make([]domain.MealLine, 0, 2*len(specials)+1)
	regularTotal, largeTotal := 0, 0

	for start := 0; start < len(specials); {
		end := start + 1
		for end < len(specials) && specials[end].key == specials[start].key {
			end++
		}
		run := specials[start:end]

		subtotalAt := len(lines)
		lines = append(lines, domain.MealLine{})

		regularSub, largeSub := 0, 0
		for _, s := range run {
			line := mealLine(s.item)
			line.Span = -1
			lines = append(lines, line)
			regularSub, largeSub = cumulate(regularSub, largeSub, s.item)
		}

		lines[subtotalAt] = domain.MealLine{
			Client:          subtotalLabel,
			RegularQty:      strconv.Itoa(regularSub),
			LargeQty:        strconv.Itoa(largeSub),
			IngredientClash: strings.Join(run[0].clashes, ", "),
			Span:            len(run) + 1,
		}
		lines = append(lines, blankMealLine())

		regularTotal += regularSub
		largeTotal += largeSub
		start = end
	}

	total := blankMealLine()
	total.RegularQty = strconv.Itoa(regularTotal)
	total.LargeQty = strconv.Itoa(largeTotal)
	total.IngredientClash = totalSpecialsLabel

	return append(lines, total), nil
}

// clashKey renders a clash set into a deterministic grouping key and the
// sorted names it was built from.
func clashKey(clashes []string) (string, []string, error) {
	names := make([]string, 0, len(clashes))
	for _, c := range clashes {
		c = strings.TrimSpace(c)
		if c == "" {
			return "", nil, fmt.Errorf("%w: blank ingredient name", domain.ErrMalformedClashKey)
		}
		if strings.Contains(c, clashKeySeparator) {
			return "", nil, fmt.Errorf("%w: ingredient %q contains a separator", domain.ErrMalformedClashKey, c)
		}
		names = append(names, c)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	return strings.Join(names, clashKeySeparator), names, nil
}

// mealLine builds the row of one special client.
func mealLine(item domain.KitchenItem) domain.MealLine {
	line := domain.MealLine{
		Client:          item.ClientName,
		RestIngredients: strings.Join(domain.SetDifference(item.AvoidIngredients, item.IncompatibleIngredients), ", "),
		RestItems:       strings.Join(domain.NormalizeSet(item.RestrictedItems), ", "),
		Span:            1,
	}
	if item.MealSize == domain.SizeLarge {
		line.LargeQty = strconv.Itoa(item.MealQty)
	} else {
		line.RegularQty = strconv.Itoa(item.MealQty)
	}
	return line
}

func cumulate(regular, large int, item domain.KitchenItem) (int, int) {
	if item.MealSize == domain.SizeLarge {
		return regular, large + item.MealQty
	}
	return regular + item.MealQty, large
}

func blankMealLine() domain.MealLine {
	return domain.MealLine{Span: 1}
}

// AnnotateClashes fills the clash sets of each item from its avoided
// ingredients and the ingredients actually used today in the main dish
// and in the sides.
func AnnotateClashes(items []domain.KitchenItem, mainDishIngredients, sidesIngredients []string) []domain.KitchenItem {
	out := make([]domain.KitchenItem, len(items))
	for i, item := range items {
		item.IncompatibleIngredients = domain.SetIntersection(item.AvoidIngredients, mainDishIngredients)
		item.SidesClashes = domain.SetIntersection(item.AvoidIngredients, sidesIngredients)
		out[i] = item
	}
	return out
}

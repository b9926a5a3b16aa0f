package services

import "meal-delivery-service/internal/domain"

// MakeRouteSheetLines sums the items to load for a route, per component group.
// Main dish quantities are split by size; every other group is counted as
// regular. The main dish line comes first, the others follow by group name.
func MakeRouteSheetLines(deliveries []domain.RouteDelivery) []domain.RouteSummaryLine {
	lines := make(map[domain.ComponentGroup]*domain.RouteSummaryLine)

	for _, d := range deliveries {
		for _, item := range d.DeliveryItems {
			group := item.ComponentGroup
			if group == "" {
				continue
			}

			line, ok := lines[group]
			if !ok {
				line = &domain.RouteSummaryLine{ComponentGroup: group}
				lines[group] = line
			}

			if group == domain.GroupMainDish && item.Size == domain.SizeLarge {
				line.LargeQty += item.TotalQuantity
			} else {
				line.RegularQty += item.TotalQuantity
			}
		}
	}

	out := make([]domain.RouteSummaryLine, 0, len(lines))
	if main, ok := lines[domain.GroupMainDish]; ok {
		out = append(out, *main)
	}

	others := make([]domain.RouteSummaryLine, 0, len(lines))
	for group, line := range lines {
		if group != domain.GroupMainDish {
			others = append(others, *line)
		}
	}
	sortComponentGroups(others, func(l domain.RouteSummaryLine) domain.ComponentGroup { return l.ComponentGroup })

	return append(out, others...)
}

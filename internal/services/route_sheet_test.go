package services

import (
	"meal-delivery-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeRouteSheetLines(t *testing.T) {
	deliveries := []domain.RouteDelivery{
		{ClientID: 1, DeliveryItems: []domain.DeliveryItem{
			{ComponentGroup: domain.GroupMainDish, Size: domain.SizeLarge, TotalQuantity: 2},
			{ComponentGroup: domain.GroupPudding, Size: domain.SizeLarge, TotalQuantity: 1},
		}},
		{ClientID: 2, DeliveryItems: []domain.DeliveryItem{
			{ComponentGroup: domain.GroupMainDish, Size: domain.SizeRegular, TotalQuantity: 1},
			{ComponentGroup: domain.GroupDessert, Size: domain.SizeRegular, TotalQuantity: 1},
			{ComponentGroup: "", TotalQuantity: 5},
		}},
	}

	got := MakeRouteSheetLines(deliveries)

	assert.Equal(t, []domain.RouteSummaryLine{
		{ComponentGroup: domain.GroupMainDish, RegularQty: 1, LargeQty: 2},
		{ComponentGroup: domain.GroupDessert, RegularQty: 1},
		{ComponentGroup: domain.GroupPudding, RegularQty: 1},
	}, got)
}

func TestMakeRouteSheetLinesEmpty(t *testing.T) {
	assert.Empty(t, MakeRouteSheetLines(nil))
}

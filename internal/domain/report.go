package domain

// Component summary line on the kitchen count report.
// Name and Ingredients are only populated for the main dish.
type ComponentLine struct {
	ComponentGroup ComponentGroup
	RegularQty     int
	LargeQty       int
	Name           string
	Ingredients    string
}

// Special meal line on the kitchen count report.
//
// Span drives grouped row rendering: N > 1 on a SUBTOTAL row means the
// clash cell covers N rows, -1 means the clash cell is already shown above,
// 1 is an ordinary row.
type MealLine struct {
	Client          string
	RegularQty      string
	LargeQty        string
	IngredientClash string
	RestIngredients string
	RestItems       string
	Span            int
}

// Printable contents of one meal label.
type MealLabel struct {
	SortKey                 string
	Route                   string
	Name                    string
	Date                    string
	Size                    string
	MainDishName            string
	MainDishIngredientLines []string
	DishClashes             []string
	RequirementLines        []string
}

// Quantity of one component to load for a delivery, as listed on a route sheet.
type DeliveryItem struct {
	ComponentGroup ComponentGroup
	Size           MealSize
	TotalQuantity  int
}

// Client stop on a route sheet with the items to hand over.
type RouteDelivery struct {
	ClientID      int
	ClientName    string
	Address       string
	DeliveryItems []DeliveryItem
}

// Summary line of a route sheet.
type RouteSummaryLine struct {
	ComponentGroup ComponentGroup
	RegularQty     int
	LargeQty       int
}

package dto

type ComponentLineResponse struct {
	ComponentGroup string `json:"component_group"`
	RegularQty     int    `json:"regular_qty"`
	LargeQty       int    `json:"large_qty"`
	Name           string `json:"name,omitempty"`
	Ingredients    string `json:"ingredients,omitempty"`
}

type MealLineResponse struct {
	Client          string `json:"client"`
	RegularQty      string `json:"regular_qty"`
	LargeQty        string `json:"large_qty"`
	IngredientClash string `json:"ingredient_clash"`
	RestIngredients string `json:"rest_ingredients"`
	RestItems       string `json:"rest_items"`
	Span            int    `json:"span"`
}

type KitchenCountResponse struct {
	Date           string                  `json:"date"`
	ComponentLines []ComponentLineResponse `json:"component_lines"`
	MealLines      []MealLineResponse      `json:"meal_lines"`
	NumLabels      int                     `json:"num_labels"`
}

type MealLabelResponse struct {
	Route                   string   `json:"route"`
	Name                    string   `json:"name"`
	Date                    string   `json:"date"`
	Size                    string   `json:"size"`
	MainDishName            string   `json:"main_dish_name"`
	MainDishIngredientLines []string `json:"main_dish_ingredients"`
	DishClashes             []string `json:"dish_clashes"`
	RequirementLines        []string `json:"requirements"`
}

type MealLabelsResponse struct {
	Date      string              `json:"date"`
	NumLabels int                 `json:"num_labels"`
	Labels    []MealLabelResponse `json:"labels"`
}

package models

// Nutrient names tracked by the dataset and the bounds provider
const (
	NutrientCalories = "calories"
	NutrientProtein  = "protein"
	NutrientFat      = "fat"
	NutrientSodium   = "sodium"
)

// Dish represents a recipe available for recommendation
// Loaded once from the dataset and never mutated afterwards
type Dish struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Rating    float64            `json:"rating"`
	Nutrients map[string]float64 `json:"nutrients"`

	Summer          bool `json:"summer"`
	Winter          bool `json:"winter"`
	Breakfast       bool `json:"breakfast"`
	LowCal          bool `json:"low_cal"`
	IngredientCount int  `json:"len_ingredients"`
	DirectionCount  int  `json:"len_directions"`
}

// Amount returns the dish's amount of the given nutrient, or 0 when unknown
func (d Dish) Amount(nutrient string) float64 {
	return d.Nutrients[nutrient]
}

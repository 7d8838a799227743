package models

// PersonalInformation represents the body of a profile-based recommendation request
// Zero-valued fields are filled from DefaultPersonalInformation before decoding
type PersonalInformation struct {
	NumberOfDishes     int     `json:"number_of_dishes" validate:"gt=0,lte=50"`
	NumberOfCandidates int     `json:"number_of_candidates" validate:"gt=0,lte=100"`
	CurrentWeight      float64 `json:"current_weight" validate:"gt=0"`
	DesiredWeight      float64 `json:"desired_weight" validate:"gt=0"`
	Height             float64 `json:"height" validate:"gt=0"`
	Age                int     `json:"age" validate:"gt=0,lte=150"`
	Gender             string  `json:"gender" validate:"required"`
	ActivityLevel      string  `json:"activity_level"`
}

// DefaultPersonalInformation returns the profile used when the request omits fields
func DefaultPersonalInformation() PersonalInformation {
	return PersonalInformation{
		NumberOfDishes:     5,
		NumberOfCandidates: 10,
		CurrentWeight:      60,
		DesiredWeight:      65,
		Height:             175,
		Age:                22,
		Gender:             "Male",
		ActivityLevel:      "moderate",
	}
}

// RecipeRequest represents a recommendation request with explicit nutrient bounds
type RecipeRequest struct {
	NumberOfDishes     int            `json:"number_of_dishes" validate:"gt=0,lte=50"`
	NumberOfCandidates int            `json:"number_of_candidates" validate:"gt=0,lte=100"`
	NutConf            NutrientConfig `json:"nut_conf"`
}

// DefaultRecipeRequest returns the request used when the body omits fields
func DefaultRecipeRequest() RecipeRequest {
	return RecipeRequest{
		NumberOfDishes:     5,
		NumberOfCandidates: 10,
		NutConf:            DefaultNutrientConfig(),
	}
}

// DishFilter selects the catalog subset a request draws from
type DishFilter struct {
	Season      string `json:"season,omitempty"`
	MealType    string `json:"meal_type,omitempty"`
	QuickRecipe bool   `json:"quick_recipe,omitempty"`
}

// DefaultDishFilter returns the filter applied when query parameters are absent
func DefaultDishFilter() DishFilter {
	return DishFilter{
		Season:   "summer",
		MealType: "breakfast",
	}
}

// ProfileSummary reports the energy figures derived from a personal profile
type ProfileSummary struct {
	BMR        float64 `json:"bmr"`
	TDEE       float64 `json:"tdee"`
	CalorieMin float64 `json:"calorie_min"`
	CalorieMax float64 `json:"calorie_max"`
	DaysToGoal float64 `json:"days_to_goal"`
}

// Recommendation represents the response of a recommendation request
// Recommendations holds one list of dish titles per candidate round
type Recommendation struct {
	ID              string          `json:"id"`
	Recommendations [][]string      `json:"recommendations"`
	Reason          string          `json:"reason"`
	CatalogSize     int             `json:"catalog_size"`
	Profile         *ProfileSummary `json:"profile,omitempty"`
	Bounds          NutrientBounds  `json:"bounds"`
}

package service

import (
	"strings"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

// Quick recipe limits
const (
	QuickMaxIngredients = 9
	QuickMaxDirections  = 3
)

// Matches reports whether dish passes every predicate of filter.
// Unrecognized season or meal type values do not filter.
func Matches(dish models.Dish, filter models.DishFilter) bool {
	switch strings.ToLower(strings.TrimSpace(filter.Season)) {
	case "summer":
		if !dish.Summer {
			return false
		}
	case "winter":
		if !dish.Winter {
			return false
		}
	}

	switch strings.ToLower(strings.TrimSpace(filter.MealType)) {
	case "breakfast":
		if !dish.Breakfast {
			return false
		}
	case "low_cal":
		if !dish.LowCal {
			return false
		}
	}

	if filter.QuickRecipe {
		if dish.IngredientCount > QuickMaxIngredients || dish.DirectionCount > QuickMaxDirections {
			return false
		}
	}

	return true
}

// ApplyFilter returns the dishes matching filter in catalog order
func ApplyFilter(dishes []models.Dish, filter models.DishFilter) []models.Dish {
	filtered := make([]models.Dish, 0, len(dishes))
	for _, dish := range dishes {
		if Matches(dish, filter) {
			filtered = append(filtered, dish)
		}
	}
	return filtered
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

// parseFilter reads the season, meal_type and quick_recipe query parameters.
// Absent parameters take the recommendation defaults when withDefaults is set.
func parseFilter(r *http.Request, withDefaults bool) (models.DishFilter, error) {
	var filter models.DishFilter
	if withDefaults {
		filter = models.DefaultDishFilter()
	}

	query := r.URL.Query()
	if query.Has("season") {
		filter.Season = query.Get("season")
	}
	if query.Has("meal_type") {
		filter.MealType = query.Get("meal_type")
	}
	if raw := query.Get("quick_recipe"); raw != "" {
		quick, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid quick_recipe value: %q", raw)
		}
		filter.QuickRecipe = quick
	}

	return filter, nil
}

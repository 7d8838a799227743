package candidates

import (
	"math"
	"sort"

	"github.com/levi3112/Dishes-Recommendation-API/internal/ilp"
	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

// ConstraintDishCount names the cardinality constraint of a selection model
const ConstraintDishCount = "dish_count"

// BuildModel translates a pool of dishes into a binary selection program.
//
// Variable i selects pool[i]. The objective maximizes total rating; at most
// maxDishes variables may be set, and for every nutrient in bounds the
// selected amounts must sum into [Lower, Upper]. Nutrients are emitted in
// name order so equal inputs give equal models. An empty pool gives an
// empty model.
func BuildModel(pool []models.Dish, bounds models.NutrientBounds, maxDishes int) *ilp.Model {
	if len(pool) == 0 {
		return ilp.NewModel(0)
	}

	m := ilp.NewModel(len(pool))
	count := make([]float64, len(pool))
	for i, dish := range pool {
		m.Objective[i] = dish.Rating
		count[i] = 1
	}
	m.AddConstraint(ConstraintDishCount, count, ilp.LessOrEqual, float64(maxDishes))

	for _, nutrient := range sortedNutrients(bounds) {
		r := bounds[nutrient]
		amounts := make([]float64, len(pool))
		for i, dish := range pool {
			amounts[i] = dish.Amount(nutrient)
		}
		m.AddConstraint(nutrient+"_min", amounts, ilp.GreaterOrEqual, r.Lower)
		m.AddConstraint(nutrient+"_max", amounts, ilp.LessOrEqual, r.Upper)
	}

	return m
}

func sortedNutrients(bounds models.NutrientBounds) []string {
	names := make([]string, 0, len(bounds))
	for name := range bounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateRequest rejects malformed bounds and non-positive limits
func ValidateRequest(bounds models.NutrientBounds, numberOfDishes, numberOfCandidates int) error {
	if numberOfDishes <= 0 {
		return &ConfigurationError{Field: "number_of_dishes", Reason: "must be positive"}
	}
	if numberOfCandidates <= 0 {
		return &ConfigurationError{Field: "number_of_candidates", Reason: "must be positive"}
	}
	for _, nutrient := range sortedNutrients(bounds) {
		r := bounds[nutrient]
		if math.IsNaN(r.Lower) || math.IsNaN(r.Upper) {
			return &ConfigurationError{Field: nutrient, Reason: "bound is not a number"}
		}
		if r.Lower > r.Upper {
			return &ConfigurationError{Field: nutrient, Reason: "lower bound exceeds upper bound"}
		}
	}
	return nil
}

// Package nutrition derives daily nutrient bounds from a personal profile.
package nutrition

import (
	"math"
	"strings"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

const (
	// DefaultCalorieChangePerDay is the daily surplus or deficit around TDEE
	DefaultCalorieChangePerDay = 1500.0
	// CaloriesPerKilogram is the energy content of one kilogram of body weight
	CaloriesPerKilogram = 7700.0
)

// Activity multipliers applied to BMR
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// BMR returns the basal metabolic rate (Mifflin-St Jeor) in kcal/day.
// gender "male" is matched case-insensitively, anything else uses the female constant.
func BMR(weight, height float64, age int, gender string) float64 {
	base := 10*weight + 6.25*height - 5*float64(age)
	if strings.EqualFold(strings.TrimSpace(gender), "male") {
		return base + 5
	}
	return base - 161
}

// ActivityMultiplier returns the TDEE multiplier for level, 1.2 when unknown
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[strings.ToLower(strings.TrimSpace(level))]; ok {
		return m
	}
	return activityMultipliers["sedentary"]
}

// TDEE returns the total daily energy expenditure
func TDEE(bmr float64, level string) float64 {
	return bmr * ActivityMultiplier(level)
}

// CalorieRange returns the daily calorie window around tdee
func CalorieRange(tdee, changePerDay float64) models.Range {
	return models.Range{Lower: tdee - changePerDay, Upper: tdee + changePerDay}
}

// DaysToGoal returns the days needed to move from current to desired weight
func DaysToGoal(current, desired, changePerDay float64) float64 {
	if changePerDay == 0 {
		return math.Inf(1)
	}
	return math.Abs((desired - current) * CaloriesPerKilogram / changePerDay)
}

// Calculator turns a personal profile into nutrient bounds
type Calculator struct {
	changePerDay float64
	base         models.NutrientConfig
}

// NewCalculator creates a calculator. A non-positive changePerDay uses the default.
func NewCalculator(changePerDay float64) *Calculator {
	if changePerDay <= 0 {
		changePerDay = DefaultCalorieChangePerDay
	}
	return &Calculator{
		changePerDay: changePerDay,
		base:         models.DefaultNutrientConfig(),
	}
}

// Bounds returns the nutrient bounds for info and the figures they came from.
// The calorie window replaces the default calorie bounds; the other nutrients keep theirs.
// Implausible windows are passed through and rejected downstream.
func (c *Calculator) Bounds(info models.PersonalInformation) (models.NutrientBounds, models.ProfileSummary) {
	bmr := BMR(info.CurrentWeight, info.Height, info.Age, info.Gender)
	tdee := TDEE(bmr, info.ActivityLevel)
	window := CalorieRange(tdee, c.changePerDay)

	cfg := c.base
	cfg.CalLo = window.Lower
	cfg.CalUp = window.Upper

	return cfg.Bounds(), models.ProfileSummary{
		BMR:        bmr,
		TDEE:       tdee,
		CalorieMin: window.Lower,
		CalorieMax: window.Upper,
		DaysToGoal: DaysToGoal(info.CurrentWeight, info.DesiredWeight, c.changePerDay),
	}
}

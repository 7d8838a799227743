package models

// Range is an inclusive [Lower, Upper] interval for one nutrient
type Range struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies within the range, inclusive
func (r Range) Contains(v float64) bool {
	return v >= r.Lower && v <= r.Upper
}

// NutrientBounds maps a nutrient name to its allowed aggregate range
type NutrientBounds map[string]Range

// NutrientConfig is the explicit per-nutrient bound set accepted by the API
// Field names and defaults match the original recommendation service
type NutrientConfig struct {
	CalLo float64 `json:"cal_lo"`
	CalUp float64 `json:"cal_up"`
	ProLo float64 `json:"pro_lo"`
	ProUp float64 `json:"pro_up"`
	FatLo float64 `json:"fat_lo"`
	FatUp float64 `json:"fat_up"`
	SodLo float64 `json:"sod_lo"`
	SodUp float64 `json:"sod_up"`
}

// DefaultNutrientConfig returns the default daily bounds
func DefaultNutrientConfig() NutrientConfig {
	return NutrientConfig{
		CalLo: 2000,
		CalUp: 2500,
		ProLo: 50,
		ProUp: 150,
		FatLo: 20,
		FatUp: 70,
		SodLo: 1000,
		SodUp: 2300,
	}
}

// Bounds converts the config into a NutrientBounds record
func (c NutrientConfig) Bounds() NutrientBounds {
	return NutrientBounds{
		NutrientCalories: {Lower: c.CalLo, Upper: c.CalUp},
		NutrientProtein:  {Lower: c.ProLo, Upper: c.ProUp},
		NutrientFat:      {Lower: c.FatLo, Upper: c.FatUp},
		NutrientSodium:   {Lower: c.SodLo, Upper: c.SodUp},
	}
}

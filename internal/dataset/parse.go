package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

// Column names of the recipe dataset
const (
	ColumnTitle       = "title"
	ColumnRating      = "rating"
	ColumnSummer      = "summer"
	ColumnWinter      = "winter"
	ColumnBreakfast   = "breakfast"
	ColumnLowCal      = "low cal"
	ColumnIngredients = "len_ingredients"
	ColumnDirections  = "len_directions"
)

var nutrientColumns = []string{
	models.NutrientCalories,
	models.NutrientProtein,
	models.NutrientFat,
	models.NutrientSodium,
}

// Parse reads a CSV dataset with a header row.
// Rows with an empty or non-numeric rating or nutrient are skipped and counted.
func Parse(r io.Reader) ([]models.Dish, SourceStats, error) {
	var st SourceStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, st, fmt.Errorf("%w: empty dataset", ErrMissingColumn)
		}
		return nil, st, fmt.Errorf("failed to read header: %w", err)
	}

	cols := indexColumns(header)
	required := append([]string{ColumnTitle, ColumnRating}, nutrientColumns...)
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, st, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	dishes := make([]models.Dish, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, st, fmt.Errorf("error reading row %d: %w", st.Rows+1, err)
		}
		st.Rows++

		dish, ok := parseRow(record, cols)
		if !ok {
			st.Skipped++
			continue
		}
		dishes = append(dishes, dish)
	}

	st.Loaded = len(dishes)
	return dishes, st, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "low_cal" {
			name = ColumnLowCal
		}
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func parseRow(record []string, cols map[string]int) (models.Dish, bool) {
	title := strings.TrimSpace(field(record, cols, ColumnTitle))
	if title == "" {
		return models.Dish{}, false
	}

	rating, ok := number(field(record, cols, ColumnRating))
	if !ok {
		return models.Dish{}, false
	}

	nutrients := make(map[string]float64, len(nutrientColumns))
	for _, name := range nutrientColumns {
		v, ok := number(field(record, cols, name))
		if !ok {
			return models.Dish{}, false
		}
		nutrients[name] = v
	}

	return models.Dish{
		Title:           title,
		Rating:          rating,
		Nutrients:       nutrients,
		Summer:          flag(field(record, cols, ColumnSummer)),
		Winter:          flag(field(record, cols, ColumnWinter)),
		Breakfast:       flag(field(record, cols, ColumnBreakfast)),
		LowCal:          flag(field(record, cols, ColumnLowCal)),
		IngredientCount: count(field(record, cols, ColumnIngredients)),
		DirectionCount:  count(field(record, cols, ColumnDirections)),
	}, true
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func number(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// flag treats any non-zero number as true
func flag(s string) bool {
	v, ok := number(s)
	return ok && v != 0
}

// count parses an integer-valued column, missing values count as 0
func count(s string) int {
	v, ok := number(s)
	if !ok {
		return 0
	}
	return int(v)
}

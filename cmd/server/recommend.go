package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/levi3112/Dishes-Recommendation-API/internal/config"
	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
	"github.com/levi3112/Dishes-Recommendation-API/pkg/logger"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate recommendations offline",
	Long:  "Loads the dish catalog and runs the recommendation engine once, printing the JSON response. Bounds come from the personal profile flags unless any explicit bound flag is set.",
	RunE:  runRecommend,
}

var (
	recommendDatasets   []string
	recommendSeason     string
	recommendMealType   string
	recommendQuick      bool
	recommendDishes     int
	recommendCandidates int
	recommendProfile    = models.DefaultPersonalInformation()
	recommendBounds     = models.DefaultNutrientConfig()
)

// boundFlags name the flags that switch the command to explicit bounds
var boundFlags = []string{"cal-lo", "cal-up", "pro-lo", "pro-up", "fat-lo", "fat-up", "sod-lo", "sod-up"}

func init() {
	defaults := models.DefaultPersonalInformation()
	flags := recommendCmd.Flags()

	flags.StringSliceVarP(&recommendDatasets, "dataset", "d", nil, "Dataset path or URL, repeatable (defaults to the configured sources)")
	flags.StringVar(&recommendSeason, "season", "summer", "Season filter: summer, winter, or empty for all")
	flags.StringVar(&recommendMealType, "meal-type", "breakfast", "Meal type filter: breakfast, low_cal, or empty for all")
	flags.BoolVar(&recommendQuick, "quick", false, "Only quick recipes")
	flags.IntVar(&recommendDishes, "dishes", defaults.NumberOfDishes, "Maximum dishes per candidate set")
	flags.IntVar(&recommendCandidates, "candidates", defaults.NumberOfCandidates, "Maximum number of candidate sets")

	flags.Float64Var(&recommendProfile.CurrentWeight, "weight", defaults.CurrentWeight, "Current weight in kg")
	flags.Float64Var(&recommendProfile.DesiredWeight, "desired-weight", defaults.DesiredWeight, "Desired weight in kg")
	flags.Float64Var(&recommendProfile.Height, "height", defaults.Height, "Height in cm")
	flags.IntVar(&recommendProfile.Age, "age", defaults.Age, "Age in years")
	flags.StringVar(&recommendProfile.Gender, "gender", defaults.Gender, "Gender: Male or Female")
	flags.StringVar(&recommendProfile.ActivityLevel, "activity", defaults.ActivityLevel, "Activity level: sedentary, light, moderate, active, very_active")

	bounds := models.DefaultNutrientConfig()
	flags.Float64Var(&recommendBounds.CalLo, "cal-lo", bounds.CalLo, "Calories lower bound")
	flags.Float64Var(&recommendBounds.CalUp, "cal-up", bounds.CalUp, "Calories upper bound")
	flags.Float64Var(&recommendBounds.ProLo, "pro-lo", bounds.ProLo, "Protein lower bound")
	flags.Float64Var(&recommendBounds.ProUp, "pro-up", bounds.ProUp, "Protein upper bound")
	flags.Float64Var(&recommendBounds.FatLo, "fat-lo", bounds.FatLo, "Fat lower bound")
	flags.Float64Var(&recommendBounds.FatUp, "fat-up", bounds.FatUp, "Fat upper bound")
	flags.Float64Var(&recommendBounds.SodLo, "sod-lo", bounds.SodLo, "Sodium lower bound")
	flags.Float64Var(&recommendBounds.SodUp, "sod-up", bounds.SodUp, "Sodium upper bound")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if len(recommendDatasets) > 0 {
		cfg.Dataset.Paths = recommendDatasets
	}

	// Logs go to stderr so stdout carries only the JSON response
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	ctx := context.Background()
	dishes, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	app := newApplication(cfg, log, dishes)
	filter := models.DishFilter{
		Season:      recommendSeason,
		MealType:    recommendMealType,
		QuickRecipe: recommendQuick,
	}

	var rec *models.Recommendation
	if explicitBounds(cmd) {
		rec, err = app.recommender.RecommendCustom(ctx, models.RecipeRequest{
			NumberOfDishes:     recommendDishes,
			NumberOfCandidates: recommendCandidates,
			NutConf:            recommendBounds,
		}, filter)
	} else {
		info := recommendProfile
		info.NumberOfDishes = recommendDishes
		info.NumberOfCandidates = recommendCandidates
		rec, err = app.recommender.Recommend(ctx, info, filter)
	}
	if err != nil {
		return fmt.Errorf("failed to generate recommendations: %w", err)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation to JSON: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

// explicitBounds reports whether any nutrient bound flag was set on the command line
func explicitBounds(cmd *cobra.Command) bool {
	for _, name := range boundFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

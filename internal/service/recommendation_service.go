package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/levi3112/Dishes-Recommendation-API/internal/candidates"
	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
	"github.com/levi3112/Dishes-Recommendation-API/internal/validation"
)

var (
	ErrInvalidRequest = errors.New("invalid recommendation request")
	ErrInvalidDishID  = errors.New("invalid dish id")
	ErrBusy           = errors.New("recommendation engine unavailable")
)

// CatalogRepository interface for catalog access
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]models.Dish, error)
}

// CandidateGenerator interface for the round extractor
type CandidateGenerator interface {
	Generate(ctx context.Context, catalog []models.Dish, bounds models.NutrientBounds, numberOfDishes, numberOfCandidates int) (*candidates.Result, error)
}

// BoundsCalculator interface for the nutrition profile
type BoundsCalculator interface {
	Bounds(info models.PersonalInformation) (models.NutrientBounds, models.ProfileSummary)
}

// RecommendationService handles recommendation business logic
type RecommendationService struct {
	catalog    CatalogRepository
	generator  CandidateGenerator
	calculator BoundsCalculator
	slots      *semaphore.Weighted
	logger     *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
// maxConcurrent caps the number of round loops running at once.
func NewRecommendationService(catalog CatalogRepository, generator CandidateGenerator, calculator BoundsCalculator, maxConcurrent int64, logger *slog.Logger) *RecommendationService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationService{
		catalog:    catalog,
		generator:  generator,
		calculator: calculator,
		slots:      semaphore.NewWeighted(maxConcurrent),
		logger:     logger,
	}
}

// Recommend derives nutrient bounds from a personal profile and generates candidate sets
func (s *RecommendationService) Recommend(ctx context.Context, info models.PersonalInformation, filter models.DishFilter) (*models.Recommendation, error) {
	if err := validation.ValidateStruct(info); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	bounds, profile := s.calculator.Bounds(info)
	rec, err := s.generate(ctx, bounds, filter, info.NumberOfDishes, info.NumberOfCandidates)
	if err != nil {
		return nil, err
	}
	rec.Profile = &profile
	return rec, nil
}

// RecommendCustom generates candidate sets under explicit nutrient bounds
func (s *RecommendationService) RecommendCustom(ctx context.Context, req models.RecipeRequest, filter models.DishFilter) (*models.Recommendation, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return s.generate(ctx, req.NutConf.Bounds(), filter, req.NumberOfDishes, req.NumberOfCandidates)
}

func (s *RecommendationService) generate(ctx context.Context, bounds models.NutrientBounds, filter models.DishFilter, numberOfDishes, numberOfCandidates int) (*models.Recommendation, error) {
	// Malformed bounds are rejected before waiting for a slot
	if err := candidates.ValidateRequest(bounds, numberOfDishes, numberOfCandidates); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	dishes, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	filtered := ApplyFilter(dishes, filter)

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBusy, err)
	}
	result, err := s.generator.Generate(ctx, filtered, bounds, numberOfDishes, numberOfCandidates)
	s.slots.Release(1)
	if err != nil {
		if errors.Is(err, candidates.ErrInvalidConfiguration) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return nil, err
	}

	// A canceled request cuts the loop short
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrBusy, ctxErr)
	}

	rec := &models.Recommendation{
		ID:              generateRecommendationID(),
		Recommendations: result.Titles(),
		Reason:          string(result.Reason),
		CatalogSize:     len(filtered),
		Bounds:          bounds,
	}

	s.logger.Info("recommendation generated",
		"recommendation_id", rec.ID,
		"catalog_size", rec.CatalogSize,
		"rounds", len(rec.Recommendations),
		"reason", rec.Reason,
	)
	return rec, nil
}

// generateRecommendationID generates a unique recommendation ID using UUID
func generateRecommendationID() string {
	return uuid.New().String()
}

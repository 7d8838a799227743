package service

import (
	"context"
	"strconv"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
	"github.com/levi3112/Dishes-Recommendation-API/internal/repository"
)

// DishService handles business logic for catalog browsing
type DishService struct {
	repo repository.DishRepository
}

// NewDishService creates a new dish service
func NewDishService(repo repository.DishRepository) *DishService {
	return &DishService{
		repo: repo,
	}
}

// ListDishes returns the catalog dishes matching filter
func (s *DishService) ListDishes(ctx context.Context, filter models.DishFilter) ([]models.Dish, error) {
	dishes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(dishes, filter), nil
}

// GetDish returns a dish by ID
func (s *DishService) GetDish(ctx context.Context, id string) (*models.Dish, error) {
	dishID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrInvalidDishID
	}
	return s.repo.GetByID(ctx, dishID)
}

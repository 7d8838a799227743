package repository

import (
	"context"
	"errors"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

var (
	ErrDishNotFound = errors.New("dish not found")
)

// DishRepository defines the interface for dish catalog access
type DishRepository interface {
	GetAll(ctx context.Context) ([]models.Dish, error)
	GetByID(ctx context.Context, id int64) (*models.Dish, error)
	Count() int
}

// InMemoryDishRepository implements DishRepository over a catalog loaded once at startup.
// The catalog is never mutated after construction, so readers need no locking.
type InMemoryDishRepository struct {
	dishes []models.Dish
	byID   map[int64]int
}

// NewInMemoryDishRepository creates a repository holding a private copy of dishes
func NewInMemoryDishRepository(dishes []models.Dish) *InMemoryDishRepository {
	stored := make([]models.Dish, len(dishes))
	byID := make(map[int64]int, len(dishes))
	for i, dish := range dishes {
		dish.Nutrients = copyNutrients(dish.Nutrients)
		stored[i] = dish
		byID[dish.ID] = i
	}

	return &InMemoryDishRepository{
		dishes: stored,
		byID:   byID,
	}
}

// GetAll returns all dishes in catalog order
func (r *InMemoryDishRepository) GetAll(ctx context.Context) ([]models.Dish, error) {
	dishes := make([]models.Dish, len(r.dishes))
	copy(dishes, r.dishes)
	return dishes, nil
}

// GetByID returns a dish by its ID
func (r *InMemoryDishRepository) GetByID(ctx context.Context, id int64) (*models.Dish, error) {
	i, exists := r.byID[id]
	if !exists {
		return nil, ErrDishNotFound
	}
	dish := r.dishes[i]
	dish.Nutrients = copyNutrients(dish.Nutrients)
	return &dish, nil
}

// Count returns the number of dishes in the catalog
func (r *InMemoryDishRepository) Count() int {
	return len(r.dishes)
}

func copyNutrients(src map[string]float64) map[string]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

package candidates

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

// Pool is the per-request set of dishes still eligible for selection.
// Dishes are identified by their position in the catalog the pool was created from.
type Pool struct {
	dishes []models.Dish
	active *bitset.BitSet
}

// NewPool creates a pool holding a private copy of catalog with every dish eligible
func NewPool(catalog []models.Dish) *Pool {
	dishes := make([]models.Dish, len(catalog))
	copy(dishes, catalog)

	active := bitset.New(uint(len(dishes)))
	for i := range dishes {
		active.Set(uint(i))
	}

	return &Pool{
		dishes: dishes,
		active: active,
	}
}

// Len returns the number of eligible dishes
func (p *Pool) Len() int {
	return int(p.active.Count())
}

// Eligible returns the eligible dishes in catalog order together with their positions
func (p *Pool) Eligible() ([]models.Dish, []int) {
	dishes := make([]models.Dish, 0, p.Len())
	positions := make([]int, 0, p.Len())
	for i, ok := p.active.NextSet(0); ok; i, ok = p.active.NextSet(i + 1) {
		dishes = append(dishes, p.dishes[i])
		positions = append(positions, int(i))
	}
	return dishes, positions
}

// Contains reports whether the dish at position is still eligible
func (p *Pool) Contains(position int) bool {
	if position < 0 {
		return false
	}
	return p.active.Test(uint(position))
}

// Remove excludes the dishes at the given positions from every later round
func (p *Pool) Remove(positions ...int) {
	for _, pos := range positions {
		if pos >= 0 {
			p.active.Clear(uint(pos))
		}
	}
}

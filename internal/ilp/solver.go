package ilp

import (
	"context"
	"errors"
)

// ErrNodeLimit is reported when a search exhausts its node budget before proving optimality.
var ErrNodeLimit = errors.New("node limit reached")

// Status is the outcome of a solve.
type Status int

const (
	// StatusOptimal means Values is a proven optimal assignment.
	StatusOptimal Status = iota
	// StatusInfeasible means no assignment satisfies every constraint.
	StatusInfeasible
	// StatusNoSolution means the solver gave up or failed; Err holds the cause.
	StatusNoSolution
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "no_solution"
	}
}

// Solution is the result of solving a Model.
type Solution struct {
	Status    Status
	Values    []bool
	Objective float64
	Nodes     int64
	Err       error
}

// Selected returns the indices of variables set to 1, in ascending order.
func (s Solution) Selected() []int {
	selected := make([]int, 0)
	for i, on := range s.Values {
		if on {
			selected = append(selected, i)
		}
	}
	return selected
}

// Solver solves binary maximization models.
// Implementations must not mutate the model and must honour ctx by returning
// StatusNoSolution once it is done.
type Solver interface {
	Solve(ctx context.Context, m *Model) Solution
}

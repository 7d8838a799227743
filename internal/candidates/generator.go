package candidates

import (
	"context"
	"log/slog"
	"time"

	"github.com/levi3112/Dishes-Recommendation-API/internal/ilp"
	"github.com/levi3112/Dishes-Recommendation-API/internal/metrics"
	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

// Reason explains why a round loop stopped
type Reason string

const (
	// ReasonCompleted means every requested round was produced.
	ReasonCompleted Reason = "completed"
	// ReasonInfeasible means the remaining pool cannot satisfy the bounds.
	ReasonInfeasible Reason = "infeasible"
	// ReasonNoSolution means the solver gave up, timed out or failed.
	ReasonNoSolution Reason = "no_solution"
	// ReasonExhausted means the best remaining round selects no dish.
	ReasonExhausted Reason = "exhausted"
	// ReasonPoolEmpty means no dish was left to choose from.
	ReasonPoolEmpty Reason = "pool_empty"
)

// Round is one candidate set, dishes in catalog order
type Round struct {
	Dishes    []models.Dish
	Positions []int
	Rating    float64
}

// Titles returns the dish titles of the round
func (r Round) Titles() []string {
	titles := make([]string, len(r.Dishes))
	for i, dish := range r.Dishes {
		titles[i] = dish.Title
	}
	return titles
}

// Totals returns the summed amount of every nutrient in bounds over the round
func (r Round) Totals(bounds models.NutrientBounds) map[string]float64 {
	totals := make(map[string]float64, len(bounds))
	for nutrient := range bounds {
		for _, dish := range r.Dishes {
			totals[nutrient] += dish.Amount(nutrient)
		}
	}
	return totals
}

// SolveStats describes one solver call
type SolveStats struct {
	Round    int
	Status   ilp.Status
	Nodes    int64
	Duration time.Duration
	PoolSize int
}

// Result is the ordered list of rounds produced for one request
type Result struct {
	Rounds []Round
	Reason Reason
	Stats  []SolveStats
	// Err is the solver failure behind ReasonNoSolution.
	Err error
}

// Titles maps the result to one list of titles per round
func (r *Result) Titles() [][]string {
	titles := make([][]string, len(r.Rounds))
	for i, round := range r.Rounds {
		titles[i] = round.Titles()
	}
	return titles
}

// Generator drives the solve-and-exclude loop
type Generator struct {
	solver       ilp.Solver
	logger       *slog.Logger
	solveTimeout time.Duration
}

// NewGenerator creates a generator. A zero solveTimeout disables the per-solve deadline.
func NewGenerator(solver ilp.Solver, logger *slog.Logger, solveTimeout time.Duration) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		solver:       solver,
		logger:       logger,
		solveTimeout: solveTimeout,
	}
}

// Generate produces up to numberOfCandidates pairwise disjoint rounds of at
// most numberOfDishes dishes each, every round maximizing total rating
// within bounds over the dishes not yet used.
//
// Invalid parameters are rejected with a ConfigurationError before any
// solve. Running out of feasible rounds is not an error: the result is
// shorter and Reason tells why.
func (g *Generator) Generate(ctx context.Context, catalog []models.Dish, bounds models.NutrientBounds, numberOfDishes, numberOfCandidates int) (*Result, error) {
	if err := ValidateRequest(bounds, numberOfDishes, numberOfCandidates); err != nil {
		return nil, err
	}

	metrics.TrackActiveSolve(true)
	defer metrics.TrackActiveSolve(false)

	pool := NewPool(catalog)
	result := &Result{
		Rounds: make([]Round, 0, numberOfCandidates),
		Reason: ReasonCompleted,
	}

	for round := 1; round <= numberOfCandidates; round++ {
		if pool.Len() == 0 {
			result.Reason = ReasonPoolEmpty
			break
		}

		dishes, positions := pool.Eligible()
		model := BuildModel(dishes, bounds, numberOfDishes)

		start := time.Now()
		sol := g.solve(ctx, model)
		stats := SolveStats{
			Round:    round,
			Status:   sol.Status,
			Nodes:    sol.Nodes,
			Duration: time.Since(start),
			PoolSize: len(dishes),
		}
		result.Stats = append(result.Stats, stats)
		metrics.RecordSolve(sol.Status.String(), sol.Nodes, stats.Duration)

		if sol.Status == ilp.StatusInfeasible {
			g.logger.Debug("round infeasible",
				"round", round,
				"pool_size", len(dishes),
				"nodes", sol.Nodes,
			)
			result.Reason = ReasonInfeasible
			break
		}
		if sol.Status != ilp.StatusOptimal {
			g.logger.Warn("solver returned no solution",
				"round", round,
				"pool_size", len(dishes),
				"nodes", sol.Nodes,
				"error", sol.Err,
			)
			result.Reason = ReasonNoSolution
			result.Err = sol.Err
			break
		}

		selected := sol.Selected()
		if len(selected) == 0 {
			result.Reason = ReasonExhausted
			break
		}

		chosen := Round{
			Dishes:    make([]models.Dish, len(selected)),
			Positions: make([]int, len(selected)),
			Rating:    sol.Objective,
		}
		for i, idx := range selected {
			chosen.Dishes[i] = dishes[idx]
			chosen.Positions[i] = positions[idx]
		}
		pool.Remove(chosen.Positions...)
		result.Rounds = append(result.Rounds, chosen)

		g.logger.Debug("round selected",
			"round", round,
			"dishes", len(selected),
			"rating", sol.Objective,
			"nodes", sol.Nodes,
		)
	}

	metrics.RecordRecommendation(string(result.Reason), len(result.Rounds))
	return result, nil
}

func (g *Generator) solve(ctx context.Context, model *ilp.Model) ilp.Solution {
	if g.solveTimeout <= 0 {
		return g.solver.Solve(ctx, model)
	}
	solveCtx, cancel := context.WithTimeout(ctx, g.solveTimeout)
	defer cancel()
	return g.solver.Solve(solveCtx, model)
}

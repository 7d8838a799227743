package ilp

import (
	"context"
	"math"
	"sort"
)

// checkInterval is how many nodes are expanded between context checks. Must be a power of two.
const checkInterval = 1024

// BranchAndBound is a depth-first branch-and-bound solver for binary models.
//
// Variables are branched in descending objective order, one-branch first, so
// good incumbents are found early. A node is pruned when some constraint can
// no longer be satisfied by any completion, or when the best completion
// allowed by the cardinality constraints cannot beat the incumbent.
type BranchAndBound struct {
	// MaxNodes caps the number of expanded nodes. Zero means unlimited.
	MaxNodes int64
}

// NewBranchAndBound creates a solver with the given node budget.
func NewBranchAndBound(maxNodes int64) *BranchAndBound {
	return &BranchAndBound{MaxNodes: maxNodes}
}

// Solve implements Solver.
func (b *BranchAndBound) Solve(ctx context.Context, m *Model) Solution {
	if err := m.Validate(); err != nil {
		return Solution{Status: StatusNoSolution, Err: err}
	}
	if m.Empty() {
		return Solution{Status: StatusInfeasible}
	}
	if err := ctx.Err(); err != nil {
		return Solution{Status: StatusNoSolution, Err: err}
	}

	s := newSearch(ctx, m, b.MaxNodes)
	s.visit(0)

	if s.err != nil {
		return Solution{Status: StatusNoSolution, Nodes: s.nodes, Err: s.err}
	}
	if !s.found {
		return Solution{Status: StatusInfeasible, Nodes: s.nodes}
	}
	return Solution{
		Status:    StatusOptimal,
		Values:    s.best,
		Objective: m.Evaluate(s.best),
		Nodes:     s.nodes,
	}
}

// search holds the mutable state of one solve.
// Variables order[:d] are fixed at depth d; the rest are free.
type search struct {
	ctx      context.Context
	model    *Model
	maxNodes int64

	order  []int
	prefix []float64 // prefix[d] = sum of positive objective over order[:d]

	sufPos [][]float64 // sufPos[c][d] = sum of positive coefficients of c over order[d:]
	sufNeg [][]float64

	cardinality []int   // constraints of the form sum(x) <= rhs
	byCoeff     [][]int // per >= constraint: positive-coefficient variables, descending

	activity  []float64
	fixed     []bool
	values    []bool
	objective float64

	best    []bool
	bestObj float64
	found   bool
	nodes   int64
	err     error
}

func newSearch(ctx context.Context, m *Model, maxNodes int64) *search {
	n := m.NumVars()
	s := &search{
		ctx:      ctx,
		model:    m,
		maxNodes: maxNodes,
		order:    make([]int, n),
		prefix:   make([]float64, n+1),
		sufPos:   make([][]float64, len(m.Constraints)),
		sufNeg:   make([][]float64, len(m.Constraints)),
		byCoeff:  make([][]int, len(m.Constraints)),
		activity: make([]float64, len(m.Constraints)),
		fixed:    make([]bool, n),
		values:   make([]bool, n),
	}

	for i := range s.order {
		s.order[i] = i
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		return m.Objective[s.order[a]] > m.Objective[s.order[b]]
	})
	for d, v := range s.order {
		s.prefix[d+1] = s.prefix[d] + math.Max(0, m.Objective[v])
	}

	for ci, c := range m.Constraints {
		pos := make([]float64, n+1)
		neg := make([]float64, n+1)
		for d := n - 1; d >= 0; d-- {
			a := c.Coeffs[s.order[d]]
			pos[d], neg[d] = pos[d+1], neg[d+1]
			if a > 0 {
				pos[d] += a
			} else {
				neg[d] += a
			}
		}
		s.sufPos[ci], s.sufNeg[ci] = pos, neg

		if c.Sense == LessOrEqual && isCardinality(c) {
			s.cardinality = append(s.cardinality, ci)
		}
	}

	if len(s.cardinality) > 0 {
		for ci, c := range m.Constraints {
			if c.Sense != GreaterOrEqual {
				continue
			}
			vars := make([]int, 0, n)
			for v, a := range c.Coeffs {
				if a > 0 {
					vars = append(vars, v)
				}
			}
			sort.SliceStable(vars, func(a, b int) bool {
				return c.Coeffs[vars[a]] > c.Coeffs[vars[b]]
			})
			s.byCoeff[ci] = vars
		}
	}

	return s
}

func isCardinality(c Constraint) bool {
	for _, a := range c.Coeffs {
		if a != 1 {
			return false
		}
	}
	return true
}

// visit expands the node at depth d. It returns false when the search must abort.
func (s *search) visit(d int) bool {
	s.nodes++
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		s.err = ErrNodeLimit
		return false
	}
	if s.nodes&(checkInterval-1) == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}
	}

	// Setting every free variable to zero is itself a completion.
	if s.currentFeasible() && (!s.found || s.objective > s.bestObj+Tolerance) {
		s.best = append(s.best[:0], s.values...)
		s.bestObj = s.objective
		s.found = true
	}

	n := len(s.order)
	if d == n {
		return true
	}
	free := s.freeSlots(d)
	if free == 0 {
		return true
	}
	if s.found {
		bound := s.objective + s.prefix[min(d+free, n)] - s.prefix[d]
		if bound <= s.bestObj+Tolerance {
			return true
		}
	}

	v := s.order[d]
	s.fixed[v] = true

	s.set(v, true)
	if s.feasible(d + 1) {
		if !s.visit(d + 1) {
			return false
		}
	}
	s.set(v, false)

	if s.feasible(d + 1) {
		if !s.visit(d + 1) {
			return false
		}
	}

	s.fixed[v] = false
	return true
}

func (s *search) set(v int, on bool) {
	sign := 1.0
	if !on {
		sign = -1.0
	}
	s.values[v] = on
	s.objective += sign * s.model.Objective[v]
	for ci, c := range s.model.Constraints {
		s.activity[ci] += sign * c.Coeffs[v]
	}
}

// freeSlots returns how many more variables may still be set at depth d.
func (s *search) freeSlots(d int) int {
	free := len(s.order) - d
	for _, ci := range s.cardinality {
		slots := int(math.Floor(s.model.Constraints[ci].RHS - s.activity[ci] + Tolerance))
		if slots < free {
			free = slots
		}
	}
	if free < 0 {
		free = 0
	}
	return free
}

// feasible reports whether some completion of the variables fixed at depth d may satisfy every constraint.
func (s *search) feasible(d int) bool {
	free := -1
	for ci, c := range s.model.Constraints {
		act := s.activity[ci]
		if c.Sense == LessOrEqual {
			if act+s.sufNeg[ci][d] > c.RHS+Tolerance {
				return false
			}
			continue
		}

		reach := s.sufPos[ci][d]
		if s.byCoeff[ci] != nil {
			if free < 0 {
				free = s.freeSlots(d)
			}
			reach = math.Min(reach, s.topFree(ci, free))
		}
		if act+reach < c.RHS-Tolerance {
			return false
		}
	}
	return true
}

// topFree sums the largest positive coefficients of constraint ci over at most k free variables.
func (s *search) topFree(ci, k int) float64 {
	sum := 0.0
	coeffs := s.model.Constraints[ci].Coeffs
	for _, v := range s.byCoeff[ci] {
		if k == 0 {
			break
		}
		if s.fixed[v] {
			continue
		}
		sum += coeffs[v]
		k--
	}
	return sum
}

func (s *search) currentFeasible() bool {
	for ci, c := range s.model.Constraints {
		act := s.activity[ci]
		if c.Sense == LessOrEqual && act > c.RHS+Tolerance {
			return false
		}
		if c.Sense == GreaterOrEqual && act < c.RHS-Tolerance {
			return false
		}
	}
	return true
}

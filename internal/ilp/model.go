// Package ilp models and solves small binary integer linear programs.
//
// A Model maximizes a linear objective over binary variables subject to
// linear inequality constraints. Solvers implement the Solver interface so
// callers can swap the embedded branch-and-bound for another backend
// without changing how models are built.
package ilp

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance is the absolute slack allowed when comparing constraint activity
// against a right-hand side.
const Tolerance = 1e-9

// ErrMalformedModel is returned when a model's dimensions or coefficients are invalid.
var ErrMalformedModel = errors.New("malformed model")

// Sense is the direction of a linear inequality.
type Sense int

const (
	// LessOrEqual constrains activity <= RHS.
	LessOrEqual Sense = iota
	// GreaterOrEqual constrains activity >= RHS.
	GreaterOrEqual
)

func (s Sense) String() string {
	switch s {
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Constraint is a single linear inequality over all model variables.
type Constraint struct {
	Name   string
	Coeffs []float64
	Sense  Sense
	RHS    float64
}

// Activity returns the constraint's left-hand side for the given assignment.
func (c Constraint) Activity(values []bool) float64 {
	sum := 0.0
	for i, on := range values {
		if on {
			sum += c.Coeffs[i]
		}
	}
	return sum
}

// Satisfied reports whether the assignment meets the constraint within Tolerance.
func (c Constraint) Satisfied(values []bool) bool {
	act := c.Activity(values)
	if c.Sense == GreaterOrEqual {
		return act >= c.RHS-Tolerance
	}
	return act <= c.RHS+Tolerance
}

// Model is a maximization problem over binary variables.
// Variable i is identified by its position in Objective.
type Model struct {
	Objective   []float64
	Constraints []Constraint
}

// NewModel creates a model with numVars binary variables and a zero objective.
func NewModel(numVars int) *Model {
	return &Model{
		Objective: make([]float64, numVars),
	}
}

// NumVars returns the number of decision variables.
func (m *Model) NumVars() int {
	return len(m.Objective)
}

// Empty reports whether the model has no decision variables.
func (m *Model) Empty() bool {
	return len(m.Objective) == 0
}

// AddConstraint appends a constraint. coeffs must have one entry per variable.
func (m *Model) AddConstraint(name string, coeffs []float64, sense Sense, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{
		Name:   name,
		Coeffs: coeffs,
		Sense:  sense,
		RHS:    rhs,
	})
}

// Validate checks dimensions and rejects NaN or infinite coefficients.
func (m *Model) Validate() error {
	for i, v := range m.Objective {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: objective coefficient %d is %v", ErrMalformedModel, i, v)
		}
	}
	for _, c := range m.Constraints {
		if len(c.Coeffs) != len(m.Objective) {
			return fmt.Errorf("%w: constraint %q has %d coefficients, want %d",
				ErrMalformedModel, c.Name, len(c.Coeffs), len(m.Objective))
		}
		if c.Sense != LessOrEqual && c.Sense != GreaterOrEqual {
			return fmt.Errorf("%w: constraint %q has unknown sense %v", ErrMalformedModel, c.Name, c.Sense)
		}
		if math.IsNaN(c.RHS) {
			return fmt.Errorf("%w: constraint %q has NaN right-hand side", ErrMalformedModel, c.Name)
		}
		for i, v := range c.Coeffs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: constraint %q coefficient %d is %v", ErrMalformedModel, c.Name, i, v)
			}
		}
	}
	return nil
}

// Evaluate returns the objective value of an assignment.
func (m *Model) Evaluate(values []bool) float64 {
	sum := 0.0
	for i, on := range values {
		if on {
			sum += m.Objective[i]
		}
	}
	return sum
}

// Feasible reports whether the assignment satisfies every constraint.
func (m *Model) Feasible(values []bool) bool {
	if len(values) != len(m.Objective) {
		return false
	}
	for _, c := range m.Constraints {
		if !c.Satisfied(values) {
			return false
		}
	}
	return true
}

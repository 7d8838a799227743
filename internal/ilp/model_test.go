package ilp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Model
		wantErr bool
	}{
		{
			name: "valid",
			build: func() *Model {
				m := NewModel(2)
				m.AddConstraint("c", []float64{1, 2}, LessOrEqual, 3)
				return m
			},
		},
		{
			name: "coefficient count mismatch",
			build: func() *Model {
				m := NewModel(2)
				m.AddConstraint("c", []float64{1, 2, 3}, LessOrEqual, 3)
				return m
			},
			wantErr: true,
		},
		{
			name: "nan objective",
			build: func() *Model {
				m := NewModel(1)
				m.Objective[0] = math.NaN()
				return m
			},
			wantErr: true,
		},
		{
			name: "nan right-hand side",
			build: func() *Model {
				m := NewModel(1)
				m.AddConstraint("c", []float64{1}, GreaterOrEqual, math.NaN())
				return m
			},
			wantErr: true,
		},
		{
			name: "unknown sense",
			build: func() *Model {
				m := NewModel(1)
				m.AddConstraint("c", []float64{1}, Sense(9), 1)
				return m
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedModel)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConstraint_Satisfied(t *testing.T) {
	c := Constraint{Coeffs: []float64{600, 600, 600}, Sense: GreaterOrEqual, RHS: 1200}
	assert.True(t, c.Satisfied([]bool{true, true, false}))
	assert.False(t, c.Satisfied([]bool{true, false, false}))

	c.Sense = LessOrEqual
	assert.True(t, c.Satisfied([]bool{true, true, false}))
	assert.False(t, c.Satisfied([]bool{true, true, true}))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "optimal", StatusOptimal.String())
	assert.Equal(t, "infeasible", StatusInfeasible.String())
	assert.Equal(t, "no_solution", StatusNoSolution.String())
}

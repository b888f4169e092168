package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFormula(t *testing.T) {
	vars := map[string]int{"a": 0, "b": 1, "growth_rate": 2}
	values := []float64{6, 3, 0.5}

	tests := []struct {
		formula  string
		expected float64
	}{
		{"a + b", 9},
		{"a - b - 1", 2},
		{"a * b + 2", 20},
		{"a + b * 2", 12},
		{"(a + b) * 2", 18},
		{"a / b", 2},
		{"-a + b", -3},
		{"--a", 6},
		{"2 ^ 3 ^ 2", 512},
		{"-2 ^ 2", -4},
		{"a * (1 + growth_rate)", 9},
		{"1.5e2 + .5", 150.5},
		{"min(a, b, 1)", 1},
		{"max(a, b)", 6},
		{"abs(b - a)", 3},
		{"sqrt(a * 6)", 6},
		{"pow(b, 2)", 9},
		{"log(exp(2))", 2},
		{"MAX(a, 10)", 10},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			node, err := compileFormula(tt.formula, vars)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, node.eval(values), 1e-12)
		})
	}
}

func TestCompileFormula_Errors(t *testing.T) {
	vars := map[string]int{"a": 0}

	tests := []struct {
		name    string
		formula string
	}{
		{"Empty", "   "},
		{"UnknownVariable", "a + z"},
		{"UnknownFunction", "system(a)"},
		{"BadCharacter", "a; a"},
		{"Unbalanced", "(a + 1"},
		{"Dangling", "a +"},
		{"Trailing", "a a"},
		{"Arity", "pow(a)"},
		{"NoArgs", "min()"},
		{"Attribute", "a.b"},
		{"Import", "__import__(a)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileFormula(tt.formula, vars)
			assert.Error(t, err)
		})
	}
}

func TestFormulaModel_DivisionByZero(t *testing.T) {
	m, err := NewModel("", "a / 0", []Variable{{Name: "a"}})
	require.NoError(t, err)
	assert.True(t, math.IsInf(m.Evaluate([]float64{1}), 1))
}

func TestNewModel_Selection(t *testing.T) {
	vars := []Variable{{Name: "price"}, {Name: "volume"}}

	m, err := NewModel("revenue", "", vars)
	require.NoError(t, err)
	assert.Equal(t, 50.0, m.Evaluate([]float64{5, 10}))

	m, err = NewModel("unknown", "", vars)
	require.NoError(t, err)
	assert.Equal(t, 15.0, m.Evaluate([]float64{5, 10}))

	_, err = NewModel(ModelFormula, "", vars)
	assert.Error(t, err)

	m, err = NewModel("npv", "", nil)
	require.NoError(t, err)
	assert.Zero(t, m.Evaluate(nil))
}

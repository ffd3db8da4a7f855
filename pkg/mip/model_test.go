package mip

import "testing"

func TestModel_Build(t *testing.T) {
	m := NewModel("test")
	x := m.AddVar("x", 0, 10)
	u := m.AddBinary("u")

	if m.NumVars() != 2 {
		t.Fatalf("Expected 2 variables, got %d", m.NumVars())
	}
	if m.VarName(x) != "x" || m.VarName(u) != "u" {
		t.Errorf("Expected variable names x and u, got %s and %s", m.VarName(x), m.VarName(u))
	}
	if lo, hi := m.Bounds(x); lo != 0 || hi != 10 {
		t.Errorf("Expected bounds [0, 10], got [%d, %d]", lo, hi)
	}
	if !m.IsBinary(u) {
		t.Errorf("Expected u to be binary")
	}
	if m.IsBinary(x) {
		t.Errorf("Expected x not to be binary")
	}

	m.AddConstraint("cap", []Term{{Var: x, Coef: 1}, {Var: u, Coef: -10}}, LessEqual, 0)
	if m.NumConstraints() != 1 {
		t.Fatalf("Expected 1 constraint, got %d", m.NumConstraints())
	}
	c := m.Constraints()[0]
	if c.Name != "cap" || c.Sense != LessEqual || c.RHS != 0 {
		t.Errorf("Expected constraint cap <= 0, got %s %s %d", c.Name, c.Sense, c.RHS)
	}

	m.SetObjective([]Term{{Var: x, Coef: 3}}, 7)
	terms, constant := m.Objective()
	if len(terms) != 1 || terms[0].Coef != 3 || constant != 7 {
		t.Errorf("Expected objective 3x + 7, got %v + %d", terms, constant)
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Expected valid model, got %v", err)
	}
}

func TestModel_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		build       func() *Model
		expectError string
	}{
		{
			"no variables",
			func() *Model {
				return NewModel("empty")
			},
			`model "empty" has no variables`,
		},
		{
			"empty variable name",
			func() *Model {
				m := NewModel("m")
				m.AddVar("", 0, 1)
				return m
			},
			`model "m": variable 0 has an empty name`,
		},
		{
			"inverted bounds",
			func() *Model {
				m := NewModel("m")
				m.AddVar("x", 5, 2)
				return m
			},
			`model "m": variable "x" has inverted bounds [5, 2]`,
		},
		{
			"constraint without terms",
			func() *Model {
				m := NewModel("m")
				m.AddVar("x", 0, 1)
				m.AddConstraint("c", nil, LessEqual, 0)
				return m
			},
			`model "m": constraint "c" has no terms`,
		},
		{
			"constraint with unknown variable",
			func() *Model {
				m := NewModel("m")
				m.AddVar("x", 0, 1)
				m.AddConstraint("c", []Term{{Var: 7, Coef: 1}}, Equal, 1)
				return m
			},
			`model "m": constraint "c" references unknown variable 7`,
		},
		{
			"objective with unknown variable",
			func() *Model {
				m := NewModel("m")
				m.AddVar("x", 0, 1)
				m.SetObjective([]Term{{Var: 3, Coef: 1}}, 0)
				return m
			},
			`model "m": objective references unknown variable 3`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build().Validate()
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestSense_String(t *testing.T) {
	if LessEqual.String() != "<=" || GreaterEqual.String() != ">=" || Equal.String() != "=" {
		t.Errorf(
			"Expected <=, >=, =, got %s, %s, %s",
			LessEqual.String(), GreaterEqual.String(), Equal.String(),
		)
	}
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status Status
		want   string
	}{
		{StatusUnknown, "Unknown"},
		{StatusOptimal, "Optimal"},
		{StatusFeasible, "Feasible"},
		{StatusInfeasible, "Infeasible"},
		{StatusUnbounded, "Unbounded"},
	}
	for _, tc := range testCases {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Expected %s, got %s", tc.want, got)
		}
	}
}

// Package mip models bounded integer linear programs and defines the solver
// contract the sourcing engine builds against. Models are pure data: building
// one performs no solving, so construction stays cheap and deterministic and
// the translation from domain objects can be tested without a solver.
package mip

import "fmt"

// Var is a handle to a model variable, valid only for the model that
// created it.
type Var int

// Term is one coefficient-variable pair of a linear expression.
type Term struct {
	Var  Var
	Coef int64
}

// Sense is the comparison direction of a linear constraint.
type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

// String method for Sense enum
func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Constraint is a linear constraint: sum(Terms) Sense RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   int64
}

// Model is a bounded integer linear program. All variables carry finite
// integer bounds, which rules out unbounded problems up front. The objective
// is always minimized.
type Model struct {
	name        string
	varNames    []string
	lo          []int64
	hi          []int64
	constraints []Constraint
	objTerms    []Term
	objConst    int64
}

// NewModel returns an empty model with the given name. The name appears in
// diagnostics only.
func NewModel(name string) *Model {
	return &Model{name: name}
}

// Name returns the model's diagnostic name.
func (m *Model) Name() string {
	return m.name
}

// AddVar adds an integer variable constrained to [lo, hi] and returns its
// handle. Inverted bounds are caught by Validate, not here, so builders can
// stay mechanical.
func (m *Model) AddVar(name string, lo, hi int64) Var {
	v := Var(len(m.varNames))
	m.varNames = append(m.varNames, name)
	m.lo = append(m.lo, lo)
	m.hi = append(m.hi, hi)
	return v
}

// AddBinary adds a 0/1 variable and returns its handle.
func (m *Model) AddBinary(name string) Var {
	return m.AddVar(name, 0, 1)
}

// AddConstraint appends the linear constraint sum(terms) sense rhs.
// Duplicate variables within terms are legal; solvers merge them.
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs int64) {
	m.constraints = append(m.constraints, Constraint{
		Name:  name,
		Terms: terms,
		Sense: sense,
		RHS:   rhs,
	})
}

// SetObjective sets the expression to minimize: sum(terms) + constant.
// Calling it again replaces the previous objective.
func (m *Model) SetObjective(terms []Term, constant int64) {
	m.objTerms = terms
	m.objConst = constant
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int {
	return len(m.varNames)
}

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

// VarName returns the name of v.
func (m *Model) VarName(v Var) string {
	return m.varNames[v]
}

// Bounds returns the inclusive bounds of v.
func (m *Model) Bounds(v Var) (lo, hi int64) {
	return m.lo[v], m.hi[v]
}

// IsBinary reports whether v was declared with bounds [0, 1].
func (m *Model) IsBinary(v Var) bool {
	return m.lo[v] == 0 && m.hi[v] == 1
}

// Constraints returns the model's constraints in insertion order. Callers
// must treat the returned slice as read-only.
func (m *Model) Constraints() []Constraint {
	return m.constraints
}

// Objective returns the objective terms and constant. Callers must treat the
// returned slice as read-only.
func (m *Model) Objective() ([]Term, int64) {
	return m.objTerms, m.objConst
}

// Validate checks structural well-formedness: at least one variable, bounds
// in order, every term referencing a variable the model owns. It does not
// try to detect infeasibility; that is the solver's job.
func (m *Model) Validate() error {
	if len(m.varNames) == 0 {
		return fmt.Errorf("model %q has no variables", m.name)
	}
	for i, name := range m.varNames {
		if name == "" {
			return fmt.Errorf("model %q: variable %d has an empty name", m.name, i)
		}
		if m.lo[i] > m.hi[i] {
			return fmt.Errorf(
				"model %q: variable %q has inverted bounds [%d, %d]",
				m.name, name, m.lo[i], m.hi[i],
			)
		}
	}
	for _, c := range m.constraints {
		if len(c.Terms) == 0 {
			return fmt.Errorf("model %q: constraint %q has no terms", m.name, c.Name)
		}
		for _, t := range c.Terms {
			if t.Var < 0 || int(t.Var) >= len(m.varNames) {
				return fmt.Errorf(
					"model %q: constraint %q references unknown variable %d",
					m.name, c.Name, t.Var,
				)
			}
		}
	}
	for _, t := range m.objTerms {
		if t.Var < 0 || int(t.Var) >= len(m.varNames) {
			return fmt.Errorf("model %q: objective references unknown variable %d", m.name, t.Var)
		}
	}
	return nil
}

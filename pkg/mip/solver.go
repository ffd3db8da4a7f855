package mip

import (
	"context"
	"time"
)

// Status classifies a solve outcome.
type Status int

const (
	StatusUnknown Status = iota
	// StatusOptimal means the search completed and the reported solution is
	// proven best.
	StatusOptimal
	// StatusFeasible means a limit stopped the search first; the reported
	// solution satisfies every constraint but may not be the best one.
	StatusFeasible
	// StatusInfeasible means the search completed and no assignment
	// satisfies the constraints.
	StatusInfeasible
	// StatusUnbounded is part of the contract for completeness; a model
	// whose variables all carry finite bounds can never produce it.
	StatusUnbounded
)

// String method for Status enum
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusFeasible:
		return "Feasible"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one solve. Values is indexed by Var and is only
// populated for StatusOptimal and StatusFeasible.
type Result struct {
	Status    Status
	Objective float64
	Values    []float64
	Nodes     int64
	Elapsed   time.Duration
}

// Value returns the solved value of v.
func (r *Result) Value(v Var) float64 {
	return r.Values[v]
}

// Options bound a solve. Zero values mean no limit of that kind.
type Options struct {
	TimeLimit time.Duration
	MaxNodes  int64
}

// Solver is anything that can minimize a Model. Implementations must be safe
// for sequential reuse and must return an error, not a Result, when a limit
// or cancellation stops the search before any feasible assignment is found.
type Solver interface {
	Solve(ctx context.Context, m *Model, opts Options) (*Result, error)
}

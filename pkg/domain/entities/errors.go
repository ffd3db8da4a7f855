package entities

import "fmt"

// ValidationError reports malformed or infeasible-by-construction input.
// It is surfaced before any solving is attempted and never retried.
type ValidationError struct {
	ItemID string // failing item, when known
	Seller string // failing seller, when known
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.ItemID != "" && e.Seller != "":
		return fmt.Sprintf("invalid catalog: %s (seller %q): %s", e.ItemID, e.Seller, e.Reason)
	case e.ItemID != "":
		return fmt.Sprintf("invalid catalog: %s: %s", e.ItemID, e.Reason)
	default:
		return fmt.Sprintf("invalid catalog: %s", e.Reason)
	}
}

// SolverInfeasibleError reports that no assignment satisfies the model's
// constraints. With a validated catalog this points at the configured
// distinct-seller bound; without one it indicates a modeling defect.
type SolverInfeasibleError struct {
	Reason string
}

func (e *SolverInfeasibleError) Error() string {
	return fmt.Sprintf("no feasible sourcing plan: %s", e.Reason)
}

// SolverError reports that the solving capability failed to produce any
// usable result. It is retried exactly once with a reduced model before
// being surfaced.
type SolverError struct {
	Attempts int
	Cause    error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver failed after %d attempt(s): %v", e.Attempts, e.Cause)
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}

// DecodeError reports that a solved model could not be turned into a
// sourcing plan. It indicates a modeling or numeric-tolerance defect, never
// a data problem, and is therefore fatal and not retried.
type DecodeError struct {
	Variable string // offending variable, when one is identifiable
	Reason   string
}

func (e *DecodeError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("cannot decode solution: variable %s: %s", e.Variable, e.Reason)
	}
	return fmt.Sprintf("cannot decode solution: %s", e.Reason)
}

// InvariantError reports that a decoded plan failed re-validation against
// the catalog, or that the solver reported a state that finite variable
// bounds rule out. Either way it is a programming error, not bad input.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("plan invariant violated: %s", e.Reason)
}

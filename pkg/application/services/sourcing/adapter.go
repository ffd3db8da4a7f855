package sourcing

import (
	"context"
	"fmt"

	"cartsource/pkg/domain/entities"
	"cartsource/pkg/mip"
)

// SolverAdapter runs built models through the solving capability and maps
// solver outcomes to domain outcomes. It performs no interpretation of
// variable semantics; that belongs to the decoder.
type SolverAdapter struct {
	solver mip.Solver
	opts   mip.Options
}

// NewSolverAdapter wraps solver, bounding every attempt by opts.
func NewSolverAdapter(solver mip.Solver, opts mip.Options) *SolverAdapter {
	return &SolverAdapter{solver: solver, opts: opts}
}

// Solve runs built and returns the result together with the model it
// belongs to. When the capability fails outright it retries exactly once on
// the model produced by reduce, with a fresh time budget; a second failure
// surfaces as *entities.SolverError. An optimum of the reduced model is
// reported as Feasible, since it is not certified against the full model.
//
// Infeasible maps to *entities.SolverInfeasibleError and Unbounded to
// *entities.InvariantError; neither is retried.
func (a *SolverAdapter) Solve(
	ctx context.Context,
	built *BuiltModel,
	reduce func() (*BuiltModel, error),
) (*mip.Result, *BuiltModel, bool, error) {
	res, err := a.solver.Solve(ctx, built.Model, a.opts)
	usedFallback := false
	if err != nil {
		if ctx.Err() != nil {
			// The run itself was canceled; a retry would fail the same way.
			return nil, nil, false, &entities.SolverError{Attempts: 1, Cause: err}
		}
		reduced, rerr := reduce()
		if rerr != nil {
			return nil, nil, false, &entities.SolverError{Attempts: 1, Cause: err}
		}
		res, err = a.solver.Solve(ctx, reduced.Model, a.opts)
		if err != nil {
			return nil, nil, false, &entities.SolverError{Attempts: 2, Cause: err}
		}
		built = reduced
		usedFallback = true
	}

	switch res.Status {
	case mip.StatusOptimal:
		if usedFallback {
			res.Status = mip.StatusFeasible
		}
		return res, built, usedFallback, nil
	case mip.StatusFeasible:
		return res, built, usedFallback, nil
	case mip.StatusInfeasible:
		return nil, nil, usedFallback, &entities.SolverInfeasibleError{
			Reason: a.infeasibleReason(built, usedFallback),
		}
	case mip.StatusUnbounded:
		return nil, nil, usedFallback, &entities.InvariantError{
			Reason: "solver reported an unbounded objective despite finite variable bounds",
		}
	default:
		return nil, nil, usedFallback, &entities.SolverError{
			Attempts: 1,
			Cause:    fmt.Errorf("solver returned status %s without a solution", res.Status),
		}
	}
}

// infeasibleReason separates the one legitimate cause of infeasibility, a
// tight seller cap, from causes that point at a defect, since the catalog's
// own feasibility was already validated.
func (a *SolverAdapter) infeasibleReason(built *BuiltModel, usedFallback bool) string {
	if built.MaxSellers > 0 {
		if usedFallback {
			return fmt.Sprintf(
				"the reduced fallback model cannot cover the cart with at most %d sellers; raise the seller limit or remove it",
				built.MaxSellers,
			)
		}
		return fmt.Sprintf(
			"the cart cannot be covered with at most %d sellers; raise the seller limit or remove it",
			built.MaxSellers,
		)
	}
	return "the catalog passed validation and no seller limit is set, which points at a modeling defect"
}

package dto

import (
	"time"

	"cartsource/pkg/domain/entities"
)

// PlanReport contains the complete output of one sourcing run: the plan
// itself plus solve diagnostics for reporting.
type PlanReport struct {
	Plan *entities.SourcingPlan

	// SolverStatus is Optimal when the plan is certified cost-minimal and
	// Feasible when a limit or a fallback solve stopped short of a proof.
	SolverStatus string

	// Objective is the total the solver reported. The plan's grand total is
	// recomputed independently and may undercut it on a Feasible result.
	Objective float64

	SolveTime    time.Duration
	Nodes        int64
	Variables    int
	Constraints  int
	UsedFallback bool
	PlannedAt    time.Time
}

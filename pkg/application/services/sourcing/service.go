// Package sourcing runs the cart optimization pipeline: translate a catalog
// into an integer program, solve it, decode the solution into a sourcing
// plan, and re-validate that plan before surfacing it. The pipeline is
// strictly linear and single-pass; its only loop is the solver adapter's
// single retry on a capability failure.
package sourcing

import (
	"context"
	"time"

	"cartsource/pkg/application/dto"
	"cartsource/pkg/domain/entities"
	"cartsource/pkg/domain/services"
	"cartsource/pkg/mip"
)

// Service wires the pipeline stages together for one configuration. A
// Service is safe for sequential reuse across catalogs; independent runs
// share no mutable state.
type Service struct {
	cfg       Config
	builder   *ModelBuilder
	adapter   *SolverAdapter
	decoder   *SolutionDecoder
	validator *services.PlanValidator
}

// NewService creates the pipeline around the given solving capability.
func NewService(solver mip.Solver, cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		cfg:       cfg,
		builder:   NewModelBuilder(cfg),
		adapter:   NewSolverAdapter(solver, mip.Options{TimeLimit: cfg.TimeLimit}),
		decoder:   NewSolutionDecoder(cfg.DeliveryCost, cfg.Tolerance),
		validator: services.NewPlanValidator(cfg.DeliveryCost, cfg.MaxSellers),
	}, nil
}

// PlanCart produces a cost-minimal sourcing plan for catalog. The returned
// report carries the validated plan plus solve diagnostics. Errors are the
// domain kinds: *entities.SolverInfeasibleError when no plan satisfies the
// constraints, *entities.SolverError when the solving capability failed
// twice, and *entities.DecodeError or *entities.InvariantError when a
// defect is detected in the solution itself.
func (s *Service) PlanCart(ctx context.Context, catalog *entities.Catalog) (*dto.PlanReport, error) {
	built := s.builder.Build(catalog)

	res, solved, usedFallback, err := s.adapter.Solve(ctx, built, func() (*BuiltModel, error) {
		return s.builder.BuildReduced(catalog)
	})
	if err != nil {
		return nil, err
	}

	plan, err := s.decoder.Decode(catalog, solved, res)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(catalog, plan); err != nil {
		return nil, err
	}

	return &dto.PlanReport{
		Plan:         plan,
		SolverStatus: res.Status.String(),
		Objective:    res.Objective,
		SolveTime:    res.Elapsed,
		Nodes:        res.Nodes,
		Variables:    solved.Model.NumVars(),
		Constraints:  solved.Model.NumConstraints(),
		UsedFallback: usedFallback,
		PlannedAt:    time.Now().UTC(),
	}, nil
}

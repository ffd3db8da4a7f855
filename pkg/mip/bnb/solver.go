// Package bnb is the bundled mip.Solver: depth-first branch and bound over
// integer intervals with bounds propagation at every node. It is exact and
// deterministic, which keeps planning runs reproducible, and it needs no
// external solver binary.
package bnb

import (
	"context"
	"fmt"
	"time"

	"cartsource/pkg/mip"
)

// Solver implements mip.Solver. The zero value is ready to use; Solve keeps
// all per-run state on the stack, so a Solver may be reused sequentially.
type Solver struct{}

var _ mip.Solver = (*Solver)(nil)

// New returns a ready Solver.
func New() *Solver {
	return &Solver{}
}

// Solve minimizes m by depth-first search. Branching always splits a
// variable's interval at its midpoint and visits the half favored by the
// objective first. Outcomes:
//
//   - search exhausted, incumbent found: StatusOptimal
//   - search exhausted, no incumbent: StatusInfeasible
//   - limit or cancellation hit, incumbent found: StatusFeasible
//   - limit or cancellation hit, no incumbent: error
func (s *Solver) Solve(ctx context.Context, m *mip.Model, opts mip.Options) (*mip.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}

	st, err := compile(m)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	if st.trivialRow != "" {
		return &mip.Result{
			Status:  mip.StatusInfeasible,
			Elapsed: time.Since(start),
		}, nil
	}

	st.ctx = ctx
	st.maxNodes = opts.MaxNodes
	if opts.TimeLimit > 0 {
		st.deadline = start.Add(opts.TimeLimit)
	}

	st.dfs()
	elapsed := time.Since(start)

	switch {
	case !st.stopped && st.hasBest:
		return st.result(mip.StatusOptimal, elapsed), nil
	case !st.stopped:
		return &mip.Result{
			Status:  mip.StatusInfeasible,
			Nodes:   st.nodes,
			Elapsed: elapsed,
		}, nil
	case st.hasBest:
		return st.result(mip.StatusFeasible, elapsed), nil
	case st.stopErr != nil:
		return nil, fmt.Errorf(
			"search canceled after %d nodes with no feasible assignment: %w",
			st.nodes, st.stopErr,
		)
	default:
		return nil, fmt.Errorf(
			"search limit hit after %d nodes and %v with no feasible assignment",
			st.nodes, elapsed,
		)
	}
}

// change is one trail entry: the bound of variable v before it was tightened.
type change struct {
	v     int
	wasHi bool
	old   int64
}

// search carries all per-solve state. Bounds in lo/hi are the current node's
// domains; the trail records every tightening so backtracking can restore
// parent domains exactly.
type search struct {
	rows       []row
	objTerms   []mip.Term
	objConst   int64
	objCoef    []int64 // merged objective coefficient per variable
	order      []int   // static branching order
	lo, hi     []int64
	trail      []change
	trivialRow string // constraint violated before any search, if any

	hasBest  bool
	bestVals []int64
	bestSum  int64 // objective terms at the incumbent, excluding the constant

	nodes    int64
	maxNodes int64
	deadline time.Time
	ctx      context.Context
	stopped  bool
	stopErr  error
}

func (s *search) dfs() {
	if s.stopped {
		return
	}
	s.nodes++
	if s.limitHit() {
		s.stopped = true
		return
	}

	mark := len(s.trail)
	if !s.propagate() {
		s.undo(mark)
		return
	}

	v := s.pickVar()
	if v < 0 {
		s.record()
		s.undo(mark)
		return
	}

	lo, hi := s.lo[v], s.hi[v]
	mid := lo + (hi-lo)/2
	if s.objCoef[v] >= 0 {
		s.branchBelow(v, mid)
		s.branchAbove(v, mid+1)
	} else {
		s.branchAbove(v, mid+1)
		s.branchBelow(v, mid)
	}
	s.undo(mark)
}

// branchBelow explores the child with v's domain clipped to [lo, val].
func (s *search) branchBelow(v int, val int64) {
	if s.stopped {
		return
	}
	mark := len(s.trail)
	if s.setHi(v, val) {
		s.dfs()
	}
	s.undo(mark)
}

// branchAbove explores the child with v's domain clipped to [val, hi].
func (s *search) branchAbove(v int, val int64) {
	if s.stopped {
		return
	}
	mark := len(s.trail)
	if s.setLo(v, val) {
		s.dfs()
	}
	s.undo(mark)
}

// pickVar returns the first unfixed variable in branching order, or -1 when
// every variable is fixed.
func (s *search) pickVar() int {
	for _, v := range s.order {
		if s.lo[v] < s.hi[v] {
			return v
		}
	}
	return -1
}

// record captures the current fully fixed assignment as the incumbent if it
// improves on the previous one. Propagation has already verified every
// constraint at this point.
func (s *search) record() {
	var sum int64
	for _, t := range s.objTerms {
		sum += t.Coef * s.lo[t.Var]
	}
	if s.hasBest && sum >= s.bestSum {
		return
	}
	s.hasBest = true
	s.bestSum = sum
	if s.bestVals == nil {
		s.bestVals = make([]int64, len(s.lo))
	}
	copy(s.bestVals, s.lo)
}

func (s *search) limitHit() bool {
	if err := s.ctx.Err(); err != nil {
		s.stopErr = err
		return true
	}
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return true
	}
	return false
}

// undo rolls the trail back to mark, restoring every bound tightened since.
func (s *search) undo(mark int) {
	for len(s.trail) > mark {
		c := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		if c.wasHi {
			s.hi[c.v] = c.old
		} else {
			s.lo[c.v] = c.old
		}
	}
}

func (s *search) result(status mip.Status, elapsed time.Duration) *mip.Result {
	values := make([]float64, len(s.bestVals))
	for i, v := range s.bestVals {
		values[i] = float64(v)
	}
	return &mip.Result{
		Status:    status,
		Objective: float64(s.bestSum + s.objConst),
		Values:    values,
		Nodes:     s.nodes,
		Elapsed:   elapsed,
	}
}

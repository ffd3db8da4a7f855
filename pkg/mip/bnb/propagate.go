package bnb

import (
	"fmt"
	"math"
	"sort"

	"cartsource/pkg/mip"
)

// row is one compiled constraint: duplicate variables merged, zero
// coefficients dropped, terms sorted by variable for reproducible runs.
type row struct {
	name  string
	terms []mip.Term
	sense mip.Sense
	rhs   int64
}

// boundLimit caps variable bound magnitudes. Together with activityLimit it
// keeps every intermediate value of interval arithmetic inside int64.
const boundLimit = int64(1) << 60

// activityLimit caps a row's worst-case absolute activity plus its
// right-hand side.
const activityLimit = float64(int64(1) << 61)

// compile flattens a validated model into propagation rows and a static
// branching order: binaries first, then descending absolute objective
// coefficient, then declaration order.
func compile(m *mip.Model) (*search, error) {
	n := m.NumVars()
	lo := make([]int64, n)
	hi := make([]int64, n)
	for i := 0; i < n; i++ {
		l, h := m.Bounds(mip.Var(i))
		if l < -boundLimit || h > boundLimit {
			return nil, fmt.Errorf(
				"variable %q bounds [%d, %d] exceed the supported range",
				m.VarName(mip.Var(i)), l, h,
			)
		}
		lo[i], hi[i] = l, h
	}

	st := &search{lo: lo, hi: hi, objCoef: make([]int64, n)}

	for _, c := range m.Constraints() {
		terms := mergeTerms(c.Terms)
		if err := checkActivity(c.Name, terms, c.RHS, lo, hi); err != nil {
			return nil, err
		}
		if len(terms) == 0 {
			// All coefficients canceled. The row is now a ground fact:
			// either always true (drop it) or never true.
			if !emptySatisfied(c.Sense, c.RHS) && st.trivialRow == "" {
				st.trivialRow = c.Name
			}
			continue
		}
		st.rows = append(st.rows, row{name: c.Name, terms: terms, sense: c.Sense, rhs: c.RHS})
	}

	objTerms, objConst := m.Objective()
	merged := mergeTerms(objTerms)
	if err := checkActivity("objective", merged, 0, lo, hi); err != nil {
		return nil, err
	}
	st.objTerms = merged
	st.objConst = objConst
	for _, t := range merged {
		st.objCoef[t.Var] = t.Coef
	}

	st.order = branchOrder(m, st.objCoef)
	return st, nil
}

func mergeTerms(terms []mip.Term) []mip.Term {
	coefs := make(map[mip.Var]int64, len(terms))
	for _, t := range terms {
		coefs[t.Var] += t.Coef
	}
	merged := make([]mip.Term, 0, len(coefs))
	for v, c := range coefs {
		if c != 0 {
			merged = append(merged, mip.Term{Var: v, Coef: c})
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Var < merged[j].Var })
	return merged
}

func checkActivity(name string, terms []mip.Term, rhs int64, lo, hi []int64) error {
	sum := math.Abs(float64(rhs))
	for _, t := range terms {
		bound := math.Max(math.Abs(float64(lo[t.Var])), math.Abs(float64(hi[t.Var])))
		sum += math.Abs(float64(t.Coef)) * bound
	}
	if sum > activityLimit {
		return fmt.Errorf("activity range of %q exceeds the supported range", name)
	}
	return nil
}

func emptySatisfied(sense mip.Sense, rhs int64) bool {
	switch sense {
	case mip.LessEqual:
		return rhs >= 0
	case mip.GreaterEqual:
		return rhs <= 0
	default:
		return rhs == 0
	}
}

func branchOrder(m *mip.Model, objCoef []int64) []int {
	order := make([]int, m.NumVars())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		bi, bj := m.IsBinary(mip.Var(i)), m.IsBinary(mip.Var(j))
		if bi != bj {
			return bi
		}
		ci, cj := abs64(objCoef[i]), abs64(objCoef[j])
		if ci != cj {
			return ci > cj
		}
		return i < j
	})
	return order
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// propagate tightens variable bounds against every row, and against the
// incumbent cut once an incumbent exists, until no bound moves. It returns
// false as soon as some row cannot be satisfied within the current bounds.
func (s *search) propagate() bool {
	for {
		changed := false
		for i := range s.rows {
			r := &s.rows[i]
			ok, ch := s.propagateRow(r.terms, r.sense, r.rhs)
			if !ok {
				return false
			}
			if ch {
				changed = true
			}
		}
		if s.hasBest {
			// The objective is integral, so the next incumbent must beat
			// the current one by at least 1.
			if len(s.objTerms) == 0 {
				return false
			}
			ok, ch := s.propagateRow(s.objTerms, mip.LessEqual, s.bestSum-1)
			if !ok {
				return false
			}
			if ch {
				changed = true
			}
		}
		if !changed {
			return true
		}
	}
}

// propagateRow applies interval reasoning to one row. Bounds derived while
// the row's activity is stale are looser than the fixpoint but never wrong;
// the caller's loop rereads the row until nothing moves.
func (s *search) propagateRow(terms []mip.Term, sense mip.Sense, rhs int64) (ok, changed bool) {
	if sense == mip.LessEqual || sense == mip.Equal {
		var minAct int64
		for _, t := range terms {
			if t.Coef > 0 {
				minAct += t.Coef * s.lo[t.Var]
			} else {
				minAct += t.Coef * s.hi[t.Var]
			}
		}
		if minAct > rhs {
			return false, changed
		}
		slack := rhs - minAct
		for _, t := range terms {
			v := int(t.Var)
			if t.Coef > 0 {
				if newHi := s.lo[v] + slack/t.Coef; newHi < s.hi[v] {
					if !s.setHi(v, newHi) {
						return false, true
					}
					changed = true
				}
			} else {
				if newLo := s.hi[v] - slack/(-t.Coef); newLo > s.lo[v] {
					if !s.setLo(v, newLo) {
						return false, true
					}
					changed = true
				}
			}
		}
	}
	if sense == mip.GreaterEqual || sense == mip.Equal {
		var maxAct int64
		for _, t := range terms {
			if t.Coef > 0 {
				maxAct += t.Coef * s.hi[t.Var]
			} else {
				maxAct += t.Coef * s.lo[t.Var]
			}
		}
		if maxAct < rhs {
			return false, changed
		}
		surplus := maxAct - rhs
		for _, t := range terms {
			v := int(t.Var)
			if t.Coef > 0 {
				if newLo := s.hi[v] - surplus/t.Coef; newLo > s.lo[v] {
					if !s.setLo(v, newLo) {
						return false, true
					}
					changed = true
				}
			} else {
				if newHi := s.lo[v] + surplus/(-t.Coef); newHi < s.hi[v] {
					if !s.setHi(v, newHi) {
						return false, true
					}
					changed = true
				}
			}
		}
	}
	return true, changed
}

// setLo raises v's lower bound, recording the old bound on the trail. It
// reports whether v's domain stayed non-empty.
func (s *search) setLo(v int, val int64) bool {
	if val <= s.lo[v] {
		return true
	}
	s.trail = append(s.trail, change{v: v, wasHi: false, old: s.lo[v]})
	s.lo[v] = val
	return s.lo[v] <= s.hi[v]
}

// setHi lowers v's upper bound, recording the old bound on the trail. It
// reports whether v's domain stayed non-empty.
func (s *search) setHi(v int, val int64) bool {
	if val >= s.hi[v] {
		return true
	}
	s.trail = append(s.trail, change{v: v, wasHi: true, old: s.hi[v]})
	s.hi[v] = val
	return s.lo[v] <= s.hi[v]
}

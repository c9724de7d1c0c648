package sat

import (
	"math"

	"github.com/rhartert/yagh"
)

// branchingOrder decides which unassigned variable to branch on next and
// which polarity to give it. The four strategies below are a closed set
// picked once at construction by newBranchingOrder, not runtime polymorphism
// inside the propagation loop.
type branchingOrder interface {
	// newVar registers a freshly allocated variable with the heuristic.
	newVar(id int)
	// bump applies the heuristic's own activity-update rule to varID,
	// mutating variableStore.activities[varID] and resyncing whatever
	// index (heap, linked list) the heuristic keeps on top of it.
	bump(varID int)
	// decay applies the heuristic's per-conflict decay step.
	decay()
	// rescaled is called after variableStore rescales every activity by a
	// uniform positive factor (overflow guard in bumpVarActivity).
	rescaled()
	// undo reinserts varID into the candidate pool after it is unassigned
	// by backtracking.
	undo(varID int)
	// almostConflictBump credits varID with having sat in the reason clause
	// of a learnt-clause literal without itself taking part in the
	// conflict. CHB and LRB fold this into their reward; VSIDS and VMTF
	// ignore it.
	almostConflictBump(varID int)
	// randomBool returns a pseudo-random bit, seeded from Options.Seed.
	randomBool() bool
	// decide returns the next branching literal, or LitNull if every
	// variable is already assigned.
	decide() Literal
}

// newBranchingOrder constructs the heuristic selected by mode.
func newBranchingOrder(s *Solver, mode BranchingMode) branchingOrder {
	base := baseOrder{s: s}
	switch mode {
	case BranchingCHB:
		return newCHBOrder(base)
	case BranchingLRB:
		return newLRBOrder(base)
	case BranchingVMTF:
		return newVMTFOrder(base)
	default:
		return newVSIDSOrder(base)
	}
}

// baseOrder holds the solver backreference and the behavior shared by every
// strategy: the random-bit generator used by RndInit and the default no-op
// almostConflictBump. The random-var-freq and rnd-pol dice rolls live in
// Solver.maybeRandomVar and polarityFor.
type baseOrder struct {
	s *Solver
}

func (b baseOrder) randomBool() bool {
	return b.s.rng.Intn(2) == 0
}

// almostConflictBump is a no-op by default; only CHB and LRB track the
// bonus, so vsidsOrder and vmtfOrder inherit this.
func (b baseOrder) almostConflictBump(varID int) {}

// polarityFor returns the branching literal for varID once the heuristic has
// picked the variable: it honors phase-saving and rnd-pol random polarity.
func polarityFor(s *Solver, varID int) Literal {
	if s.opts.RndPol && s.rng.Float64() < s.opts.RndFreq {
		if s.rng.Intn(2) == 0 {
			return PositiveLiteral(varID)
		}
		return NegativeLiteral(varID)
	}
	switch s.vars.phase[varID] {
	case True:
		return PositiveLiteral(varID)
	case False:
		return NegativeLiteral(varID)
	default:
		return NegativeLiteral(varID)
	}
}

// maybeRandomVar implements random-var-freq: with probability RandomVarFreq,
// pick a uniformly random currently-unassigned variable instead of asking
// the heuristic's own ordering. Returns ok=false when either the dice roll
// fails or no unassigned variable remains.
func (s *Solver) maybeRandomVar() (int, bool) {
	if s.opts.RandomVarFreq <= 0 || s.rng.Float64() >= s.opts.RandomVarFreq {
		return 0, false
	}
	n := s.vars.numVars()
	if n == 0 {
		return 0, false
	}
	start := s.rng.Intn(n)
	for i := 0; i < n; i++ {
		v := (start + i) % n
		if s.VarValue(v) == Unknown && s.vars.eligible[v] {
			return v, true
		}
	}
	return 0, false
}

// vsidsOrder is the classic MiniSat-derived variable-state independent
// decaying sum: a binary heap keyed on negated activity (smallest key first,
// i.e. the most active variable on top), on the same yagh IntMap heap that
// chbOrder and lrbOrder use.
type vsidsOrder struct {
	baseOrder
	heap *yagh.IntMap[float64]
}

func newVSIDSOrder(base baseOrder) *vsidsOrder {
	return &vsidsOrder{baseOrder: base, heap: yagh.New[float64](0)}
}

func (o *vsidsOrder) newVar(id int) {
	o.heap.GrowBy(1)
	o.heap.Put(id, -o.s.vars.activities[id])
}

func (o *vsidsOrder) bump(varID int) {
	o.s.vars.activities[varID] += o.s.varInc
	if o.heap.Contains(varID) {
		o.heap.Put(varID, -o.s.vars.activities[varID])
	}
}

func (o *vsidsOrder) decay() {
	o.s.varInc /= o.s.opts.VariableDecay
}

func (o *vsidsOrder) rescaled() {
	// The heap keys are copies of the activities taken when each entry was
	// last put, so they are re-put at the rescaled values; otherwise stale
	// unscaled keys would outrank every entry bumped after the rescale.
	for v, act := range o.s.vars.activities {
		if o.heap.Contains(v) {
			o.heap.Put(v, -act)
		}
	}
}

func (o *vsidsOrder) undo(varID int) {
	o.heap.Put(varID, -o.s.vars.activities[varID])
	o.s.vars.canceled[varID] = o.s.TotalConflicts
}

func (o *vsidsOrder) decide() Literal {
	if v, ok := o.s.maybeRandomVar(); ok {
		return polarityFor(o.s, v)
	}
	for {
		next, ok := o.heap.Pop()
		if !ok {
			return LitNull
		}
		v := next.Elem
		if o.s.VarValue(v) != Unknown || !o.s.vars.eligible[v] {
			continue // stale: already assigned, or deactivated, since it was pushed
		}
		if o.s.opts.AntiExploration {
			// A variable that has sat in the heap since long before the
			// current conflict is demoted once by its staleness and
			// re-pushed, instead of letting a single old activity spike
			// dominate every later decision.
			if age := o.s.TotalConflicts - o.s.vars.canceled[v]; age > 0 {
				decayed := o.s.vars.activities[v] * math.Pow(0.95, float64(age))
				o.s.vars.activities[v] = decayed
				o.heap.Put(v, -decayed)
				o.s.vars.canceled[v] = o.s.TotalConflicts
				continue
			}
		}
		return polarityFor(o.s, v)
	}
}

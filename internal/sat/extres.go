package sat

// ExtDefMap records every extension variable the ER layer has introduced,
// keyed by the unordered pair of literals it stands for, grounded on
// SolverER.cc's ExtDefMap: a variable x defined over (a, b) carries the
// three defining clauses (¬x∨a∨b), (x∨¬a), (x∨¬b), so x is true exactly
// when a∨b is.
type ExtDefMap struct {
	byPair map[litPair]int
	defs   map[int][]ClauseRef // defining clauses per extension variable, for delExtVars
}

type litPair struct{ a, b Literal }

func mkLitPair(a, b Literal) litPair {
	if a > b {
		a, b = b, a
	}
	return litPair{a, b}
}

func newExtDefMap() *ExtDefMap {
	return &ExtDefMap{byPair: map[litPair]int{}, defs: map[int][]ClauseRef{}}
}

// lookup returns the extension variable defined over (a, b), if any.
func (m *ExtDefMap) lookup(a, b Literal) (int, bool) {
	v, ok := m.byPair[mkLitPair(a, b)]
	return v, ok
}

// AddExtVar introduces a fresh extension variable x standing for (a ∨ b),
// allocating it on s, adding its three defining clauses, and recording the
// definition. It is the caller's responsibility to ensure no extension
// variable already exists for (a, b), grounded on SolverER.cc's er_add.
func (s *Solver) AddExtVar(a, b Literal) int {
	x := s.AddVariable()
	xLit := PositiveLiteral(x)

	var defs []ClauseRef
	defs = append(defs, s.addExtClause(xLit.Opposite(), a, b))
	defs = append(defs, s.addExtClause(xLit, a.Opposite()))
	defs = append(defs, s.addExtClause(xLit, b.Opposite()))

	s.ext.byPair[mkLitPair(a, b)] = x
	s.ext.defs[x] = defs

	return x
}

// addExtClause adds one of the ER layer's own defining clauses directly
// (bypassing AddClause's root-level-only restriction: extension variables
// may be introduced at any decision level) and returns
// its reference if it lives in the arena, or ClauseRefNull for a clause
// that collapsed to a binary or unit fact.
func (s *Solver) addExtClause(lits ...Literal) ClauseRef {
	before := s.arena.Size()
	s.addClauseInternal(append([]Literal(nil), lits...), false)
	if s.arena.Size() == before {
		return ClauseRefNull
	}
	return ClauseRef(before)
}

// Prioritize bumps every variable in vars to 1.5x the most active variable
// currently known, forcing the branching heuristic to consider them next,
// grounded on SolverER.cc's er_prioritize.
func (s *Solver) Prioritize(vars []int) {
	desired := s.mostActiveActivity() * 1.5
	for _, v := range vars {
		s.vars.activities[v] = desired
		s.order.bump(v)
	}
}

func (s *Solver) mostActiveActivity() float64 {
	best := 0.0
	for _, a := range s.vars.activities {
		if a > best {
			best = a
		}
	}
	return best
}

// SubstituteExtensionVars rewrites a freshly learnt clause: if any two
// literals of lits (excluding the asserting UIP literal at position 0) are
// defined as an extension variable, they are both replaced by that
// variable, provided lits' width and lbd each fall within the configured
// window (SolverER.cc's ER_SUBSTITUTE_HEURISTIC_WIDTH/_LBD gates; a zero Max
// bound means unbounded). At most one substitution is attempted per clause,
// matching the ER_SUBSTITUTE_DOUBLE_BREAK goto in er_substitute: the source
// stops at the first matched pair rather than iterating to a fixed point,
// which this solver adopts rather than repeating substitution to
// convergence.
func (s *Solver) SubstituteExtensionVars(lits []Literal, lbd int) []Literal {
	if len(s.ext.byPair) == 0 || !s.withinSubstWindow(len(lits), lbd) {
		return lits
	}
	for i := 1; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			x, ok := s.ext.lookup(lits[i], lits[j])
			if !ok {
				continue
			}
			out := make([]Literal, 0, len(lits)-1)
			out = append(out, lits[0])
			for k := 1; k < len(lits); k++ {
				if k != i && k != j {
					out = append(out, lits[k])
				}
			}
			out = append(out, PositiveLiteral(x))
			return out
		}
	}
	return lits
}

// DeleteExtVars removes every learnt arena clause mentioning a variable in
// vars and each such variable's defining clauses that live in the arena,
// except clauses currently locked; a variable that appears in a locked
// learnt clause or has a locked defining clause is reported back so the
// caller can retry its deletion later, grounded on SolverER.cc's delExtVars.
// Binary clauses, including a variable's binary defining clauses (x∨¬a) and
// (x∨¬b), live only in the binary watch lists and are not removed.
func (s *Solver) DeleteExtVars(vars []int) (notDeleted []int) {
	toDelete := make(map[int]bool, len(vars))
	for _, v := range vars {
		toDelete[v] = true
	}
	locked := map[int]bool{}

	j := 0
	for _, ref := range s.learnts {
		v := s.arena.View(ref)
		if s.locked(ref) {
			for i := 0; i < v.size(); i++ {
				if toDelete[v.lit(i).VarID()] {
					locked[v.lit(i).VarID()] = true
				}
			}
			s.learnts[j] = ref
			j++
			continue
		}
		if clauseContainsAny(v, toDelete) {
			s.deleteClause(ref)
			continue
		}
		s.learnts[j] = ref
		j++
	}
	s.learnts = s.learnts[:j]

	// An extension variable's own defining clauses are added as permanent
	// constraints (addExtClause -> addClauseInternal(lits, false)), not
	// learnts, so they need their own sweep.
	defRefOwner := map[ClauseRef]int{}
	for v := range toDelete {
		for _, ref := range s.ext.defs[v] {
			if ref != ClauseRefNull {
				defRefOwner[ref] = v
			}
		}
	}

	j = 0
	for _, ref := range s.constraints {
		owner, isDef := defRefOwner[ref]
		if !isDef {
			s.constraints[j] = ref
			j++
			continue
		}
		if s.locked(ref) {
			locked[owner] = true
			s.constraints[j] = ref
			j++
			continue
		}
		s.deleteClause(ref)
	}
	s.constraints = s.constraints[:j]

	for v := range locked {
		notDeleted = append(notDeleted, v)
	}

	// Any requested variable that did not turn up locked had every arena
	// clause mentioning it in s.learnts, and its arena defining clause,
	// removed above; drop its bookkeeping so a future AddExtVar can reuse the
	// same literal pair.
	for v := range toDelete {
		if locked[v] {
			continue
		}
		delete(s.ext.defs, v)
		for pair, x := range s.ext.byPair {
			if x == v {
				delete(s.ext.byPair, pair)
			}
		}
		// v no longer has any defining clause, so it has no meaning left to
		// branch on; keep it out of every BranchingHeuristic's candidate pool.
		s.vars.setEligible(v, false)
	}
	return notDeleted
}

// withinSubstWindow reports whether a learnt clause of the given width and
// lbd falls inside the configured substitution gate. A zero Max bound is
// unbounded; a zero Min bound is always satisfied.
func (s *Solver) withinSubstWindow(width, lbd int) bool {
	o := s.opts
	if width < o.ExtSubMinWidth {
		return false
	}
	if o.ExtSubMaxWidth != 0 && width > o.ExtSubMaxWidth {
		return false
	}
	if lbd < o.ExtSubMinLBD {
		return false
	}
	if o.ExtSubMaxLBD != 0 && lbd > o.ExtSubMaxLBD {
		return false
	}
	return true
}

func clauseContainsAny(v clauseView, vars map[int]bool) bool {
	for i := 0; i < v.size(); i++ {
		if vars[v.lit(i).VarID()] {
			return true
		}
	}
	return false
}

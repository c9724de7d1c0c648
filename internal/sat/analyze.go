package sat

// explainConflict returns the negation of every literal of the falsified
// constraint that produced c: for a binary clause that is {c.confLit,
// c.other.Opposite()}; for an arena clause, explainConflictRef already walks
// all of its literals the same way.
func (s *Solver) explainConflict(c conflict) []Literal {
	if c.isBinary {
		s.tmpReason = append(s.tmpReason[:0], c.confLit, c.other.Opposite())
		return s.tmpReason
	}
	return s.explainConflictRef(c.ref, s.tmpReason)
}

// explainReason returns the antecedent literals for a trail entry assigned
// by reason r. A decision or assumption has no reason and is never passed
// here.
func (s *Solver) explainReason(r reason) []Literal {
	switch r.kind {
	case reasonBinary:
		s.tmpReason = append(s.tmpReason[:0], r.other)
		return s.tmpReason
	case reasonClause:
		return s.explainClauseRef(r.ref, s.tmpReason)
	default:
		return nil
	}
}

// analyze performs a backward walk of the trail from the conflict, counting
// how many literals at the current decision level remain to be resolved
// away until exactly one remains (the first Unique Implication Point),
// dispatching over the two physical clause tiers as it resolves. It returns
// the learnt clause (UIP literal first), the level to backjump to, and the
// clause's LBD.
func (s *Solver) analyze(c conflict) (learnt []Literal, backtrackLevel int, lbd int) {
	nImplicationPoints := 0

	s.tmpLearnts = append(s.tmpLearnts[:0], LitNull)
	s.seenVar.Clear()

	nextTrailIdx := s.trail.size() - 1
	lits := s.explainConflict(c)
	curLevel := s.decisionLevel()

	var uip Literal
	for {
		for _, q := range lits {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)
			s.bumpVarActivity(v)

			if s.vars.varLevel(v) == curLevel {
				nImplicationPoints++
				continue
			}
			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
			if lvl := s.vars.varLevel(v); lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}

		var v int
		for {
			uip = s.trail.literalAt(nextTrailIdx)
			nextTrailIdx--
			v = uip.VarID()
			if s.seenVar.Contains(v) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
		lits = s.explainReason(s.vars.reason[v])
	}

	s.tmpLearnts[0] = uip.Opposite()
	s.minimize()
	s.almostConflictBump(s.tmpLearnts)
	lbd = s.computeLBD(s.tmpLearnts)

	learnt = append([]Literal(nil), s.tmpLearnts...)
	return learnt, backtrackLevel, lbd
}

// almostConflictBump credits every variable that sits in the reason clause
// of a kept learnt-clause literal but never itself entered the conflict
// resolution (s.seenVar), CHB/LRB's "almost conflicted" bonus grounded on
// maplelcm's Solver.cc analyze() tail. VSIDS and VMTF's almostConflictBump
// is a no-op, so under those heuristics the walk leaves the variable order
// alone; explainReason still bumps the activity of every learnt reason
// clause it reads.
func (s *Solver) almostConflictBump(learnt []Literal) {
	for _, q := range learnt {
		r := s.vars.reason[q.VarID()]
		if r.isNone() {
			continue
		}
		for _, l := range s.explainReason(r) {
			v := l.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)
			s.order.almostConflictBump(v)
		}
	}
}

// minimize drops tmpLearnts[1:] literals whose entire antecedent is already
// subsumed by the seen set, "deep" minimization grounded on maplelcm's
// litRedundant: a literal can be removed from the
// learnt clause if every ancestor in its reason graph is itself already
// marked seen (or a root decision at level 0).
func (s *Solver) minimize() {
	kept := s.tmpLearnts[:1]
	for _, l := range s.tmpLearnts[1:] {
		if s.litRedundant(l) {
			continue
		}
		kept = append(kept, l)
	}
	s.tmpLearnts = kept
}

// litRedundant reports whether l's assignment is implied by literals
// already in the seen set, by recursively walking l's reason graph. A
// literal with no reason (a decision) is never redundant.
func (s *Solver) litRedundant(l Literal) bool {
	if s.vars.reason[l.VarID()].isNone() {
		return false
	}

	s.analyzeStack = append(s.analyzeStack[:0], l)
	mark := len(s.analyzeToClear)

	for len(s.analyzeStack) > 0 {
		cur := s.analyzeStack[len(s.analyzeStack)-1]
		s.analyzeStack = s.analyzeStack[:len(s.analyzeStack)-1]

		for _, p := range s.explainReason(s.vars.reason[cur.VarID()]) {
			pv := p.VarID()
			if s.seenVar.Contains(pv) || s.vars.varLevel(pv) == 0 {
				continue
			}
			if s.vars.reason[pv].isNone() {
				for _, c := range s.analyzeToClear[mark:] {
					s.seenVar.Remove(c.VarID())
				}
				s.analyzeToClear = s.analyzeToClear[:mark]
				return false
			}
			s.seenVar.Add(pv)
			s.analyzeToClear = append(s.analyzeToClear, p)
			s.analyzeStack = append(s.analyzeStack, p)
		}
	}
	s.analyzeToClear = s.analyzeToClear[:mark]
	return true
}

// computeLBD counts the number of distinct decision levels represented among
// lits, the Literal Block Distance quality score, grounded
// on gophersat's Clause.computeLbd.
func (s *Solver) computeLBD(lits []Literal) int {
	seen := map[int]struct{}{}
	for _, l := range lits {
		seen[s.vars.varLevel(l.VarID())] = struct{}{}
	}
	return len(seen)
}

package sat

import "time"

// rootLevel is the decision level reached once every current assumption has
// been pushed as a decision-like trail entry. Restarts and the
// top-level-conflict check unwind to this level instead of to 0 so that a
// restart never discards the caller's assumptions.
func (s *Solver) rootLevel() int { return len(s.assumptions) }

// assume pushes l as a new decision level and enqueues it with no reason,
// composing AssignmentTrail.newDecisionLevel with Solver.enqueue so the new
// fact also reaches the PropagationEngine's pending queue.
func (s *Solver) assume(l Literal) bool {
	s.trail.newDecisionLevel()
	return s.enqueue(l, reason{})
}

// undoOne is the per-literal callback AssignmentTrail.cancelUntil invokes
// when popping an assignment; it lets the branching heuristic reinsert the
// freed variable into its own ordering.
func (s *Solver) undoOne(varID int) {
	s.order.undo(varID)
}

func (s *Solver) cancelUntil(level int) {
	s.trail.cancelUntil(level, s.undoOne)
}

// Simplify removes clauses already satisfied at the root level, run once
// whenever the search returns to level 0 with an empty propagation queue,
// generalized over ClauseRef so it applies to both clause tiers.
func (s *Solver) Simplify() bool {
	if s.decisionLevel() != s.rootLevel() {
		panic("sat: Simplify called above the root level")
	}
	if s.unsat {
		return false
	}
	if c := s.Propagate(); !c.isNone() {
		s.recordConflictCore(c)
		s.poisonIfPermanent()
		return false
	}
	s.simplifySet(&s.learnts)
	s.simplifySet(&s.constraints)
	return true
}

func (s *Solver) simplifySet(refs *[]ClauseRef) {
	kept := (*refs)[:0]
	for _, ref := range *refs {
		if s.simplifyClause(ref) {
			s.deleteClause(ref)
		} else {
			kept = append(kept, ref)
		}
	}
	*refs = kept
}

// Solve pushes the recorded assumptions, then alternates restarted search
// runs, each budgeted by the configured RestartPolicy schedule and a growing
// learnt-clause cap, until a verdict is reached or shouldStop fires.
func (s *Solver) Solve() LBool {
	s.core = s.core[:0]
	s.startTime = time.Now()
	if !s.pushAssumptions() {
		s.cancelUntil(0)
		return False
	}

	numLearnts := s.NumConstraints() / 3
	status := Unknown

	s.printSeparator()
	s.printSearchHeader()
	s.printSeparator()

	for status == Unknown {
		status = s.search(s.restarts.next(), numLearnts)
		numLearnts += numLearnts/20 + 1

		if s.shouldStop() {
			break
		}
	}

	s.printSearchStats()
	s.printSeparator()

	// Assumptions are pushed fresh by pushAssumptions on every call, so the
	// trail must be fully unwound here rather than left at rootLevel(): the
	// next Solve call may run with a different (or empty) assumption set.
	s.cancelUntil(0)
	return status
}

// pushAssumptions enqueues every recorded assumption as a decision. If one
// contradicts an earlier assumption or a root-level fact, it computes the
// UNSAT core via analyzeFinal and reports false. This failure is scoped to
// the current assumptions: unlike a conflict found with no assumptions in
// play, it must not set the permanent s.unsat flag, or a later Solve call
// made after ClearAssumptions would incorrectly report UNSAT forever.
func (s *Solver) pushAssumptions() bool {
	for _, a := range s.assumptions {
		if !s.assume(a) {
			s.core = append(s.core, a)
			s.analyzeFinal(a.Opposite())
			s.poisonIfPermanent()
			return false
		}
		if c := s.Propagate(); !c.isNone() {
			s.recordConflictCore(c)
			s.poisonIfPermanent()
			return false
		}
	}
	return true
}

// poisonIfPermanent sets the sticky s.unsat flag only when the current
// conflict is independent of any assumption (rootLevel is 0): a conflict
// found while assumptions are in play proves those assumptions
// unsatisfiable with the formula, not that the formula itself is UNSAT.
func (s *Solver) poisonIfPermanent() {
	if s.rootLevel() == 0 {
		s.unsat = true
	}
}

func (s *Solver) recordConflictCore(c conflict) {
	lits := s.explainConflict(c)
	for _, l := range lits {
		s.analyzeFinal(l.Opposite())
	}
}

// analyzeFinal expresses why p is forced in terms of the current
// assumptions, appending any assumption literal responsible to s.core,
// grounded on maplelcm's analyzeFinal.
func (s *Solver) analyzeFinal(p Literal) {
	s.seenVar.Clear()
	s.seenVar.Add(p.VarID())

	if s.decisionLevel() == 0 {
		return // no assumption is on the trail
	}

	for i := s.trail.size() - 1; i >= 0; i-- {
		l := s.trail.literalAt(i)
		v := l.VarID()
		if !s.seenVar.Contains(v) {
			continue
		}
		if s.vars.reason[v].isNone() {
			if s.vars.varLevel(v) > 0 {
				s.core = append(s.core, l)
			}
		} else {
			for _, ante := range s.explainReason(s.vars.reason[v]) {
				if s.vars.varLevel(ante.VarID()) > 0 {
					s.seenVar.Add(ante.VarID())
				}
			}
		}
		s.seenVar.Remove(v)
	}
}

// search runs until it accumulates more than nConflicts conflicts since the
// last restart (returning Unknown so Solve can grow the budget and retry),
// finds a model (True), proves UNSAT (False), or shouldStop fires.
func (s *Solver) search(nConflicts int64, nLearnts int) LBool {
	if s.unsat {
		return False
	}

	s.TotalRestarts++
	var conflictCount int64

	for !s.shouldStop() {
		if s.TotalIterations%10000 == 0 {
			s.printSearchStats()
		}
		s.TotalIterations++

		c := s.Propagate()
		if !c.isNone() {
			conflictCount++
			s.TotalConflicts++

			if s.decisionLevel() <= s.rootLevel() {
				s.recordConflictCore(c)
				s.poisonIfPermanent()
				return False
			}

			learnt, backtrackLevel, lbd := s.analyze(c)
			learnt = s.SubstituteExtensionVars(learnt, lbd)
			s.lbdHist.add(lbd)

			if backtrackLevel < s.rootLevel() {
				backtrackLevel = s.rootLevel()
			}
			s.cancelUntil(backtrackLevel)
			s.record(learnt, lbd)

			s.decayClauseActivity()
			s.decayVarActivity()
			continue
		}

		if s.decisionLevel() == 0 && !s.Simplify() {
			return False
		}

		if s.arena.ShouldGC(s.opts.GCFrac) {
			s.garbageCollect()
		}

		if len(s.learnts)-s.NumAssigns() >= nLearnts {
			s.ReduceDB()
		}

		if s.NumAssigns() == s.NumVariables() {
			s.saveModel()
			s.cancelUntil(s.rootLevel())
			return True
		}

		if conflictCount > nConflicts || s.lbdHist.mustRestart() {
			s.lbdHist.clear()
			s.cancelUntil(s.rootLevel())
			return Unknown
		}

		l := s.order.decide()
		if l == LitNull {
			s.saveModel()
			s.cancelUntil(s.rootLevel())
			return True
		}
		s.assume(l)
	}

	return Unknown
}

// record turns a learnt clause into a trail fact (it is always asserting by
// construction) and, for clauses of size >= 2, adds it to the database,
// setting its LBD.
func (s *Solver) record(literals []Literal, lbd int) {
	if s.opts.Proof != nil {
		s.opts.Proof.OnLearn(literals)
	}
	if len(literals) == 1 {
		s.enqueue(literals[0], reason{})
		return
	}
	ref := s.addLearntClause(literals, lbd)
	if ref == ClauseRefNull {
		s.enqueue(literals[0], reason{kind: reasonBinary, other: literals[1].Opposite()})
	} else {
		s.enqueue(literals[0], reason{kind: reasonClause, ref: ref})
	}
}

// addLearntClause routes a learnt clause to the right storage tier exactly
// like addClauseInternal, but also stamps the new clause's LBD when it
// lands in the arena.
func (s *Solver) addLearntClause(literals []Literal, lbd int) ClauseRef {
	if len(literals) == 2 {
		s.addBinaryClause(literals[0], literals[1])
		return ClauseRefNull
	}
	ref := s.newGeneralClause(literals, true)
	s.arena.View(ref).setLBD(uint32(lbd))
	s.learnts = append(s.learnts, ref)
	return ref
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for i := range model {
		lb := s.VarValue(i)
		if lb == Unknown {
			lb = False
		}
		model[i] = lb == True
	}
	s.Models = append(s.Models, model)
}

func (s *Solver) garbageCollect() {
	relocateSlice := func(refs []ClauseRef) RelocatorFunc {
		return func(old, new ClauseRef) {
			for i, r := range refs {
				if r == old {
					refs[i] = new
				}
			}
		}
	}
	s.arena.GarbageCollect(
		relocateSlice(s.constraints),
		relocateSlice(s.learnts),
		RelocatorFunc(s.relocateReasons),
		RelocatorFunc(s.relocateWatches),
		RelocatorFunc(func(old, new ClauseRef) {
			for _, refs := range s.ext.defs {
				relocateSlice(refs)(old, new)
			}
		}),
	)
}

func (s *Solver) relocateReasons(old, new ClauseRef) {
	for v := range s.vars.reason {
		if s.vars.reason[v].kind == reasonClause && s.vars.reason[v].ref == old {
			s.vars.reason[v].ref = new
		}
	}
}

func (s *Solver) relocateWatches(old, new ClauseRef) {
	for lit := range s.watch.gen {
		for i := range s.watch.gen[lit] {
			if s.watch.gen[lit][i].ref == old {
				s.watch.gen[lit][i].ref = new
			}
		}
	}
}

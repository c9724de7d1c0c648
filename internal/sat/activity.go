package sat

// bumpClauseActivity increases ref's activity by the current clause
// increment, rescaling every learnt clause's activity (and the increment
// itself) if the bumped value overflows.
func (s *Solver) bumpClauseActivity(ref ClauseRef) {
	v := s.arena.View(ref)
	act := v.activity() + s.clauseInc
	v.setActivity(act)

	if act > 1e100 {
		s.clauseInc *= 1e-100
		for _, l := range s.learnts {
			lv := s.arena.View(l)
			lv.setActivity(lv.activity() * 1e-100)
		}
	}
}

// bumpVarActivity lets the branching heuristic apply its own activity-update
// rule for varID (VSIDS' additive increment, CHB's conflict-history reward,
// LRB's learning-rate update, or VMTF's move-to-front), then rescales every
// variable's activity if the result overflows.
func (s *Solver) bumpVarActivity(varID int) {
	s.order.bump(varID)

	if s.vars.activities[varID] > 1e100 {
		for i := range s.vars.activities {
			s.vars.activities[i] *= 1e-100
		}
		s.varInc *= 1e-100
		s.order.rescaled()
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc *= s.opts.ClauseDecay
}

// decayVarActivity lets the branching heuristic apply its own per-conflict
// decay step (VSIDS grows its increment; CHB/LRB age their learning rate).
func (s *Solver) decayVarActivity() {
	s.order.decay()
}

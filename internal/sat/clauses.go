package sat

import "strings"

// addClauseInternal normalizes literals (when the clause comes straight from
// the caller, not from clause learning) and routes the result to the right
// storage tier: size 0 is a contradiction, size 1 is asserted directly as a
// unit fact, size 2 goes to the binary watch index, and size >= 3 is
// allocated in the ClauseArena. It returns false if the clause (or the unit
// fact it reduces to) is immediately contradictory.
func (s *Solver) addClauseInternal(literals []Literal, learnt bool) bool {
	size := len(literals)

	if !learnt {
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[literals[i].Opposite()]; ok {
				return true // tautology: clause dropped silently
			}
			if _, ok := seen[literals[i]]; ok {
				size--
				literals[i], literals[size] = literals[size], literals[i]
				continue
			}
			seen[literals[i]] = struct{}{}

			switch s.LitValue(literals[i]) {
			case True:
				return true // already satisfied at the root level
			case False:
				size--
				literals[i], literals[size] = literals[size], literals[i]
			}
		}
		literals = literals[:size]
	}

	switch len(literals) {
	case 0:
		return false
	case 1:
		return s.enqueue(literals[0], reason{})
	case 2:
		s.addBinaryClause(literals[0], literals[1])
		return true
	default:
		ref := s.newGeneralClause(literals, learnt)
		if learnt {
			s.learnts = append(s.learnts, ref)
		} else {
			s.constraints = append(s.constraints, ref)
		}
		return true
	}
}

func (s *Solver) addBinaryClause(a, b Literal) {
	s.watch.WatchBinary(a.Opposite(), b)
	s.watch.WatchBinary(b.Opposite(), a)
}

// newGeneralClause allocates literals in the arena, picks the second watched
// literal for learnt clauses (the literal at the highest decision level,
// so the watched-literal invariant holds for an asserting clause),
// registers both watches, and bumps activities.
func (s *Solver) newGeneralClause(literals []Literal, learnt bool) ClauseRef {
	if learnt {
		maxLevel := -1
		wl := 1
		for i := 1; i < len(literals); i++ {
			if lvl := s.vars.varLevel(literals[i].VarID()); lvl > maxLevel {
				maxLevel = lvl
				wl = i
			}
		}
		literals[1], literals[wl] = literals[wl], literals[1]
	}

	ref := s.arena.Alloc(literals, learnt)

	if learnt {
		s.bumpClauseActivity(ref)
		for _, l := range literals {
			s.bumpVarActivity(l.VarID())
		}
	}

	v := s.arena.View(ref)
	s.watch.Watch(v.lit(0).Opposite(), ref, v.lit(1))
	s.watch.Watch(v.lit(1).Opposite(), ref, v.lit(0))
	return ref
}

// locked reports whether ref is currently the reason for its own first
// literal's assignment; a locked clause must survive reduceDB.
func (s *Solver) locked(ref ClauseRef) bool {
	v := s.arena.View(ref)
	r := s.vars.reason[v.lit(0).VarID()]
	return r.kind == reasonClause && r.ref == ref
}

// deleteClause detaches ref from both its watch lists and frees it in the
// arena, notifying the proof emitter if one is configured. This is the
// strict-detach path, appropriate for the occasional one-off deletion
// (Simplify, ER cleanup).
func (s *Solver) deleteClause(ref ClauseRef) {
	v := s.arena.View(ref)
	s.notifyDelete(v)
	s.watch.Unwatch(v.lit(0).Opposite(), ref)
	s.watch.Unwatch(v.lit(1).Opposite(), ref)
	s.arena.Free(ref)
}

// deleteClauseLazy frees ref and smudges its two watch lists instead of
// scanning them, the lazy-detach path: cheap enough to call once per clause
// in a ReduceDB batch, at the cost of leaving stale entries for
// propagateGeneral to filter (or a later sweepWatches) to clear.
func (s *Solver) deleteClauseLazy(ref ClauseRef) {
	v := s.arena.View(ref)
	s.notifyDelete(v)
	s.watch.Smudge(v.lit(0).Opposite(), ref)
	s.watch.Smudge(v.lit(1).Opposite(), ref)
	s.arena.Free(ref)
}

func (s *Solver) notifyDelete(v clauseView) {
	if s.opts.Proof != nil {
		s.opts.Proof.OnDelete(v.Literals())
	}
}

// sweepWatches clears every smudged or deleted entry from every watch list,
// bounding how much garbage a run of deleteClauseLazy calls can leave
// behind between propagation passes.
func (s *Solver) sweepWatches() {
	for lit := range s.watch.gen {
		s.watch.sweep(Literal(lit), func(ref ClauseRef) bool {
			return s.arena.View(ref).deleted()
		})
	}
}

// simplifyClause drops permanently-false literals (valid only once we know
// the clause's two watched literals are never themselves false, which
// Propagate maintains as an invariant) and reports whether the clause is
// now permanently satisfied.
func (s *Solver) simplifyClause(ref ClauseRef) bool {
	v := s.arena.View(ref)
	lits := v.Literals()
	k := 0
	for _, l := range lits {
		switch s.LitValue(l) {
		case True:
			return true
		case False:
			// discard
		default:
			lits[k] = l
			k++
		}
	}
	for i := 0; i < k; i++ {
		v.setLit(i, lits[i])
	}
	v.shrink(k)
	return false
}

// explainClauseRef returns the antecedent literals for ref: the negation of
// every literal but the one at position 0 (used to explain why position 0
// was forced true), bumping the clause's activity if it is learnt.
func (s *Solver) explainClauseRef(ref ClauseRef, dst []Literal) []Literal {
	v := s.arena.View(ref)
	n := v.size()
	dst = dst[:0]
	for i := 1; i < n; i++ {
		dst = append(dst, v.lit(i).Opposite())
	}
	if v.learnt() {
		s.bumpClauseActivity(ref)
	}
	return dst
}

// explainConflictRef returns the antecedent literals for ref when it is
// itself the conflicting clause (no position is singled out as "forced").
func (s *Solver) explainConflictRef(ref ClauseRef, dst []Literal) []Literal {
	v := s.arena.View(ref)
	dst = dst[:0]
	for i := 0; i < v.size(); i++ {
		dst = append(dst, v.lit(i).Opposite())
	}
	if v.learnt() {
		s.bumpClauseActivity(ref)
	}
	return dst
}

func clauseRefString(a *ClauseArena, ref ClauseRef) string {
	v := a.View(ref)
	lits := v.Literals()
	if len(lits) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(lits[0].String())
	for _, l := range lits[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

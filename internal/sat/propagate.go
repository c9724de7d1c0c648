package sat

// priorityPropQueue is the pending-literal queue used by the non-immediate
// PropagationModes: instead of draining literals strictly
// FIFO, it pops the literal the configured policy considers most promising
// to process next. The insertion sequence number breaks ties in FIFO order,
// so the policy only reorders pending work, never starves any of it.
type priorityPropQueue struct {
	mode  PropagationMode
	items []pqItem
	seq   int64
}

type pqItem struct {
	lit Literal
	seq int64
}

func newPriorityPropQueue(mode PropagationMode) *priorityPropQueue {
	return &priorityPropQueue{mode: mode}
}

func (q *priorityPropQueue) push(l Literal) {
	q.seq++
	q.items = append(q.items, pqItem{lit: l, seq: q.seq})
}

func (q *priorityPropQueue) size() int { return len(q.items) }

func (q *priorityPropQueue) clear() { q.items = q.items[:0] }

// pop removes and returns the item judged highest priority: with
// PropagationPriorityActivity that is the literal whose variable has the
// highest branching activity; with PropagationPriorityMinClauseSize it is
// the literal with the fewest non-binary watchers (the one most likely to
// immediately resolve a short, cheap-to-check clause). Older items win ties.
func (q *priorityPropQueue) pop(s *Solver) Literal {
	best := 0
	bestScore := q.score(s, q.items[0])
	for i := 1; i < len(q.items); i++ {
		if sc := q.score(s, q.items[i]); sc > bestScore ||
			(sc == bestScore && q.items[i].seq < q.items[best].seq) {
			best = i
			bestScore = sc
		}
	}
	item := q.items[best]
	q.items[best] = q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return item.lit
}

func (q *priorityPropQueue) score(s *Solver, item pqItem) float64 {
	switch q.mode {
	case PropagationPriorityActivity:
		return s.vars.activities[item.lit.VarID()]
	case PropagationPriorityMinClauseSize:
		return -float64(len(s.watch.gen[item.lit]))
	default:
		return -float64(item.seq)
	}
}

func (s *Solver) queuePush(l Literal) {
	if s.priorityPQ != nil {
		s.priorityPQ.push(l)
	} else {
		s.propQueue.Push(l)
	}
}

func (s *Solver) queueSize() int {
	if s.priorityPQ != nil {
		return s.priorityPQ.size()
	}
	return s.propQueue.Size()
}

func (s *Solver) queuePop() Literal {
	if s.priorityPQ != nil {
		return s.priorityPQ.pop(s)
	}
	return s.propQueue.Pop()
}

func (s *Solver) queueClear() {
	if s.priorityPQ != nil {
		s.priorityPQ.clear()
	} else {
		s.propQueue.Clear()
	}
}

// enqueue assigns l if currently unknown, recording r as its reason and
// pushing it onto the pending-propagation queue. It is the single path by
// which anything becomes a new fact, connecting the AssignmentTrail to the
// PropagationEngine's pending work.
func (s *Solver) enqueue(l Literal, r reason) bool {
	ok, isNew := s.trail.enqueue(l, r)
	if isNew {
		s.queuePush(l)
	}
	return ok
}

// conflict reports a clause found fully false during Propagate: either a
// binary clause (the two physical watch lists keep those out of the arena)
// or an arena clause.
type conflict struct {
	isBinary bool
	confLit  Literal   // valid when isBinary: the literal whose propagation found the conflict
	other    Literal   // valid when isBinary: the binary clause's other literal
	ref      ClauseRef // valid when !isBinary
}

func (c conflict) isNone() bool { return !c.isBinary && c.ref == ClauseRefNull }

var noConflict = conflict{ref: ClauseRefNull}

// Propagate drains the pending queue against every watched clause: binary
// clauses are checked directly off the compact binary watch list (the
// "binary fast path") before any non-binary clause watching the same
// literal is even loaded. It drains the pending queue until either it is
// empty (no conflict) or some clause is found fully false.
func (s *Solver) Propagate() conflict {
	for s.queueSize() > 0 {
		l := s.queuePop()

		for _, bw := range s.watch.bin[l] {
			switch s.LitValue(bw.other) {
			case True:
				continue
			case False:
				s.queueClear()
				return conflict{isBinary: true, confLit: l, other: bw.other}
			default:
				s.enqueue(bw.other, reason{kind: reasonBinary, other: l})
			}
		}

		if c := s.propagateGeneral(l); !c.isNone() {
			return c
		}
	}
	return noConflict
}

// propagateGeneral walks l's non-binary watch list: it ensures the false
// literal sits at position 1, skips clauses whose blocker is already true,
// looks for a fresh literal to watch among positions >= 2, and otherwise
// asserts position 0 as a unit fact.
func (s *Solver) propagateGeneral(l Literal) conflict {
	lst := s.watch.gen[l]
	s.tmpWatchers = append(s.tmpWatchers[:0], lst...)
	s.watch.gen[l] = lst[:0]

	for i, w := range s.tmpWatchers {
		if w.smudged || s.arena.View(w.ref).deleted() {
			continue
		}

		if s.LitValue(w.blocker) == True {
			s.watch.gen[l] = append(s.watch.gen[l], w)
			continue
		}

		v := s.arena.View(w.ref)
		opp := l.Opposite()
		if v.lit(0) == opp {
			v.setLit(0, v.lit(1))
			v.setLit(1, opp)
		}

		if s.LitValue(v.lit(0)) == True {
			s.watch.gen[l] = append(s.watch.gen[l], watcher{ref: w.ref, blocker: v.lit(0)})
			continue
		}

		found := false
		for k := 2; k < v.size(); k++ {
			if s.LitValue(v.lit(k)) != False {
				v.setLit(1, v.lit(k))
				v.setLit(k, opp)
				s.watch.Watch(v.lit(1).Opposite(), w.ref, v.lit(0))
				found = true
				break
			}
		}
		if found {
			continue
		}

		s.watch.gen[l] = append(s.watch.gen[l], watcher{ref: w.ref, blocker: v.lit(0)})
		if !s.enqueue(v.lit(0), reason{kind: reasonClause, ref: w.ref}) {
			s.watch.gen[l] = append(s.watch.gen[l], s.copyRemainingWatchers(i+1)...)
			s.queueClear()
			return conflict{ref: w.ref}
		}
	}

	return noConflict
}

func (s *Solver) copyRemainingWatchers(from int) []watcher {
	return append([]watcher(nil), s.tmpWatchers[from:]...)
}

package sat

import "testing"

func TestPriorityPropQueue_activityModeOrdersByScore(t *testing.T) {
	s := NewSolver(DefaultOptions)
	a := s.AddVariable()
	b := s.AddVariable()
	c := s.AddVariable()
	q := newPriorityPropQueue(PropagationPriorityActivity)

	s.vars.activities[a] = 1.0
	s.vars.activities[b] = 5.0
	s.vars.activities[c] = 3.0

	q.push(PositiveLiteral(a))
	q.push(PositiveLiteral(b))
	q.push(PositiveLiteral(c))

	want := []int{b, c, a}
	for _, w := range want {
		if q.size() == 0 {
			t.Fatalf("queue emptied early, still expected variable %d", w)
		}
		if got := q.pop(s).VarID(); got != w {
			t.Errorf("pop() = %d, want %d", got, w)
		}
	}
}

func TestPriorityPropQueue_minClauseSizeModePrefersFewerWatchers(t *testing.T) {
	s := NewSolver(DefaultOptions)
	a := s.AddVariable()
	b := s.AddVariable()
	c := s.AddVariable()
	q := newPriorityPropQueue(PropagationPriorityMinClauseSize)

	// Give a's literal three non-binary watchers, b's two, and c's just one,
	// so c should be preferred (fewest watchers = most likely to resolve
	// cheaply).
	s.watch.growTo(2 * s.vars.numVars())
	la, lb, lc := PositiveLiteral(a), PositiveLiteral(b), PositiveLiteral(c)
	for i := 0; i < 3; i++ {
		s.watch.Watch(la, ClauseRef(i), LitNull)
	}
	for i := 0; i < 2; i++ {
		s.watch.Watch(lb, ClauseRef(i+10), LitNull)
	}
	s.watch.Watch(lc, ClauseRef(20), LitNull)

	q.push(la)
	q.push(lb)
	q.push(lc)

	if got := q.pop(s).VarID(); got != c {
		t.Fatalf("pop() = %d, want %d (fewest watchers)", got, c)
	}
}

func TestPriorityPropQueue_tiesBreakFIFO(t *testing.T) {
	s := NewSolver(DefaultOptions)
	a := s.AddVariable()
	b := s.AddVariable()
	q := newPriorityPropQueue(PropagationPriorityActivity)

	q.push(PositiveLiteral(a))
	q.push(PositiveLiteral(b))

	if got := q.pop(s).VarID(); got != a {
		t.Fatalf("pop() = %d, want %d (older item wins a tie)", got, a)
	}
	if got := q.pop(s).VarID(); got != b {
		t.Fatalf("pop() = %d, want %d", got, b)
	}
}

func TestSolve_priorityActivityModeStillFindsModel(t *testing.T) {
	opts := DefaultOptions
	opts.PropagationMode = PropagationPriorityActivity
	s := NewSolver(opts)
	a := s.AddVariable()
	b := s.AddVariable()
	c := s.AddVariable()

	must(t, s.AddClause([]Literal{PositiveLiteral(a), PositiveLiteral(b)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(b), PositiveLiteral(c)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(a), PositiveLiteral(c)}))

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}
}

func TestSolve_priorityMinClauseSizeModeDetectsUNSAT(t *testing.T) {
	opts := DefaultOptions
	opts.PropagationMode = PropagationPriorityMinClauseSize
	s := NewSolver(opts)
	a := s.AddVariable()

	must(t, s.AddClause([]Literal{PositiveLiteral(a)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(a)}))

	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %v, want False", got)
	}
}

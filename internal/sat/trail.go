package sat

// reasonKind discriminates the three things a trail entry's reason can be:
// none (a decision or an assumption), a binary clause (kept out of the
// arena, so only the negation of its other literal is stored: the true
// literal that forced the entry), or a clause living in the ClauseArena.
type reasonKind uint8

const (
	reasonNone reasonKind = iota
	reasonBinary
	reasonClause
)

// reason is the justification for a trail entry. The zero value means
// "no reason" (a decision or an assumption).
type reason struct {
	kind  reasonKind
	other Literal   // valid when kind == reasonBinary: the true literal that forced the entry
	ref   ClauseRef // valid when kind == reasonClause
}

func (r reason) isNone() bool { return r.kind == reasonNone }

// AssignmentTrail is the ordered sequence of assigned literals together with
// its decision-level markers ("level heads"). It only records assignments;
// notifying the PropagationEngine's pending queue about a new assignment is
// the caller's responsibility (Solver.enqueue wraps both together).
type AssignmentTrail struct {
	vars        *variableStore
	phaseSaving int // Options.PhaseSaving: 0=off, 1=save, 2=save+seed initial phase

	trail    []Literal
	trailLim []int // level heads: trail index at which each decision level begins
}

func newAssignmentTrail(vars *variableStore, phaseSaving int) *AssignmentTrail {
	return &AssignmentTrail{vars: vars, phaseSaving: phaseSaving}
}

func (t *AssignmentTrail) decisionLevel() int {
	return len(t.trailLim)
}

func (t *AssignmentTrail) size() int {
	return len(t.trail)
}

func (t *AssignmentTrail) literalAt(i int) Literal {
	return t.trail[i]
}

// newDecisionLevel records the current trail size as the new level's head.
func (t *AssignmentTrail) newDecisionLevel() {
	t.trailLim = append(t.trailLim, len(t.trail))
}

// enqueue assigns l if it is currently unknown, recording its level and
// reason. ok is false if ¬l is already true (a conflict at the enqueue
// site); isNew reports whether this call actually performed a
// new assignment, as opposed to l already being true.
func (t *AssignmentTrail) enqueue(l Literal, r reason) (ok bool, isNew bool) {
	switch t.vars.litValue(l) {
	case False:
		return false, false
	case True:
		return true, false
	default:
		v := l.VarID()
		t.vars.assigns[l] = True
		t.vars.assigns[l.Opposite()] = False
		t.vars.level[v] = int32(t.decisionLevel())
		t.vars.reason[v] = r
		t.trail = append(t.trail, l)
		return true, true
	}
}

func (t *AssignmentTrail) undoOne(onUndo func(varID int)) {
	l := t.trail[len(t.trail)-1]
	v := l.VarID()

	if t.phaseSaving != 0 {
		t.vars.phase[v] = t.vars.assigns[PositiveLiteral(v)]
	}
	t.vars.assigns[l] = Unknown
	t.vars.assigns[l.Opposite()] = Unknown
	t.vars.reason[v] = reason{}
	t.vars.level[v] = -1

	t.trail = t.trail[:len(t.trail)-1]
	if onUndo != nil {
		onUndo(v)
	}
}

// cancelUntil pops the trail back to level's head, phase-saving every
// unassigned variable when PhaseSaving is enabled.
func (t *AssignmentTrail) cancelUntil(level int, onUndo func(varID int)) {
	for t.decisionLevel() > level {
		head := t.trailLim[len(t.trailLim)-1]
		for len(t.trail) > head {
			t.undoOne(onUndo)
		}
		t.trailLim = t.trailLim[:len(t.trailLim)-1]
	}
}

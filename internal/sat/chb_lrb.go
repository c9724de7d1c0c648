package sat

import "github.com/rhartert/yagh"

// chbOrder is Conflict History-Based branching: a variable's activity is an
// exponential moving average of a reward that decays with how long ago the
// variable was last involved in a conflict, rather than VSIDS' flat additive
// bump.
type chbOrder struct {
	baseOrder
	heap             *yagh.IntMap[float64]
	alpha            float64
	lastConflict     []int64
	almostConflicted []int64 // near-miss count accumulated since the last bump
}

func newCHBOrder(base baseOrder) *chbOrder {
	return &chbOrder{baseOrder: base, heap: yagh.New[float64](0), alpha: 0.4}
}

func (o *chbOrder) newVar(id int) {
	o.lastConflict = append(o.lastConflict, 0)
	o.almostConflicted = append(o.almostConflicted, 0)
	o.heap.GrowBy(1)
	o.heap.Put(id, -o.s.vars.activities[id])
}

func (o *chbOrder) almostConflictBump(varID int) {
	o.almostConflicted[varID]++
}

func (o *chbOrder) bump(varID int) {
	age := o.s.TotalConflicts - o.lastConflict[varID] + 1
	reward := (1.0 + float64(o.almostConflicted[varID])) / float64(age)
	act := o.s.vars.activities[varID]
	act = (1-o.alpha)*act + o.alpha*reward
	o.s.vars.activities[varID] = act
	o.lastConflict[varID] = o.s.TotalConflicts
	o.almostConflicted[varID] = 0

	if o.heap.Contains(varID) {
		o.heap.Put(varID, -act)
	}
}

// decay anneals the step size toward a floor of 0.06, matching the original
// CHB schedule: early conflicts weigh new evidence heavily, later ones barely
// move the average.
func (o *chbOrder) decay() {
	if o.alpha > 0.06 {
		o.alpha -= 1e-6
	}
}

func (o *chbOrder) rescaled() {
	// A CHB reward is (1 + almost-conflict count) / age, and the activity is
	// a moving average of such rewards, so bump keeps it far below the
	// overflow threshold of bumpVarActivity; there is no heap key to resync.
}

func (o *chbOrder) undo(varID int) {
	o.heap.Put(varID, -o.s.vars.activities[varID])
}

func (o *chbOrder) decide() Literal {
	if v, ok := o.s.maybeRandomVar(); ok {
		return polarityFor(o.s, v)
	}
	for {
		next, ok := o.heap.Pop()
		if !ok {
			return LitNull
		}
		if o.s.VarValue(next.Elem) != Unknown || !o.s.vars.eligible[next.Elem] {
			continue
		}
		return polarityFor(o.s, next.Elem)
	}
}

// lrbOrder is Learning Rate Branching: each time a variable is unassigned,
// its activity is updated to the fraction of conflicts it participated in
// since the interval began, blended into a running average. The interval
// starts when decide picks the variable; an assignment made by propagation
// does not restart it, so such a variable keeps the start of its last
// decision (0 if decide never picked it).
type lrbOrder struct {
	baseOrder
	heap             *yagh.IntMap[float64]
	alpha            float64
	assigned         []int64 // conflict count when decide last picked the variable
	participated     []int64 // participations counted so far within that interval
	almostConflicted []int64 // near-miss count accumulated within that interval
}

func newLRBOrder(base baseOrder) *lrbOrder {
	return &lrbOrder{baseOrder: base, heap: yagh.New[float64](0), alpha: 0.4}
}

func (o *lrbOrder) newVar(id int) {
	o.assigned = append(o.assigned, 0)
	o.participated = append(o.participated, 0)
	o.almostConflicted = append(o.almostConflicted, 0)
	o.heap.GrowBy(1)
	o.heap.Put(id, -o.s.vars.activities[id])
}

func (o *lrbOrder) almostConflictBump(varID int) {
	o.almostConflicted[varID]++
}

// bump records a participation in the current interval. The running-average
// activity itself is only recomputed when the interval closes, in undo, so
// the heap key here is a cheap interim proxy rather than the true score.
func (o *lrbOrder) bump(varID int) {
	o.participated[varID]++
	if o.heap.Contains(varID) {
		o.heap.Put(varID, -(o.s.vars.activities[varID] + float64(o.participated[varID])))
	}
}

func (o *lrbOrder) decay() {
	if o.alpha > 0.06 {
		o.alpha -= 1e-6
	}
}

func (o *lrbOrder) rescaled() {}

func (o *lrbOrder) undo(varID int) {
	if interval := o.s.TotalConflicts - o.assigned[varID]; interval > 0 {
		reward := float64(o.participated[varID]+o.almostConflicted[varID]) / float64(interval)
		o.s.vars.activities[varID] = (1-o.alpha)*o.s.vars.activities[varID] + o.alpha*reward
	}
	o.participated[varID] = 0
	o.almostConflicted[varID] = 0
	o.heap.Put(varID, -o.s.vars.activities[varID])
}

func (o *lrbOrder) decide() Literal {
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
			continue
		}
		o.assigned[v] = o.s.TotalConflicts
		return polarityFor(o.s, v)
	}
}

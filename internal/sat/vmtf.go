package sat

// vmtfOrder is Variable Move-To-Front: variables sit on a doubly-linked list
// ordered by recency of their last bump, and a search cursor scans from the
// most recently bumped variable toward the least, so most decisions don't
// have to rescan from the head.
type vmtfOrder struct {
	baseOrder

	next []int // next[v]: toward the tail (less recently bumped), -1 at the tail
	prev []int // prev[v]: toward the head (more recently bumped), -1 at the head
	head int
	tail int

	search    int // next unassigned candidate to examine, -1 if exhausted
	ts        int64
	timestamp []int64
}

func newVMTFOrder(base baseOrder) *vmtfOrder {
	return &vmtfOrder{baseOrder: base, head: -1, tail: -1, search: -1}
}

func (o *vmtfOrder) newVar(id int) {
	o.next = append(o.next, -1)
	o.prev = append(o.prev, -1)
	o.ts++
	o.timestamp = append(o.timestamp, o.ts)
	o.pushFront(id)
}

func (o *vmtfOrder) pushFront(v int) {
	o.next[v] = o.head
	o.prev[v] = -1
	if o.head != -1 {
		o.prev[o.head] = v
	}
	o.head = v
	if o.tail == -1 {
		o.tail = v
	}
	o.search = v
}

func (o *vmtfOrder) unlink(v int) {
	if o.prev[v] != -1 {
		o.next[o.prev[v]] = o.next[v]
	} else {
		o.head = o.next[v]
	}
	if o.next[v] != -1 {
		o.prev[o.next[v]] = o.prev[v]
	} else {
		o.tail = o.prev[v]
	}
}

func (o *vmtfOrder) bump(varID int) {
	o.ts++
	o.timestamp[varID] = o.ts
	if varID == o.head {
		return
	}
	o.unlink(varID)
	o.pushFront(varID)
}

func (o *vmtfOrder) decay() {
	// VMTF orders purely by recency of bump; there is no separate decay.
}

func (o *vmtfOrder) rescaled() {}

// undo moves the search cursor back to varID when it sits closer to the head
// than the cursor's current position, so decide() reconsiders it instead of
// skipping straight past a variable that just became eligible again.
func (o *vmtfOrder) undo(varID int) {
	if o.search == -1 || o.timestamp[varID] > o.timestamp[o.search] {
		o.search = varID
	}
}

func (o *vmtfOrder) decide() Literal {
	if v, ok := o.s.maybeRandomVar(); ok {
		return polarityFor(o.s, v)
	}
	v := o.search
	for v != -1 && (o.s.VarValue(v) != Unknown || !o.s.vars.eligible[v]) {
		v = o.next[v]
	}
	if v == -1 {
		return LitNull
	}
	o.search = v
	return polarityFor(o.s, v)
}

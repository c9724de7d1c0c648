package sat

import "testing"

func TestWatchLists_UnwatchRemovesAllEntriesForRef(t *testing.T) {
	w := newWatchLists()
	w.growTo(4)
	l := Literal(0)

	w.Watch(l, ClauseRef(10), Literal(2))
	w.Watch(l, ClauseRef(20), Literal(2))
	w.Watch(l, ClauseRef(10), Literal(4))

	w.Unwatch(l, ClauseRef(10))

	if len(w.gen[l]) != 1 || w.gen[l][0].ref != ClauseRef(20) {
		t.Fatalf("gen[l] = %v, want a single entry for ref 20", w.gen[l])
	}
}

func TestWatchLists_SmudgeThenSweepRemovesOnlySmudged(t *testing.T) {
	w := newWatchLists()
	w.growTo(4)
	l := Literal(0)

	w.Watch(l, ClauseRef(10), Literal(2))
	w.Watch(l, ClauseRef(20), Literal(2))

	w.Smudge(l, ClauseRef(10))
	if !w.gen[l][0].smudged {
		t.Fatalf("Smudge did not mark the ref-10 entry")
	}

	w.sweep(l, func(ClauseRef) bool { return false })

	if len(w.gen[l]) != 1 || w.gen[l][0].ref != ClauseRef(20) {
		t.Fatalf("gen[l] after sweep = %v, want only ref 20 left", w.gen[l])
	}
}

func TestWatchLists_SweepAlsoDropsDeletedRefs(t *testing.T) {
	w := newWatchLists()
	w.growTo(4)
	l := Literal(0)

	w.Watch(l, ClauseRef(10), Literal(2))
	w.Watch(l, ClauseRef(20), Literal(2))

	w.sweep(l, func(ref ClauseRef) bool { return ref == ClauseRef(20) })

	if len(w.gen[l]) != 1 || w.gen[l][0].ref != ClauseRef(10) {
		t.Fatalf("gen[l] after sweep = %v, want only ref 10 left", w.gen[l])
	}
}

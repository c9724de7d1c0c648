package sat

// binWatcher is an entry in a binary clause's watch list: the other literal
// of the 2-clause being watched, used both as the propagation target and as
// the "blocker" quick-satisfaction check.
type binWatcher struct {
	other Literal
}

// watcher is an entry in a non-binary clause's watch list.
type watcher struct {
	ref ClauseRef

	// blocker is another literal of the clause: if it is already true we
	// can skip loading the clause at all.
	blocker Literal

	// smudged marks the entry as possibly referring to a clause that has
	// since been deleted; a later sweep filters it out (the lazy-detach
	// path).
	smudged bool
}

// WatchLists holds, for every literal, the binary clauses and the non-binary
// clauses that must be woken when that literal becomes true. Two physical
// lists per literal, keeping the common binary case out of the general path.
type WatchLists struct {
	bin [][]binWatcher
	gen [][]watcher
}

func newWatchLists() *WatchLists {
	return &WatchLists{}
}

func (w *WatchLists) growTo(nLits int) {
	for len(w.bin) < nLits {
		w.bin = append(w.bin, nil)
		w.gen = append(w.gen, nil)
	}
}

// WatchBinary registers a binary clause (lit ∨ other) to be checked whenever
// ¬lit is propagated.
func (w *WatchLists) WatchBinary(watchOn Literal, other Literal) {
	w.bin[watchOn] = append(w.bin[watchOn], binWatcher{other: other})
}

// Watch registers a non-binary clause ref on watchOn's list with the given
// blocker literal.
func (w *WatchLists) Watch(watchOn Literal, ref ClauseRef, blocker Literal) {
	w.gen[watchOn] = append(w.gen[watchOn], watcher{ref: ref, blocker: blocker})
}

// Unwatch removes every entry pointing to ref from watchOn's list in O(list
// size); this is the strict-detach operation, as opposed to Smudge below.
func (w *WatchLists) Unwatch(watchOn Literal, ref ClauseRef) {
	lst := w.gen[watchOn]
	j := 0
	for i := range lst {
		if lst[i].ref != ref {
			lst[j] = lst[i]
			j++
		}
	}
	w.gen[watchOn] = lst[:j]
}

// Smudge marks every watcher of ref as possibly stale, to be lazily filtered
// out of watchOn's list on the next sweep rather than removed immediately.
func (w *WatchLists) Smudge(watchOn Literal, ref ClauseRef) {
	for i, e := range w.gen[watchOn] {
		if e.ref == ref {
			w.gen[watchOn][i].smudged = true
		}
	}
}

// sweep drops every smudged or deleted entry from watchOn's list.
func (w *WatchLists) sweep(watchOn Literal, isDeleted func(ClauseRef) bool) {
	lst := w.gen[watchOn]
	j := 0
	for i := range lst {
		if lst[i].smudged || isDeleted(lst[i].ref) {
			continue
		}
		lst[j] = lst[i]
		j++
	}
	w.gen[watchOn] = lst[:j]
}

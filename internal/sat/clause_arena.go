package sat

import "math"

// ClauseRef is an opaque handle to a clause stored in a ClauseArena. It is
// stable between garbage collections and is rewritten in place by the
// collector during compaction. The zero value, ClauseRefNull, never denotes
// a live clause.
//
// This is the opaque-reference/arena-offset pattern used by go-air-gini's
// internal/xo.CLoc: clauses are addressed by an integer offset into a flat
// buffer rather than by pointer, which makes in-place compaction possible
// without having to chase and fix up pointers held by arbitrary holders.
type ClauseRef uint32

// ClauseRefNull is the sentinel "no clause" reference.
const ClauseRefNull ClauseRef = 0

// clauseHeaderWords is the number of uint32 words of metadata stored ahead of
// a clause's literals: [0] learnt/deleted flags, [1] LBD, [2] size,
// [3] activity (as float32 bits).
const clauseHeaderWords = 4

const (
	flagLearnt  uint32 = 1 << 0
	flagDeleted uint32 = 1 << 1
)

// ClauseArena is an append-only, compactable store for clauses. Clauses are
// referenced by ClauseRef, an offset into the arena's backing buffer, so that
// a compaction pass can move every live clause and rewrite every holder's
// reference without invalidating anything the caller is holding onto (the
// caller just needs to pass its refs through Relocator.Relocate).
type ClauseArena struct {
	buf []uint32

	// wastedWords counts words that belong to freed clauses and have not yet
	// been reclaimed by a compaction pass.
	wastedWords int
}

// NewClauseArena returns an empty arena with room for capWords words without
// reallocating.
func NewClauseArena(capWords int) *ClauseArena {
	a := &ClauseArena{buf: make([]uint32, 1, max(capWords, clauseHeaderWords+2))}
	// Word 0 is never a valid clause offset; it is reserved so that
	// ClauseRefNull == 0 can be used as a sentinel.
	return a
}

// Alloc stores a new clause with the given literals and flags, returning its
// reference. literals must have length >= 2 (unit clauses propagate directly
// off the trail and empty clauses are an immediate conflict; neither is ever
// stored in the arena).
func (a *ClauseArena) Alloc(literals []Literal, learnt bool) ClauseRef {
	if len(literals) < 2 {
		panic("sat: clause arena only stores clauses of size >= 2")
	}
	ref := ClauseRef(len(a.buf))

	header := uint32(0)
	if learnt {
		header |= flagLearnt
	}
	a.buf = append(a.buf, header)
	a.buf = append(a.buf, 0) // lbd, set by caller
	a.buf = append(a.buf, uint32(len(literals)))
	a.buf = append(a.buf, 0) // activity, set by caller
	for _, l := range literals {
		a.buf = append(a.buf, uint32(int32(l)))
	}
	return ref
}

// Free marks the clause as deleted. The words are not reclaimed until the
// next GarbageCollect; Wasted() reports how many words are pending reclaim.
func (a *ClauseArena) Free(ref ClauseRef) {
	a.buf[ref] |= flagDeleted
	a.wastedWords += clauseHeaderWords + int(a.buf[ref+2])
}

// Wasted returns the number of arena words occupied by freed clauses.
func (a *ClauseArena) Wasted() int {
	return a.wastedWords
}

// Size returns the total number of words in use by the arena (live + freed).
func (a *ClauseArena) Size() int {
	return len(a.buf)
}

// ShouldGC reports whether fragmentation has crossed gcFrac, the ratio at
// which a compaction pass pays for itself (default 0.20).
func (a *ClauseArena) ShouldGC(gcFrac float64) bool {
	if len(a.buf) == 0 {
		return false
	}
	return float64(a.wastedWords)/float64(len(a.buf)) >= gcFrac
}

// clauseView exposes a live clause's metadata and literal slice backed
// directly by the arena's buffer; mutations through Literals() are visible to
// the arena.
type clauseView struct {
	arena *ClauseArena
	ref   ClauseRef
}

// View returns a handle to the clause at ref. Using a freed ref is a
// programming error and its behavior is undefined (it will very likely
// panic on the next access).
func (a *ClauseArena) View(ref ClauseRef) clauseView {
	return clauseView{arena: a, ref: ref}
}

func (v clauseView) deleted() bool {
	return v.arena.buf[v.ref]&flagDeleted != 0
}

func (v clauseView) learnt() bool {
	return v.arena.buf[v.ref]&flagLearnt != 0
}

func (v clauseView) size() int {
	return int(v.arena.buf[v.ref+2])
}

// lbd returns the clause's literal-block-distance score (meaningful only for
// learnt clauses).
func (v clauseView) lbd() uint32 {
	return v.arena.buf[v.ref+1]
}

func (v clauseView) setLBD(lbd uint32) {
	v.arena.buf[v.ref+1] = lbd
}

func (v clauseView) activity() float64 {
	return float64(math.Float32frombits(v.arena.buf[v.ref+3]))
}

func (v clauseView) setActivity(act float64) {
	v.arena.buf[v.ref+3] = math.Float32bits(float32(act))
}

// Literals returns a freshly allocated copy of the clause's literals.
// Mutating the returned slice has no effect on the arena; use lit/setLit
// to read or write a clause's literals in place.
func (v clauseView) Literals() []Literal {
	n := v.size()
	words := v.arena.buf[v.ref+clauseHeaderWords : v.ref+ClauseRef(clauseHeaderWords)+ClauseRef(n)]
	lits := make([]Literal, n)
	for i, w := range words {
		lits[i] = Literal(int32(w))
	}
	return lits
}

func (v clauseView) setLit(i int, l Literal) {
	v.arena.buf[v.ref+ClauseRef(clauseHeaderWords+i)] = uint32(int32(l))
}

func (v clauseView) lit(i int) Literal {
	return Literal(int32(v.arena.buf[v.ref+ClauseRef(clauseHeaderWords+i)]))
}

// shrink reduces the clause's reported size without reclaiming the trailing
// words; they become wasted space accounted for on the next Free/GC.
func (v clauseView) shrink(newSize int) {
	old := v.size()
	if newSize > old {
		panic("sat: shrink must not grow a clause")
	}
	v.arena.wastedWords += old - newSize
	v.arena.buf[v.ref+2] = uint32(newSize)
}

// Relocator receives the pre-compaction and post-compaction reference for
// every clause that survives a GarbageCollect so that external holders
// (watch lists, trail reasons, the learnts/constraints lists, the ER layer's
// definition database) can rewrite their own copies of the reference.
type Relocator interface {
	Relocate(old, new ClauseRef)
}

// RelocatorFunc adapts a function to the Relocator interface.
type RelocatorFunc func(old, new ClauseRef)

func (f RelocatorFunc) Relocate(old, new ClauseRef) { f(old, new) }

// GarbageCollect performs two-space compaction: every non-deleted clause is
// copied, in order, into a fresh buffer and every reference is rewritten via
// the supplied relocators. Literal content and order are preserved exactly.
func (a *ClauseArena) GarbageCollect(relocators ...Relocator) {
	next := &ClauseArena{buf: make([]uint32, 1, len(a.buf)-a.wastedWords+1)}

	ref := ClauseRef(1)
	for int(ref) < len(a.buf) {
		size := int(a.buf[ref+2])
		total := clauseHeaderWords + size
		if a.buf[ref]&flagDeleted == 0 {
			newRef := ClauseRef(len(next.buf))
			next.buf = append(next.buf, a.buf[ref:ref+ClauseRef(total)]...)
			for _, r := range relocators {
				r.Relocate(ref, newRef)
			}
		}
		ref += ClauseRef(total)
	}

	a.buf = next.buf
	a.wastedWords = 0
}

package dimacs

import (
	"bufio"
	"fmt"
	"io"

	"github.com/oliveras-waterloo/ercl/internal/sat"
)

// WriteDIMACS emits a DIMACS CNF rendering of s's current unsatisfied
// clauses plus its assumptions, for debugging a run rather than for
// round-tripping: variable numbering is a dense remapping starting at 1,
// counting only the variables that actually appear in some emitted clause.
func WriteDIMACS(w io.Writer, s *sat.Solver) error {
	bw := bufio.NewWriter(w)

	clauses := collectClauses(s)
	remap := map[int]int{}
	for _, c := range clauses {
		for _, l := range c {
			remapVar(remap, l)
		}
	}

	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", len(remap), len(clauses)); err != nil {
		return err
	}
	for _, c := range clauses {
		for _, l := range c {
			if _, err := fmt.Fprintf(bw, "%d ", dimacsLit(remap, l)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw, "0"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// collectClauses gathers every clause not already satisfied at the root
// level: the problem constraints, the learnt clauses, and one unit clause
// per assumption, each as a slice of signed DIMACS literals (1-indexed, no
// remapping applied yet).
func collectClauses(s *sat.Solver) [][]int {
	var out [][]int
	for _, c := range s.Constraints() {
		if lits, ok := unsatisfiedLits(s, c); ok {
			out = append(out, lits)
		}
	}
	for _, c := range s.Learnts() {
		if lits, ok := unsatisfiedLits(s, c); ok {
			out = append(out, lits)
		}
	}
	for _, bc := range s.BinaryClauses() {
		if lits, ok := unsatisfiedLits(s, bc[:]); ok {
			out = append(out, lits)
		}
	}
	for _, a := range s.Assumptions() {
		out = append(out, []int{signedLit(a)})
	}
	return out
}

// unsatisfiedLits converts a clause's literals to signed DIMACS form,
// reporting ok=false when the clause is already satisfied (no point
// emitting it to a debug dump).
func unsatisfiedLits(s *sat.Solver, lits []sat.Literal) ([]int, bool) {
	out := make([]int, 0, len(lits))
	for _, l := range lits {
		if s.LitValue(l) == sat.True {
			return nil, false
		}
		out = append(out, signedLit(l))
	}
	return out, true
}

func signedLit(l sat.Literal) int {
	v := l.VarID() + 1
	if l.IsPositive() {
		return v
	}
	return -v
}

func remapVar(remap map[int]int, signed int) {
	v := abs(signed)
	if _, ok := remap[v]; !ok {
		remap[v] = len(remap) + 1
	}
}

func dimacsLit(remap map[int]int, signed int) int {
	v := remap[abs(signed)]
	if signed < 0 {
		return -v
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

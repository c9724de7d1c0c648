package dimacs

import (
	"os"
	"strings"
	"testing"

	"github.com/oliveras-waterloo/ercl/internal/sat"
)

func TestWriteDIMACS_remapsAndSkipsSatisfied(t *testing.T) {
	s := sat.NewDefaultSolver()
	v0 := s.AddVariable()
	v1 := s.AddVariable()
	v2 := s.AddVariable()
	_ = s.AddVariable() // never referenced by any clause, must be excluded

	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(v0), sat.PositiveLiteral(v1), sat.NegativeLiteral(v2)}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(v2)}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(v0), sat.PositiveLiteral(v2)}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}

	var buf strings.Builder
	if err := WriteDIMACS(&buf, s); err != nil {
		t.Fatalf("WriteDIMACS: %v", err)
	}

	got := buf.String()
	// 4 declared variables but only 3 ever appear in a clause, so the dense
	// remap reports 3; the (v0 ∨ v2) binary clause is already satisfied by
	// v2's unit fact and must not be counted.
	if !strings.HasPrefix(got, "p cnf 3 1\n") {
		t.Errorf("WriteDIMACS(): want a dense 3-variable, 1-clause header, got %q", got)
	}
}

func TestWriteDIMACS_includesBinaryAndAssumption(t *testing.T) {
	s := sat.NewDefaultSolver()
	v0 := s.AddVariable()
	v1 := s.AddVariable()

	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(v0), sat.NegativeLiteral(v1)}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	s.AddAssumption(sat.PositiveLiteral(v1))

	var buf strings.Builder
	if err := WriteDIMACS(&buf, s); err != nil {
		t.Fatalf("WriteDIMACS: %v", err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, "p cnf 2 2\n") {
		t.Errorf("WriteDIMACS(): want a 2-variable, 2-clause header, got %q", got)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("WriteDIMACS(): want 1 header + 2 clause lines, got %d lines: %q", len(lines), got)
	}
}

func TestParseModels(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/models.out"
	if err := writeFile(path, "1 -2 3 0\n-1 2 -3 0\n"); err != nil {
		t.Fatalf("writeFile: %v", err)
	}

	got, err := ParseModels(path)
	if err != nil {
		t.Fatalf("ParseModels: %v", err)
	}

	want := [][]bool{
		{true, false, true},
		{false, true, false},
	}
	if len(got) != len(want) {
		t.Fatalf("ParseModels(): want %d models, got %d", len(want), len(got))
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("ParseModels() model %d lit %d: want %v, got %v", i, j, want[i][j], got[i][j])
			}
		}
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

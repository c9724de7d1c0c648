package sat

import "testing"

func TestSolve_simpleSAT(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()

	must(t, s.AddClause([]Literal{PositiveLiteral(a), PositiveLiteral(b)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(a), PositiveLiteral(b)}))

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}

	model := s.Model()
	if !model[b] {
		t.Errorf("model[b] = false, want true (b is forced by both clauses)")
	}
}

func TestSolve_simpleUNSAT(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()

	must(t, s.AddClause([]Literal{PositiveLiteral(a)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(a)}))

	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %v, want False", got)
	}
}

func TestSolve_assumptionsScopedUNSATDoesNotPoisonFormula(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()
	must(t, s.AddClause([]Literal{PositiveLiteral(a), PositiveLiteral(b)}))

	s.AddAssumption(NegativeLiteral(a))
	s.AddAssumption(NegativeLiteral(b))
	if got := s.Solve(); got != False {
		t.Fatalf("Solve() under contradicting assumptions = %v, want False", got)
	}
	if len(s.Core()) == 0 {
		t.Errorf("Core() is empty after an assumption-driven UNSAT result")
	}

	s.ClearAssumptions()
	if got := s.Solve(); got != True {
		t.Fatalf("Solve() after ClearAssumptions = %v, want True (formula itself is satisfiable)", got)
	}
}

func TestSolve_repeatedCallsResetTrail(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()
	must(t, s.AddClause([]Literal{PositiveLiteral(a), PositiveLiteral(b)}))

	for i := 0; i < 3; i++ {
		if got := s.Solve(); got != True {
			t.Fatalf("Solve() call %d = %v, want True", i, got)
		}
		if s.decisionLevel() != 0 {
			t.Errorf("after Solve() call %d, decisionLevel() = %d, want 0", i, s.decisionLevel())
		}
	}
}

func TestSolve_topLevelConflictIsPermanent(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	must(t, s.AddClause([]Literal{PositiveLiteral(a)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(a)}))

	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %v, want False", got)
	}
	// A genuine top-level conflict must stay UNSAT even with no assumptions.
	s.ClearAssumptions()
	if got := s.Solve(); got != False {
		t.Fatalf("Solve() after ClearAssumptions = %v, want False (formula is permanently UNSAT)", got)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("AddClause: %v", err)
	}
}

package sat

import "testing"

func TestAddExtVar_definesImplication(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()

	x := s.AddExtVar(PositiveLiteral(a), PositiveLiteral(b))

	if got, ok := s.ext.lookup(PositiveLiteral(a), PositiveLiteral(b)); !ok || got != x {
		t.Fatalf("ext.lookup(a, b) = (%d, %v), want (%d, true)", got, ok, x)
	}

	// x stands for (a ∨ b): forcing both a and b false must force x false.
	s.AddAssumption(NegativeLiteral(a))
	s.AddAssumption(NegativeLiteral(b))
	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}
	if s.Model()[x] {
		t.Errorf("model[x] = true, want false when both a and b are false")
	}
}

func TestSubstituteExtensionVars_replacesMatchedPair(t *testing.T) {
	s := NewDefaultSolver()
	uip := s.AddVariable()
	a := s.AddVariable()
	b := s.AddVariable()
	x := s.AddExtVar(PositiveLiteral(a), PositiveLiteral(b))

	learnt := []Literal{PositiveLiteral(uip), PositiveLiteral(a), PositiveLiteral(b)}
	got := s.SubstituteExtensionVars(learnt, 2)

	want := []Literal{PositiveLiteral(uip), PositiveLiteral(x)}
	if len(got) != len(want) {
		t.Fatalf("SubstituteExtensionVars() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SubstituteExtensionVars()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSubstituteExtensionVars_respectsWidthAndLBDWindow(t *testing.T) {
	s := NewDefaultSolver()
	uip := s.AddVariable()
	a := s.AddVariable()
	b := s.AddVariable()
	s.AddExtVar(PositiveLiteral(a), PositiveLiteral(b))
	s.opts.ExtSubMinWidth = 5

	learnt := []Literal{PositiveLiteral(uip), PositiveLiteral(a), PositiveLiteral(b)}
	got := s.SubstituteExtensionVars(learnt, 2)

	if len(got) != len(learnt) {
		t.Errorf("SubstituteExtensionVars() = %v, want unchanged (width below ExtSubMinWidth)", got)
	}
}

func TestDeleteExtVars_clearsEligibilityUnlessLocked(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()
	x := s.AddExtVar(PositiveLiteral(a), PositiveLiteral(b))

	before := s.NumConstraints()

	notDeleted := s.DeleteExtVars([]int{x})

	if len(notDeleted) != 0 {
		t.Fatalf("DeleteExtVars() = %v, want no locked variables", notDeleted)
	}
	if s.vars.eligible[x] {
		t.Errorf("eligible[x] = true after DeleteExtVars, want false")
	}
	if _, ok := s.ext.lookup(PositiveLiteral(a), PositiveLiteral(b)); ok {
		t.Errorf("ext.lookup(a, b) still found an extension variable after deletion")
	}
	// The ternary defining clause (¬x∨a∨b) lives in s.constraints, not
	// s.learnts, and must be swept away too.
	if got := s.NumConstraints(); got != before-1 {
		t.Errorf("NumConstraints() = %d, want %d (defining clause not deleted)", got, before-1)
	}
}

func TestPrioritize_bumpsAboveMostActive(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()
	s.vars.activities[a] = 10

	s.Prioritize([]int{b})

	if s.vars.activities[b] <= s.vars.activities[a] {
		t.Errorf("activities[b] = %v, want more than activities[a] = %v", s.vars.activities[b], s.vars.activities[a])
	}
}

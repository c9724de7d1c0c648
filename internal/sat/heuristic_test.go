package sat

import "testing"

func TestVSIDSOrder_decideSkipsIneligibleVariables(t *testing.T) {
	s := NewSolver(DefaultOptions)
	a := s.AddVariable()
	b := s.AddVariable()
	s.vars.setEligible(a, false)

	got := s.order.decide()
	if got == LitNull {
		t.Fatalf("decide() = LitNull, want a literal over variable b")
	}
	if got.VarID() != b {
		t.Errorf("decide() returned variable %d, want %d (a is ineligible)", got.VarID(), b)
	}
}

func TestVSIDSOrder_decideReturnsLitNullWhenAllAssignedOrIneligible(t *testing.T) {
	s := NewSolver(DefaultOptions)
	a := s.AddVariable()
	s.vars.setEligible(a, false)

	if got := s.order.decide(); got != LitNull {
		t.Errorf("decide() = %v, want LitNull (the only variable is ineligible)", got)
	}
}

func TestMaybeRandomVar_skipsIneligibleVariables(t *testing.T) {
	opts := DefaultOptions
	opts.RandomVarFreq = 1 // always take the random path
	opts.Seed = 1
	s := NewSolver(opts)
	a := s.AddVariable()
	b := s.AddVariable()
	s.vars.setEligible(a, false)

	for i := 0; i < 20; i++ {
		v, ok := s.maybeRandomVar()
		if !ok {
			t.Fatalf("maybeRandomVar() ok = false, want true (b is eligible)")
		}
		if v != b {
			t.Errorf("maybeRandomVar() = %d, want %d (a is ineligible)", v, b)
		}
	}
}

func TestCHBAndLRBAndVMTF_decideSkipIneligibleVariables(t *testing.T) {
	for _, mode := range []BranchingMode{BranchingCHB, BranchingLRB, BranchingVMTF} {
		opts := DefaultOptions
		opts.BranchingMode = mode
		s := NewSolver(opts)
		a := s.AddVariable()
		b := s.AddVariable()
		s.vars.setEligible(a, false)

		got := s.order.decide()
		if got == LitNull {
			t.Fatalf("mode %v: decide() = LitNull, want a literal over variable b", mode)
		}
		if got.VarID() != b {
			t.Errorf("mode %v: decide() returned variable %d, want %d (a is ineligible)", mode, got.VarID(), b)
		}
	}
}

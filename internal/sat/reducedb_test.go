package sat

import "testing"

func TestLbdHistory_mustRestartOnlyOnceWindowFull(t *testing.T) {
	var h lbdHistory
	for i := 0; i < nbMaxRecentLBD-1; i++ {
		h.add(2)
	}
	if h.mustRestart() {
		t.Errorf("mustRestart() = true before the recent window is full")
	}

	h.add(2)
	if h.mustRestart() {
		t.Errorf("mustRestart() = true with a uniform LBD history, want false")
	}
}

func TestLbdHistory_mustRestartWhenRecentRunsHigh(t *testing.T) {
	var h lbdHistory
	for i := 0; i < nbMaxRecentLBD; i++ {
		h.add(2)
	}
	for i := 0; i < nbMaxRecentLBD; i++ {
		h.add(20)
	}
	if !h.mustRestart() {
		t.Errorf("mustRestart() = false after recent LBDs ran far above the historical average")
	}
}

func TestLbdHistory_clearResetsRecentWindow(t *testing.T) {
	var h lbdHistory
	for i := 0; i < nbMaxRecentLBD; i++ {
		h.add(20)
	}
	h.clear()
	if h.mustRestart() {
		t.Errorf("mustRestart() = true right after clear(), want false (recent window is empty)")
	}
}

func TestReduceDB_keepsLockedClauses(t *testing.T) {
	s := NewDefaultSolver()
	vars := make([]int, 8)
	for i := range vars {
		vars[i] = s.AddVariable()
	}
	lit := func(i int) Literal { return PositiveLiteral(vars[i]) }

	// Worst clause by LBD (the default ReduceDBPolicy), would be the sole
	// candidate ReduceDB considers for removal given half = 3/2 = 1.
	worst := s.addLearntClause([]Literal{lit(0), lit(1), lit(2)}, 5)
	s.addLearntClause([]Literal{lit(3), lit(4), lit(5)}, 3)
	s.addLearntClause([]Literal{lit(0), lit(6), lit(7)}, 1)

	s.vars.reason[vars[0]] = reason{kind: reasonClause, ref: worst}
	if !s.locked(worst) {
		t.Fatalf("locked(worst) = false, want true (worst is vars[0]'s reason)")
	}

	s.ReduceDB()

	if len(s.learnts) != 3 {
		t.Fatalf("len(s.learnts) = %d after ReduceDB, want 3 (the locked clause must survive)", len(s.learnts))
	}
	found := false
	for _, l := range s.learnts {
		if l == worst {
			found = true
		}
	}
	if !found {
		t.Errorf("ReduceDB() discarded a locked clause")
	}
}

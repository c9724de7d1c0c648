package sat

import "sort"

// nbMaxRecentLBD is how many of the most recent learnt clauses' LBD values
// lbdHistory keeps a rolling average over.
const nbMaxRecentLBD = 50

// lbdHistory tracks the running and recent average LBD of learnt clauses,
// grounded on gophersat's lbdStats: the recent average running well above
// the all-time average means the search is currently producing lower
// quality (higher LBD) clauses than usual, a Glucose-style signal to force
// a restart independent of whichever RestartPolicy schedule is in effect.
type lbdHistory struct {
	totalNb    int64
	totalSum   int64
	nbRecent   int
	recentVals [nbMaxRecentLBD]int
	ptr        int
	recentAvg  float64
}

func (h *lbdHistory) add(lbd int) {
	h.totalNb++
	h.totalSum += int64(lbd)
	if h.nbRecent < nbMaxRecentLBD {
		h.recentVals[h.nbRecent] = lbd
		old, next := float64(h.nbRecent), float64(h.nbRecent+1)
		h.recentAvg = h.recentAvg*old/next + float64(lbd)/next
		h.nbRecent++
		return
	}
	old := h.recentVals[h.ptr]
	h.recentVals[h.ptr] = lbd
	h.ptr = (h.ptr + 1) % nbMaxRecentLBD
	h.recentAvg = h.recentAvg - float64(old)/nbMaxRecentLBD + float64(lbd)/nbMaxRecentLBD
}

// mustRestart reports whether the recent-average LBD is running well above
// the all-time average, a signal that a forced restart now would likely
// help more than waiting out the schedule's normal budget.
func (h *lbdHistory) mustRestart() bool {
	if h.nbRecent < nbMaxRecentLBD {
		return false
	}
	return h.recentAvg*0.8 > float64(h.totalSum)/float64(h.totalNb)
}

func (h *lbdHistory) clear() {
	h.nbRecent = 0
	h.ptr = 0
	h.recentAvg = 0
}

// ReduceDB discards the least valuable half of the learnt clause database:
// the database is sorted worst-first by the configured quality ordering, and
// every clause in that worst half is freed from the arena and its watches
// unless it is locked.
func (s *Solver) ReduceDB() {
	sort.Slice(s.learnts, func(i, j int) bool {
		return s.removalScore(s.learnts[i]) > s.removalScore(s.learnts[j])
	})

	half := len(s.learnts) / 2
	deleted := false
	j := 0
	for i, ref := range s.learnts {
		if i < half && !s.locked(ref) {
			s.deleteClauseLazy(ref)
			deleted = true
			continue
		}
		s.learnts[j] = ref
		j++
	}
	s.learnts = s.learnts[:j]

	if deleted {
		s.sweepWatches()
	}
}

// removalScore ranks clauses from most to least removable: under
// ReduceDBLBD a high literal-block-distance is worse, under ReduceDBActivity
// a low activity is worse (so its negation ranks as more removable).
func (s *Solver) removalScore(ref ClauseRef) float64 {
	v := s.arena.View(ref)
	if s.opts.ReduceDBPolicy == ReduceDBLBD {
		return float64(v.lbd())
	}
	return -v.activity()
}

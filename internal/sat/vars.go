package sat

// variableStore holds the per-variable scalars assigned
// to every variable: current value, decision level, reason, activity, saved
// phase, and whether the variable is eligible for branching (problem
// variables and extension variables are; a variable deactivated by the ER
// layer is not).
//
// All the slices below are indexed by variable id and grow monotonically as
// addVar is called. Per-variable state (assigns, level, reason, activities)
// lives in several parallel slices rather than a struct slice; this type
// just gives that layout a name so the rest of the
// core doesn't have to reach into Solver's internals directly.
type variableStore struct {
	assigns    []LBool
	level      []int32
	reason     []reason
	activities []float64
	phase      []LBool
	canceled   []int64 // conflict count at which the variable was last unassigned
	eligible   []bool  // decision-eligible flag
}

func newVariableStore() *variableStore {
	return &variableStore{}
}

func (vs *variableStore) numVars() int {
	return len(vs.assigns) / 2
}

func (vs *variableStore) addVar(initPhase LBool) int {
	id := vs.numVars()
	vs.assigns = append(vs.assigns, Unknown, Unknown)
	vs.level = append(vs.level, -1)
	vs.reason = append(vs.reason, reason{})
	vs.activities = append(vs.activities, 0)
	vs.phase = append(vs.phase, initPhase)
	vs.canceled = append(vs.canceled, 0)
	vs.eligible = append(vs.eligible, true)
	return id
}

func (vs *variableStore) litValue(l Literal) LBool {
	return vs.assigns[l]
}

func (vs *variableStore) varValue(v int) LBool {
	return vs.assigns[PositiveLiteral(v)]
}

func (vs *variableStore) varLevel(v int) int {
	return int(vs.level[v])
}

func (vs *variableStore) setEligible(v int, ok bool) {
	vs.eligible[v] = ok
}

package sat

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"
)

// BranchingMode selects the activity-update/ordering strategy used by the
// branching heuristic: these are modeled as a closed set of strategies
// picked once at construction, not as runtime polymorphism inside the hot
// loop.
type BranchingMode uint8

const (
	BranchingVSIDS BranchingMode = iota
	BranchingCHB
	BranchingLRB
	BranchingVMTF
)

// PropagationMode selects the order in which pending literals are processed
// during unit propagation.
type PropagationMode uint8

const (
	PropagationImmediate PropagationMode = iota
	PropagationPriorityActivity
	PropagationPriorityMinClauseSize
)

// ReduceDBPolicy selects the clause-quality ordering used to decide which
// learnt clauses reduceDB discards first.
type ReduceDBPolicy uint8

const (
	ReduceDBActivity ReduceDBPolicy = iota
	ReduceDBLBD
)

// RestartPolicy selects the schedule used to decide when to restart.
type RestartPolicy uint8

const (
	RestartLuby RestartPolicy = iota
	RestartGeometric
)

// ProofEmitter receives synchronous, non-reentrant callbacks for every
// learnt/deleted clause event, suitable for driving a DRAT proof writer.
// The zero value (nil inside Options) disables proof logging.
type ProofEmitter interface {
	OnLearn(lits []Literal)
	OnDelete(lits []Literal)
}

// Options configures a Solver. All defaults are read once at construction;
// there is no global mutable state.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64 // var-decay
	RandomVarFreq float64 // random-var-freq, probability in [0,1]
	PhaseSaving   int     // phase-saving: 0=off, 1=save, 2=save+seed initial phase
	RndInit       bool    // rnd-init: randomize initial phases
	RndPol        bool    // rnd-freq-driven random polarity on decisions
	RndFreq       float64 // rnd-freq
	GCFrac        float64 // gc-frac: arena fragmentation threshold

	BranchingMode    BranchingMode
	PropagationMode  PropagationMode
	ReduceDBPolicy   ReduceDBPolicy
	RestartPolicy    RestartPolicy
	VSIDSLimMillions int64 // VSIDS-lim: stored only; no code reads it, so no LRB -> VSIDS switch happens

	AntiExploration bool // lazily demote stale heap entries in the VSIDS heap

	// ExtSubMinWidth/ExtSubMaxWidth and ExtSubMinLBD/ExtSubMaxLBD gate
	// SubstituteExtensionVars to clauses whose width and LBD each fall
	// inside the configured window. A zero max means "no upper bound".
	ExtSubMinWidth int
	ExtSubMaxWidth int
	ExtSubMinLBD   int
	ExtSubMaxLBD   int

	MaxConflicts int64
	Timeout      time.Duration
	Interrupt    func() bool // caller-supplied cancellation predicate

	Seed int64

	Proof     ProofEmitter
	LogWriter io.Writer
	Verbosity int
}

// DefaultOptions follows the usual MiniSat-derived defaults, extended
// with the additional knobs this solver adds on top.
var DefaultOptions = Options{
	ClauseDecay:      0.999,
	VariableDecay:    0.95,
	RandomVarFreq:    0.0,
	PhaseSaving:      2,
	RndFreq:          0.0,
	GCFrac:           0.20,
	BranchingMode:    BranchingVSIDS,
	PropagationMode:  PropagationImmediate,
	ReduceDBPolicy:   ReduceDBLBD,
	RestartPolicy:    RestartLuby,
	VSIDSLimMillions: 0,
	AntiExploration:  false,
	ExtSubMinWidth:   0,
	ExtSubMaxWidth:   0,
	ExtSubMinLBD:     0,
	ExtSubMaxLBD:     0,
	MaxConflicts:     -1,
	Timeout:          -1,
	Seed:             1,
	LogWriter:        os.Stdout,
	Verbosity:        1,
}

// Solver is a CDCL core: clause arena, watch lists, assignment trail,
// branching heuristic, conflict analyzer and search controller, wired
// together into one incremental solving session. A Solver owns all its
// memory; there is no state shared between Solver instances.
type Solver struct {
	opts Options

	vars  *variableStore
	trail *AssignmentTrail
	watch *WatchLists
	arena *ClauseArena

	constraints []ClauseRef
	learnts     []ClauseRef

	clauseInc float64
	varInc    float64

	order branchingOrder
	rng   *rand.Rand

	propQueue    *Queue[Literal]
	priorityPQ   *priorityPropQueue
	softAssigned []LBool // not used: every PropagationMode assigns a literal when it is enqueued

	unsat bool

	assumptions []Literal
	core        []Literal // UNSAT core, valid after Solve() returns False under assumptions

	ext *ExtDefMap

	restarts restartSchedule
	lbdHist  lbdHistory

	TotalConflicts  int64
	TotalRestarts   int64
	TotalIterations int64
	startTime       time.Time

	Models [][]bool

	seenVar *ResetSet

	tmpWatchers    []watcher
	tmpLearnts     []Literal
	tmpReason      []Literal
	analyzeStack   []Literal
	analyzeToClear []Literal
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NewSolver constructs a Solver from ops. Zero-value fields not explicitly
// set by the caller fall back to sane behavior (e.g. a nil LogWriter is
// treated as io.Discard).
func NewSolver(ops Options) *Solver {
	if ops.LogWriter == nil {
		ops.LogWriter = io.Discard
	}
	s := &Solver{
		opts:      ops,
		vars:      newVariableStore(),
		watch:     newWatchLists(),
		arena:     NewClauseArena(1 << 16),
		clauseInc: 1,
		varInc:    1,
		propQueue: NewQueue[Literal](128),
		seenVar:   &ResetSet{},
		ext:       newExtDefMap(),
		rng:       rand.New(rand.NewSource(ops.Seed)),
	}
	s.trail = newAssignmentTrail(s.vars, ops.PhaseSaving)
	s.order = newBranchingOrder(s, ops.BranchingMode)
	s.restarts = newRestartSchedule(ops.RestartPolicy)
	if ops.PropagationMode != PropagationImmediate {
		s.priorityPQ = newPriorityPropQueue(ops.PropagationMode)
	}
	return s
}

func (s *Solver) shouldStop() bool {
	if s.opts.Interrupt != nil && s.opts.Interrupt() {
		return true
	}
	if s.opts.MaxConflicts >= 0 && s.opts.MaxConflicts <= s.TotalConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && s.opts.Timeout <= time.Since(s.startTime) {
		return true
	}
	return false
}

func (s *Solver) NumVariables() int   { return s.vars.numVars() }
func (s *Solver) NumAssigns() int     { return s.trail.size() }
func (s *Solver) NumConstraints() int { return len(s.constraints) }
func (s *Solver) NumLearnts() int     { return len(s.learnts) }

// Constraints returns the literals of every non-binary problem clause
// currently in the arena, for debug dumping (internal/dimacs.WriteDIMACS).
func (s *Solver) Constraints() [][]Literal {
	return refsToLiterals(s.arena, s.constraints)
}

// Learnts returns the literals of every non-binary learnt clause currently
// in the arena, for debug dumping.
func (s *Solver) Learnts() [][]Literal {
	return refsToLiterals(s.arena, s.learnts)
}

func refsToLiterals(a *ClauseArena, refs []ClauseRef) [][]Literal {
	out := make([][]Literal, len(refs))
	for i, ref := range refs {
		out[i] = a.View(ref).Literals()
	}
	return out
}

// BinaryClauses returns one (a, b) pair per binary clause currently
// registered in the binary watch lists, each pair reported exactly once.
func (s *Solver) BinaryClauses() [][2]Literal {
	var out [][2]Literal
	for lit, ws := range s.watch.bin {
		a := Literal(lit).Opposite()
		for _, w := range ws {
			if a < w.other {
				out = append(out, [2]Literal{a, w.other})
			}
		}
	}
	return out
}

// Assumptions returns the literals recorded via AddAssumption.
func (s *Solver) Assumptions() []Literal {
	return s.assumptions
}

func (s *Solver) VarValue(x int) LBool     { return s.vars.varValue(x) }
func (s *Solver) LitValue(l Literal) LBool { return s.vars.litValue(l) }

func (s *Solver) decisionLevel() int { return s.trail.decisionLevel() }

// AddVariable allocates a fresh variable, updating every side table, and
// returns its id.
func (s *Solver) AddVariable() int {
	initPhase := Unknown
	switch {
	case s.opts.RndInit:
		initPhase = Lift(s.order.randomBool())
	case s.opts.PhaseSaving == 2:
		// Seed the saved phase to true so the first decision on this
		// variable already has something to fall back on, instead of
		// relying on the negative default in polarityFor.
		initPhase = True
	}
	id := s.vars.addVar(initPhase)
	s.watch.growTo(2 * s.vars.numVars())
	s.seenVar.Expand()
	s.order.newVar(id)
	return id
}

// AddClause normalizes and adds a clause. It returns an error only when the
// solver is not at the root level; a clause that makes the formula UNSAT at
// level 0 is recorded via the sticky `unsat` flag instead.
func (s *Solver) AddClause(literals []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("sat: can only add clauses at the root level")
	}
	ok := s.addClauseInternal(literals, false)
	if !ok {
		s.unsat = true
	}
	return nil
}

// AddAssumption records a literal to be enqueued as a decision-like trail
// entry before the first real decision of the next Solve call.
func (s *Solver) AddAssumption(l Literal) {
	s.assumptions = append(s.assumptions, l)
}

// ClearAssumptions drops all previously recorded assumptions.
func (s *Solver) ClearAssumptions() {
	s.assumptions = s.assumptions[:0]
}

// Model returns the satisfying assignment found by the most recent Solve
// call. It panics if the last call did not return a model.
func (s *Solver) Model() []bool {
	if len(s.Models) == 0 {
		panic("sat: Model called with no recorded model")
	}
	return s.Models[len(s.Models)-1]
}

// Core returns the subset of assumptions that the most recent Solve call
// proved jointly unsatisfiable with the formula.
func (s *Solver) Core() []Literal {
	return s.core
}

func (s *Solver) printSeparator() {
	fmt.Fprintln(s.opts.LogWriter, "c ---------------------------------------------------------------------------")
}

func (s *Solver) printSearchHeader() {
	fmt.Fprintln(s.opts.LogWriter, "c            time     iterations      conflicts       restarts        learnts")
}

func (s *Solver) printSearchStats() {
	if s.opts.Verbosity <= 0 {
		return
	}
	fmt.Fprintf(s.opts.LogWriter,
		"c %14.3fs %14d %14d %14d %14d\n",
		time.Since(s.startTime).Seconds(),
		s.TotalIterations,
		s.TotalConflicts,
		s.TotalRestarts,
		len(s.learnts))
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/oliveras-waterloo/ercl/internal/dimacs"
	"github.com/oliveras-waterloo/ercl/internal/sat"
	"github.com/oliveras-waterloo/ercl/parsers"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagMaxConflict = flag.Int64(
	"max_conflicts",
	-1,
	"maximum number of conflicts allowed to solve the problem (-1 = no maximum)",
)

var flagVarDecay = flag.Float64(
	"var-decay",
	sat.DefaultOptions.VariableDecay,
	"variable activity decay factor, in (0,1)",
)

var flagRandomVarFreq = flag.Float64(
	"random-var-freq",
	sat.DefaultOptions.RandomVarFreq,
	"probability of ignoring the branching heuristic and picking a random unassigned variable",
)

var flagPhaseSaving = flag.Int(
	"phase-saving",
	sat.DefaultOptions.PhaseSaving,
	"0=off, 1=save last phase, 2=save and seed the initial phase",
)

var flagGCFrac = flag.Float64(
	"gc-frac",
	sat.DefaultOptions.GCFrac,
	"clause arena fragmentation ratio that triggers a garbage collection pass",
)

var flagRndInit = flag.Bool(
	"rnd-init",
	sat.DefaultOptions.RndInit,
	"randomize the initial phase of every variable",
)

var flagRndFreq = flag.Float64(
	"rnd-freq",
	sat.DefaultOptions.RndFreq,
	"probability of a random polarity on a decision (requires -rnd-pol)",
)

var flagRndPol = flag.Bool(
	"rnd-pol",
	sat.DefaultOptions.RndPol,
	"enable random polarity on decisions, at rate -rnd-freq",
)

var flagVSIDSLim = flag.Int64(
	"VSIDS-lim",
	sat.DefaultOptions.VSIDSLimMillions,
	"switch threshold (LRB -> VSIDS) in millions of propagations; accepted and passed to the solver, which does not act on it",
)

var flagBranching = flag.String(
	"branching",
	"vsids",
	"branching heuristic: vsids, chb, lrb, or vmtf",
)

var flagDumpDIMACS = flag.String(
	"dump-dimacs",
	"",
	"if set, write the residual formula in DIMACS form to this path before exiting",
)

var flagDrat = flag.String(
	"drat",
	"",
	"if set, write a DRAT proof of unsatisfiability to this path",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		maxConflicts: *flagMaxConflict,
	}, nil
}

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	maxConflicts int64
}

func branchingMode(name string) (sat.BranchingMode, error) {
	switch name {
	case "vsids":
		return sat.BranchingVSIDS, nil
	case "chb":
		return sat.BranchingCHB, nil
	case "lrb":
		return sat.BranchingLRB, nil
	case "vmtf":
		return sat.BranchingVMTF, nil
	default:
		return 0, fmt.Errorf("unknown -branching %q", name)
	}
}

func solverOptions(cfg *config) (sat.Options, error) {
	mode, err := branchingMode(*flagBranching)
	if err != nil {
		return sat.Options{}, err
	}

	options := sat.DefaultOptions
	options.VariableDecay = *flagVarDecay
	options.RandomVarFreq = *flagRandomVarFreq
	options.PhaseSaving = *flagPhaseSaving
	options.GCFrac = *flagGCFrac
	options.RndInit = *flagRndInit
	options.RndFreq = *flagRndFreq
	options.RndPol = *flagRndPol
	options.VSIDSLimMillions = *flagVSIDSLim
	options.BranchingMode = mode
	if cfg.maxConflicts >= 0 {
		options.MaxConflicts = cfg.maxConflicts
	}
	return options, nil
}

// exitCode maps a solve verdict to the usual SAT-competition convention:
// 10 SAT, 20 UNSAT, 0 INDETERMINATE.
func exitCode(status sat.LBool) int {
	switch status {
	case sat.True:
		return 10
	case sat.False:
		return 20
	default:
		return 0
	}
}

func run(cfg *config) (int, error) {
	options, err := solverOptions(cfg)
	if err != nil {
		return 0, err
	}

	if *flagDrat != "" {
		f, err := os.Create(*flagDrat)
		if err != nil {
			return 0, fmt.Errorf("could not create DRAT proof file: %w", err)
		}
		defer f.Close()
		proof := sat.NewDratWriter(f)
		defer proof.Close()
		options.Proof = proof
	}

	s := sat.NewSolver(options)
	gzipped := isGzipPath(cfg.instanceFile)
	if err := parsers.LoadDIMACS(cfg.instanceFile, gzipped, s); err != nil {
		return 0, fmt.Errorf("could not load instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())
	fmt.Printf("c status:     %s\n", status.String())

	if *flagDumpDIMACS != "" {
		if err := dumpDIMACS(*flagDumpDIMACS, s); err != nil {
			return 0, fmt.Errorf("could not dump instance: %w", err)
		}
	}

	return exitCode(status), nil
}

func dumpDIMACS(path string, s *sat.Solver) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dimacs.WriteDIMACS(f, s)
}

func isGzipPath(path string) bool {
	return len(path) > 3 && path[len(path)-3:] == ".gz"
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	code, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	os.Exit(code)
}

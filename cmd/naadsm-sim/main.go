package main

import (
	"flag"
	"log"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	naadsm "github.com/casesp/naadsm"
)

func main() {
	var herdFile, outputFile string
	var rngSeed int64
	var fixedRandomValue float64
	var hasFixed bool
	var verbosity int
	var threads int

	flag.StringVar(&herdFile, "herd-file", "", "initial unit population file")
	flag.StringVar(&herdFile, "h", "", "initial unit population file (shorthand)")
	flag.StringVar(&outputFile, "output-file", "", "main output table path")
	flag.StringVar(&outputFile, "o", "", "main output table path (shorthand)")
	flag.Int64Var(&rngSeed, "rng-seed", time.Now().UTC().UnixNano(), "RNG seed")
	flag.Int64Var(&rngSeed, "s", time.Now().UTC().UnixNano(), "RNG seed (shorthand)")
	flag.IntVar(&threads, "threads", 0, "number of iterations to run concurrently (0: use the scenario file's own setting, default 1)")
	flag.IntVar(&threads, "t", 0, "number of concurrent iterations (shorthand)")

	fixedValueFlag := func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		fixedRandomValue, hasFixed = v, true
		return nil
	}
	flag.Func("fixed-random-value", "override RNG with a constant in [0,1)", fixedValueFlag)
	flag.Func("r", "override RNG with a constant in [0,1) (shorthand)", fixedValueFlag)

	flag.IntVar(&verbosity, "verbosity", 0, "log level (0|1)")
	flag.IntVar(&verbosity, "V", 0, "log level (0|1, shorthand)")
	flag.Parse()

	scenarioPath := flag.Arg(0)
	if scenarioPath == "" {
		log.Fatal("usage: naadsm-sim [flags] <parameter-file>")
	}
	if herdFile == "" {
		log.Fatal("--herd-file is required")
	}
	if outputFile == "" {
		log.Fatal("--output-file is required")
	}

	loader := naadsm.NewTOMLScenarioLoader()
	cfg, err := loader.Load(scenarioPath)
	if err != nil {
		log.Fatal(err)
	}
	warnings, err := cfg.Validate()
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}
	if threads > 0 {
		cfg.Simulation.Threads = threads
	}
	if t := cfg.ThreadsOrDefault(); t > 1 {
		runtime.GOMAXPROCS(t)
	}

	herdLoader := naadsm.NewCSVHerdLoader()
	herdList, err := herdLoader.Load(herdFile)
	if err != nil {
		log.Fatal(err)
	}

	var fixedRNG *naadsm.RNG
	if hasFixed {
		fixedRNG = naadsm.NewFixedRNG(fixedRandomValue)
	}

	sim, err := naadsm.BuildSimulation(cfg, herdList, outputWriter(outputFile), rngSeed, fixedRNG)
	if err != nil {
		log.Fatal(err)
	}
	if verbosity >= 1 {
		log.Printf("naadsm-sim: running %d iteration(s) of %s across %d thread(s)", cfg.NumIterationsOrDefault(), scenarioPath, cfg.ThreadsOrDefault())
	}

	if err := sim.Run(cfg.NumIterationsOrDefault()); err != nil {
		log.Fatal(err)
	}
}

// outputWriter selects CSVWriter or SQLiteWriter by the output path's
// extension, mirroring the teacher's -logger csv|sqlite switch in
// bin/contagion/main.go.
func outputWriter(path string) naadsm.OutputWriter {
	if strings.EqualFold(filepath.Ext(path), ".db") || strings.EqualFold(filepath.Ext(path), ".sqlite") {
		return naadsm.NewSQLiteWriter(path)
	}
	return naadsm.NewCSVWriter(path)
}

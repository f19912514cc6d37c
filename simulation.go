package naadsm

import (
	"log"
	"sync"
)

// Simulation drives the per-iteration lifecycle described in spec §4.3:
// setup, a day loop that pumps the event queue, and teardown, across one
// or more iterations.
type Simulation struct {
	registry   *Registry
	herds      *HerdList
	exit       ExitConditions
	writer     OutputWriter
	masterSeed int64
	fixed      *RNG
	scheduler  *ResourceScheduler

	threads    int
	buildFresh func() (*Registry, *HerdList, *ResourceScheduler)
}

// ExitConditions are the scenario's end-of-day termination checks: the
// maximum day, plus optional stops on first detection and on disease
// extinction.
type ExitConditions struct {
	MaxDays                 int
	StopOnFirstDetection    bool
	StopOnDiseaseExtinction bool
}

// NewSimulation wires a registry of modules, the shared herd list, exit
// conditions, an output sink, and the RNG seed contract (spec §5
// "Parallel iterations must each use a sub-stream derived deterministically
// from the master seed and iteration index"). scheduler may be nil if no
// resource scheduler is registered (stop-on-first-detection is then
// unavailable and is treated as never true).
func NewSimulation(registry *Registry, herds *HerdList, exit ExitConditions, writer OutputWriter, masterSeed int64, fixed *RNG, scheduler *ResourceScheduler) *Simulation {
	return &Simulation{
		registry:   registry,
		herds:      herds,
		exit:       exit,
		writer:     writer,
		masterSeed: masterSeed,
		fixed:      fixed,
		scheduler:  scheduler,
	}
}

// SetParallel configures Run to drive iterations across a bounded pool of
// goroutines, each against its own independently-built registry/herd-list/
// scheduler obtained from buildFresh, rather than the single registry/herd
// list this Simulation was constructed with. This is required for genuine
// per-iteration concurrency (spec §5): two iterations sharing one
// Registry/HerdList would race on every module's mutable state.
//
// threads <= 1, or a nil buildFresh, leaves Run on its original
// single-shared-registry sequential path.
func (s *Simulation) SetParallel(threads int, buildFresh func() (*Registry, *HerdList, *ResourceScheduler)) {
	s.threads = threads
	s.buildFresh = buildFresh
}

// Run executes `iterations` independent simulation runs, writing output
// rows through the configured OutputWriter. Run numbers are 1-based,
// matching the teacher's `for i := 1; i <= conf.NumInstances(); i++`
// iteration convention.
func (s *Simulation) Run(iterations int) error {
	if err := s.writer.Init(); err != nil {
		return err
	}
	defer s.writer.Close()

	if s.threads > 1 && s.buildFresh != nil {
		return s.runParallel(iterations)
	}
	return s.runSequential(iterations)
}

// runSequential is the original single-registry loop: one Registry and
// HerdList, reset between iterations rather than rebuilt.
func (s *Simulation) runSequential(iterations int) error {
	dispatcher := NewDispatcher(s.registry, s.herds)

	for run := 1; run <= iterations; run++ {
		rng := s.subStream(run)

		if run == 1 {
			s.runBeforeAnySimulations(dispatcher, rng)
		}

		s.registry.ResetAll()
		s.herds.Reset()

		q := NewEventQueue()
		q.Enqueue(Event{Tag: EndOfDay, Day: 0})
		q.Drain(dispatcher, rng)
		s.writeDay(run, 0, false)

		for day := 1; day <= s.exit.MaxDays; day++ {
			q.Enqueue(Event{Tag: NewDay, Day: day})
			q.Drain(dispatcher, rng)

			done := s.isDone(day)
			q.Enqueue(Event{Tag: EndOfDay, Day: day, Done: done})
			q.Drain(dispatcher, rng)
			s.writeDay(run, day, done)

			if done {
				q.Enqueue(Event{Tag: LastDay, Day: day})
				q.Drain(dispatcher, rng)
				break
			}
			q.Enqueue(Event{Tag: Midnight, Day: day + 1})
			q.Drain(dispatcher, rng)
		}
	}
	return nil
}

// outputRow is one WriteRow call's worth of arguments, queued from a
// worker goroutine to the single serializing writer goroutine runParallel
// starts (spec §1 treats OutputWriter implementations as external
// collaborators; neither CSVWriter nor SQLiteWriter is safe for
// concurrent WriteRow calls, so only one goroutine ever calls it).
type outputRow struct {
	run, day int
	values   map[string]ReportValue
}

// runParallel runs iterations across min(s.threads, iterations) worker
// goroutines, each against its own registry/herd-list/scheduler from
// s.buildFresh, so that concurrently-running iterations never share
// mutable module or herd state.
func (s *Simulation) runParallel(iterations int) error {
	rows := make(chan outputRow)
	writerDone := make(chan struct{})
	var writeErr error
	go func() {
		defer close(writerDone)
		for r := range rows {
			if err := s.writer.WriteRow(r.run, r.day, r.values); err != nil {
				log.Printf("naadsm: writing output row for run %d day %d: %v", r.run, r.day, err)
				writeErr = err
			}
		}
	}()

	sem := make(chan struct{}, s.threads)
	var wg sync.WaitGroup
	for run := 1; run <= iterations; run++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(run int) {
			defer wg.Done()
			defer func() { <-sem }()
			s.runIteration(run, rows)
		}(run)
	}
	wg.Wait()
	close(rows)
	<-writerDone
	return writeErr
}

// runIteration drives one complete iteration against a freshly built
// registry/herd-list/scheduler, deriving its RNG sub-stream from
// (masterSeed, run) as the sequential path does, so a run's draws depend
// only on (masterSeed, run) and not on how many workers executed it. Each
// parallel iteration drains its own BeforeAnySimulations wave on that
// stream, which the sequential path does only for run 1, so from run 2 on
// a parallel run's draws are not the same as the sequential run's.
func (s *Simulation) runIteration(run int, rows chan<- outputRow) {
	registry, herds, scheduler := s.buildFresh()
	rng := s.subStream(run)
	dispatcher := NewDispatcher(registry, herds)

	declare := NewEventQueue()
	declare.Enqueue(Event{Tag: BeforeAnySimulations})
	declare.Drain(dispatcher, rng)

	registry.ResetAll()
	herds.Reset()

	q := NewEventQueue()
	q.Enqueue(Event{Tag: EndOfDay, Day: 0})
	q.Drain(dispatcher, rng)
	emitRow(registry, run, 0, false, rows)

	for day := 1; day <= s.exit.MaxDays; day++ {
		q.Enqueue(Event{Tag: NewDay, Day: day})
		q.Drain(dispatcher, rng)

		done := isDoneFor(day, s.exit, scheduler, herds, registry)
		q.Enqueue(Event{Tag: EndOfDay, Day: day, Done: done})
		q.Drain(dispatcher, rng)
		emitRow(registry, run, day, done, rows)

		if done {
			q.Enqueue(Event{Tag: LastDay, Day: day})
			q.Drain(dispatcher, rng)
			break
		}
		q.Enqueue(Event{Tag: Midnight, Day: day + 1})
		q.Drain(dispatcher, rng)
	}
}

func emitRow(registry *Registry, run, day int, last bool, rows chan<- outputRow) {
	values := buildDayValues(registry, day, last)
	if len(values) == 0 {
		return
	}
	rows <- outputRow{run: run, day: day, values: values}
}

// runBeforeAnySimulations fires the once-per-process lifecycle event that
// lets modules declare reporting variables and destruction/vaccination
// reasons via DeclarationOf* events (spec §4.3 step 1).
func (s *Simulation) runBeforeAnySimulations(dispatcher *Dispatcher, rng *RNG) {
	q := NewEventQueue()
	q.Enqueue(Event{Tag: BeforeAnySimulations})
	q.Drain(dispatcher, rng)
}

// subStream returns the RNG for iteration `run`: the fixed-value override
// if configured, otherwise a deterministic sub-stream of the master seed.
func (s *Simulation) subStream(run int) *RNG {
	if s.fixed != nil {
		return s.fixed
	}
	return Sub(s.masterSeed, run)
}

// isDone evaluates the scenario's exit conditions at end-of-day (spec §7,
// §8 invariant list: max day, first detection, disease extinction).
func (s *Simulation) isDone(day int) bool {
	return isDoneFor(day, s.exit, s.scheduler, s.herds, s.registry)
}

// isDoneFor is isDone's logic lifted into a free function so a parallel
// iteration can evaluate it against its own local registry/herds/
// scheduler instead of a Simulation's shared fields.
func isDoneFor(day int, exit ExitConditions, scheduler *ResourceScheduler, herds *HerdList, registry *Registry) bool {
	if day >= exit.MaxDays {
		return true
	}
	if exit.StopOnFirstDetection && scheduler != nil && scheduler.OutbreakKnown() {
		return true
	}
	if exit.StopOnDiseaseExtinction && diseaseExtinctFor(herds, registry) {
		return true
	}
	return false
}

func (s *Simulation) diseaseExtinct() bool {
	return diseaseExtinctFor(s.herds, s.registry)
}

func diseaseExtinctFor(herds *HerdList, registry *Registry) bool {
	for _, h := range herds.Herds {
		if h.Status == Latent || h.Status.Infectious() {
			return false
		}
	}
	return !registry.AnyPendingInfections()
}

// writeDay gathers every module's reporting-variable values due on this
// day, per each variable's declared Frequency, and writes one output row.
func (s *Simulation) writeDay(run, day int, last bool) {
	values := buildDayValues(s.registry, day, last)
	if len(values) == 0 {
		return
	}
	if err := s.writer.WriteRow(run, day, values); err != nil {
		log.Printf("naadsm: writing output row for run %d day %d: %v", run, day, err)
	}
}

func buildDayValues(registry *Registry, day int, last bool) map[string]ReportValue {
	values := make(map[string]ReportValue)
	for _, m := range registry.Modules() {
		for _, v := range m.Outputs() {
			if !dueFrequency(v.Frequency, day, last) {
				continue
			}
			values[v.Name] = v.Value
		}
	}
	return values
}

func dueFrequency(freq Frequency, day int, last bool) bool {
	switch freq {
	case FrequencyDaily:
		return day > 0
	case FrequencyWeekly:
		return day > 0 && day%7 == 0
	case FrequencyMonthly:
		return day > 0 && day%30 == 0
	case FrequencyOnce:
		return day == 0
	case FrequencyPerIteration:
		return last
	default:
		return false
	}
}

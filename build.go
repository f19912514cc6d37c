package naadsm

// BuildSimulation assembles a Simulation from a validated ScenarioConfig
// and a loaded herd population: the spatial index, every configured
// domain module (scheduler, airborne spread, ring destruction, the trace
// trio, the two list monitors), and the zone-focus module, registered in
// a fixed order matching this package's source layout (spec §4.2 "Order
// among subscribers is defined by module registration order").
//
// When the scenario configures more than one thread, the returned
// Simulation also carries a factory that calls assembleRegistry, so
// Run can build one fully independent registry/herd-list/scheduler per
// concurrently-running iteration (spec §5's parallel-iteration
// independence contract).
func BuildSimulation(cfg *ScenarioConfig, herds []*Herd, writer OutputWriter, masterSeed int64, fixed *RNG) (*Simulation, error) {
	herdList := NewHerdList(cloneHerds(herds), cfg.Simulation.Riverton)
	registry, scheduler := assembleRegistry(cfg, herdList)

	exit := ExitConditions{
		MaxDays:                 cfg.Simulation.MaxDays,
		StopOnFirstDetection:    cfg.Simulation.StopOnFirstDetection,
		StopOnDiseaseExtinction: cfg.Simulation.StopOnDiseaseExtinction,
	}

	sim := NewSimulation(registry, herdList, exit, writer, masterSeed, fixed, scheduler)

	if threads := cfg.ThreadsOrDefault(); threads > 1 {
		sim.SetParallel(threads, func() (*Registry, *HerdList, *ResourceScheduler) {
			hl := NewHerdList(cloneHerds(herds), cfg.Simulation.Riverton)
			reg, sch := assembleRegistry(cfg, hl)
			return reg, hl, sch
		})
	}

	return sim, nil
}

// cloneHerds copies each herd by value, so that two registries built from
// the same source population never share a mutable Herd -- required for
// concurrently-running iterations (spec §5) to be independent of one
// another. Herd carries no nested pointers or slices, so a shallow copy
// is a full copy.
func cloneHerds(herds []*Herd) []*Herd {
	out := make([]*Herd, len(herds))
	for i, h := range herds {
		clone := *h
		out[i] = &clone
	}
	return out
}

// assembleRegistry builds one Registry and its ResourceScheduler against
// herdList, registering every module this scenario configures. Called
// once for a sequential run's single shared registry, and once per
// worker for a -threads > 1 parallel run.
func assembleRegistry(cfg *ScenarioConfig, herdList *HerdList) (*Registry, *ResourceScheduler) {
	index := NewBruteForceIndex()

	registry := NewRegistry()

	numProdTypes := len(cfg.ProductionTypes)
	scheduler := NewResourceScheduler(SchedulerConfig{
		NumProductionTypes:     numProdTypes,
		ProgramDelay:           cfg.Scheduler.ProgramDelay,
		VaccinationThreshold:   cfg.Scheduler.VaccinationThreshold,
		DestructionCapacity:    buildCapacityChart(cfg.Scheduler.DestructionCapacity),
		VaccinationCapacity:    buildCapacityChart(cfg.Scheduler.VaccinationCapacity),
		DestructionProdOuter:   cfg.Scheduler.DestructionProdOuter,
		DestructionTimeWaiting: mustTimeWaiting(cfg.Scheduler.DestructionTimeWait),
		VaccinationProdOuter:   cfg.Scheduler.VaccinationProdOuter,
		VaccinationTimeWaiting: mustTimeWaiting(cfg.Scheduler.VaccinationTimeWait),
		Riverton:               cfg.Simulation.Riverton,
	})
	registry.Register(scheduler)

	if len(cfg.Airborne) > 0 {
		params := make(map[[2]int]AirborneParams)
		for _, a := range cfg.Airborne {
			params[[2]int{a.SourceType, a.TargetType}] = AirborneParams{
				ProbSpread1km: a.ProbSpread1km,
				WindDirStart:  a.WindDirStart,
				WindDirEnd:    a.WindDirEnd,
				MaxSpread:     a.MaxSpread,
				Delay:         ConstantDelay(a.DelayDays),
			}
		}
		airborne := NewAirborneSpread(params, index, cfg.Simulation.Riverton)
		airborne.Precompute(herdList)
		registry.Register(airborne)
	}

	if cfg.RingDestruction != nil {
		from := toIntSet(cfg.RingDestruction.FromTypes)
		to := toIntSet(cfg.RingDestruction.ToTypes)
		registry.Register(NewRingDestruction(RingDestructionParams{
			FromTypes: from,
			ToTypes:   to,
			Radius:    cfg.RingDestruction.Radius,
			Priority:  cfg.RingDestruction.Priority,
		}, index))
	}

	for _, t := range cfg.TraceExam {
		registry.Register(NewTraceExam(TraceExamParams{
			ContactType:    parseContactType(t.ContactType),
			Direction:      parseDirection(t.Direction),
			ProductionType: t.ProductionType,
			Reason:         t.Reason,
		}))
	}

	for _, t := range cfg.TraceZoneFocus {
		registry.Register(NewTraceZoneFocus(TraceZoneFocusParams{
			ContactType: parseContactType(t.ContactType),
			Direction:   parseDirection(t.Direction),
			Reason:      t.Reason,
		}))
	}

	for _, t := range cfg.TraceBack {
		registry.Register(NewTraceBackDestruction(TraceBackDestructionParams{
			ContactType:    parseContactType(t.ContactType),
			Direction:      parseDirection(t.Direction),
			ProductionType: t.ProductionType,
			Priority:       t.Priority,
			Reason:         t.Reason,
		}))
	}

	registry.Register(NewZoneFocusModule())
	registry.Register(NewListMonitor(monitorDestruction, nil))
	registry.Register(NewListMonitor(monitorVaccination, nil))

	return registry, scheduler
}

func toIntSet(xs []int) map[int]bool {
	m := make(map[int]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

func mustTimeWaiting(s string) TimeWaitingPosition {
	tw, _ := parseTimeWaitingChecked(s)
	return tw
}

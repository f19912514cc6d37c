package naadsm

import (
	"container/list"
	"log"
)

// SchedulerConfig carries the scenario-level parameters the resource/
// priority scheduler needs: production-type count, program timing,
// vaccination threshold, the two capacity charts, and the priority
// permutation (independently configurable for destruction and
// vaccination, per spec §4.4).
type SchedulerConfig struct {
	NumProductionTypes int

	// ProgramDelay is added to the first detection day (plus one) to get
	// destruction_program_begin_day.
	ProgramDelay int

	VaccinationThreshold int

	DestructionCapacity *CapacityChart
	VaccinationCapacity *CapacityChart

	DestructionProdOuter   bool
	DestructionTimeWaiting TimeWaitingPosition
	VaccinationProdOuter   bool
	VaccinationTimeWaiting TimeWaitingPosition

	Riverton bool
}

// ResourceScheduler is the authorities-and-resources module: it owns the
// destruction and vaccination lifecycle described in spec §4.4. It is by
// far the largest single module in the engine, matching this spec's
// ~30% budget allocation, because it is where detection, priority
// arbitration, capacity enforcement, and cross-cancellation between the
// two control programs all meet.
type ResourceScheduler struct {
	cfg SchedulerConfig

	destReasons *ReasonTable
	vaccReasons *ReasonTable

	destPriority *PrioritySet
	vaccPriority *PrioritySet

	outbreakKnown              bool
	firstDetectionDay          int
	destructionProgramBeginDay int

	destructionStatus map[int]*queueLocation
	vaccinationStatus map[int][]*queueLocation

	dayLastVaccinated map[int]int
	detectedHerds      map[int]bool
	detectedToday      map[int]bool
	destroyedToday     map[int]bool

	outputs OutputSet
}

// NewResourceScheduler constructs a scheduler from its scenario config.
// The priority sets themselves are built in Reset, once the reason tables
// declared by other modules (ring destruction, trace-back destruction,
// vaccination-requesting modules) have settled during BeforeAnySimulations.
func NewResourceScheduler(cfg SchedulerConfig) *ResourceScheduler {
	return &ResourceScheduler{
		cfg:         cfg,
		destReasons: NewReasonTable(),
		vaccReasons: NewReasonTable(),
	}
}

func (s *ResourceScheduler) Name() string { return "ResourceScheduler" }

func (s *ResourceScheduler) EventsListenedFor() map[Tag]bool {
	return map[Tag]bool{
		BeforeAnySimulations:            true,
		DeclarationOfDestructionReasons: true,
		DeclarationOfVaccinationReasons: true,
		Detection:                       true,
		RequestForDestruction:           true,
		RequestForVaccination:           true,
		Vaccination:                     true,
		NewDay:                          true,
	}
}

func (s *ResourceScheduler) Outputs() []*ReportingVariable { return s.outputs.Vars() }

// Reset clears all per-iteration state and (re)builds the priority-queue
// sets sized to the reasons declared so far. Declared reasons themselves
// persist across iterations -- only the per-iteration queues and status
// tables are cleared (spec §4.9 "Global state ... initialize in reset(),
// mutate via event handlers, never expose globally").
func (s *ResourceScheduler) Reset() {
	s.outbreakKnown = false
	s.firstDetectionDay = 0
	s.destructionProgramBeginDay = 0
	s.destructionStatus = make(map[int]*queueLocation)
	s.vaccinationStatus = make(map[int][]*queueLocation)
	s.dayLastVaccinated = make(map[int]int)
	s.detectedHerds = make(map[int]bool)
	s.detectedToday = make(map[int]bool)
	s.destroyedToday = make(map[int]bool)

	numDestReasons := maxInt(s.destReasons.Len(), 1)
	numVaccReasons := maxInt(s.vaccReasons.Len(), 1)
	s.destPriority = NewPrioritySet(maxInt(s.cfg.NumProductionTypes, 1), numDestReasons, s.cfg.DestructionProdOuter, orDefaultTW(s.cfg.DestructionTimeWaiting))
	s.vaccPriority = NewPrioritySet(maxInt(s.cfg.NumProductionTypes, 1), numVaccReasons, s.cfg.VaccinationProdOuter, orDefaultTW(s.cfg.VaccinationTimeWaiting))
}

func orDefaultTW(tw TimeWaitingPosition) TimeWaitingPosition {
	if tw == 0 {
		return TimeWaitingThird
	}
	return tw
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// HasPendingActions reports outstanding destruction or vaccination
// commitments, tracked via the status maps (which are kept in sync with
// the underlying priority-queue sets on every push/pop/remove) rather
// than by probing the sub-queues directly.
func (s *ResourceScheduler) HasPendingActions() bool {
	return len(s.destructionStatus) > 0 || len(s.vaccinationStatus) > 0
}

func (s *ResourceScheduler) HasPendingInfections() bool { return false }

// OutbreakKnown reports whether any herd has been detected this
// iteration, feeding the scenario's "stop on first detection" exit
// condition.
func (s *ResourceScheduler) OutbreakKnown() bool { return s.outbreakKnown }

// Run implements every event behavior in spec §4.4.
func (s *ResourceScheduler) Run(e Event, herds *HerdList, rng *RNG) Batch {
	switch e.Tag {
	case DeclarationOfDestructionReasons:
		for _, r := range e.Reasons {
			s.destReasons.Intern(r)
		}
		return nil
	case DeclarationOfVaccinationReasons:
		for _, r := range e.Reasons {
			s.vaccReasons.Intern(r)
		}
		return nil
	case Detection:
		return s.onDetection(e, herds)
	case RequestForDestruction:
		return s.onRequestForDestruction(e, herds)
	case RequestForVaccination:
		return s.onRequestForVaccination(e, herds)
	case Vaccination:
		s.dayLastVaccinated[e.Herd] = e.Day
		return nil
	case NewDay:
		return s.onNewDay(e, herds)
	case BeforeAnySimulations:
		return nil
	default:
		log.Fatalf(UnexpectedEventError, s.Name(), e.Tag.String())
		return nil
	}
}

func (s *ResourceScheduler) onDetection(e Event, herds *HerdList) Batch {
	var out Batch
	s.detectedToday[e.Herd] = true
	s.detectedHerds[e.Herd] = true

	if !s.outbreakKnown {
		s.outbreakKnown = true
		s.firstDetectionDay = e.Day
		s.destructionProgramBeginDay = e.Day + s.cfg.ProgramDelay + 1
		out = append(out, Event{Tag: PublicAnnouncement, Day: e.Day})
	}

	if locs, ok := s.vaccinationStatus[e.Herd]; ok && len(locs) > 0 {
		oldest := s.vaccPriority.At(locs[0])
		if oldest.cancelOnDetection {
			for _, loc := range locs {
				req := s.vaccPriority.At(loc)
				s.vaccPriority.Remove(loc)
				out = append(out, Event{Tag: VaccinationCanceled, Herd: e.Herd, Day: e.Day, Reason: req.reason, DayCommitmentMade: req.dayCommitmentMade})
			}
			delete(s.vaccinationStatus, e.Herd)
		}
	}
	return out
}

func (s *ResourceScheduler) onRequestForDestruction(e Event, herds *HerdList) Batch {
	if s.destroyedToday[e.Herd] {
		return nil
	}
	herd := herds.Get(e.Herd)
	if herd == nil {
		return nil
	}
	s.destReasons.Intern(e.Reason)
	priority := e.Priority
	if priority <= 0 {
		priority = 1
	}
	subIdx := s.destPriority.SubQueueFor(priority)
	candidate := request{
		herdID:     e.Herd,
		reason:     e.Reason,
		priority:   priority,
		enqueueDay: e.Day,
	}

	loc, exists := s.destructionStatus[e.Herd]
	if exists {
		existing := s.destPriority.At(loc)
		candidate.dayCommitmentMade = existing.dayCommitmentMade
		if !s.destPriority.ShouldReplace(existing, candidate) {
			return nil
		}
		s.destPriority.Remove(loc)
		newLoc := s.destPriority.Push(subIdx, candidate)
		s.destructionStatus[e.Herd] = newLoc
		return nil
	}

	if _, stillExists := s.destructionStatus[e.Herd]; stillExists {
		log.Fatalf(DuplicateEnqueueError, e.Herd, subIdx)
	}

	candidate.dayCommitmentMade = e.Day
	newLoc := s.destPriority.Push(subIdx, candidate)
	s.destructionStatus[e.Herd] = newLoc
	return Batch{{Tag: CommitmentToDestroy, Herd: e.Herd, Day: e.Day, Reason: e.Reason}}
}

func (s *ResourceScheduler) onRequestForVaccination(e Event, herds *HerdList) Batch {
	if s.destroyedToday[e.Herd] {
		return nil
	}
	if e.CancelOnDetection && s.detectedToday[e.Herd] {
		return nil
	}
	herd := herds.Get(e.Herd)
	if herd == nil {
		return nil
	}
	s.vaccReasons.Intern(e.Reason)
	priority := e.Priority
	if priority <= 0 {
		priority = 1
	}
	subIdx := s.vaccPriority.SubQueueFor(priority)
	req := request{
		herdID:            e.Herd,
		reason:            e.Reason,
		priority:          priority,
		enqueueDay:        e.Day,
		dayCommitmentMade: e.Day,
		cancelOnDetection: e.CancelOnDetection,
		minDaysBeforeNext: e.MinDaysBeforeNext,
	}
	loc := s.vaccPriority.Push(subIdx, req)
	s.vaccinationStatus[e.Herd] = append(s.vaccinationStatus[e.Herd], loc)
	return Batch{{Tag: CommitmentToVaccinate, Herd: e.Herd, Day: e.Day, Reason: e.Reason}}
}

func (s *ResourceScheduler) onNewDay(e Event, herds *HerdList) Batch {
	var out Batch
	s.detectedToday = make(map[int]bool)
	s.destroyedToday = make(map[int]bool)

	if s.outbreakKnown && e.Day >= s.destructionProgramBeginDay {
		offset := e.Day - s.firstDetectionDay - 1
		if !s.cfg.DestructionCapacity.PastZeroAbsorbingDay(offset) {
			cap := s.cfg.DestructionCapacity.Value(offset)
			for i := 0; i < cap; i++ {
				req, _, ok := s.destPriority.PopNext()
				if !ok {
					break
				}
				delete(s.destructionStatus, req.herdID)
				herd := herds.Get(req.herdID)
				if herd != nil {
					if herd.Status == DestroyedStatus {
						log.Fatalf(AlreadyDestroyedError, req.herdID, e.Day)
					}
					herd.Status = DestroyedStatus
				}
				s.destroyedToday[req.herdID] = true
				out = append(out, Event{Tag: Destruction, Herd: req.herdID, Day: e.Day, Reason: req.reason, DayCommitmentMade: req.dayCommitmentMade})

				if locs, ok := s.vaccinationStatus[req.herdID]; ok {
					for _, loc := range locs {
						vreq := s.vaccPriority.At(loc)
						s.vaccPriority.Remove(loc)
						out = append(out, Event{Tag: VaccinationCanceled, Herd: req.herdID, Day: e.Day, Reason: vreq.reason, DayCommitmentMade: vreq.dayCommitmentMade})
					}
					delete(s.vaccinationStatus, req.herdID)
				}
			}
		}
	}

	if len(s.detectedHerds) < s.cfg.VaccinationThreshold {
		for herdID, locs := range s.vaccinationStatus {
			for _, loc := range locs {
				vreq := s.vaccPriority.At(loc)
				s.vaccPriority.Remove(loc)
				out = append(out, Event{Tag: VaccinationCanceled, Herd: herdID, Day: e.Day, Reason: vreq.reason, DayCommitmentMade: vreq.dayCommitmentMade})
			}
		}
		s.vaccinationStatus = make(map[int][]*queueLocation)
	} else if s.outbreakKnown {
		offset := e.Day - s.firstDetectionDay - 1
		if !s.cfg.VaccinationCapacity.PastZeroAbsorbingDay(offset) {
			cap := s.cfg.VaccinationCapacity.Value(offset)
			for i := 0; i < cap; i++ {
				req, elem, ok := s.vaccPriority.PopNext()
				if !ok {
					break
				}
				s.removeVaccinationLocation(req.herdID, elem)

				if lastDay, ok := s.dayLastVaccinated[req.herdID]; ok && e.Day-lastDay < req.minDaysBeforeNext {
					out = append(out, Event{Tag: VaccinationCanceled, Herd: req.herdID, Day: e.Day, Reason: req.reason, DayCommitmentMade: req.dayCommitmentMade})
					continue
				}
				out = append(out, Event{Tag: Vaccination, Herd: req.herdID, Day: e.Day, Reason: req.reason, DayCommitmentMade: req.dayCommitmentMade})
			}
		}
	}

	return out
}

// removeVaccinationLocation prunes the back-reference for the just-popped
// request (identified by its underlying list element pointer) out of the
// herd's list of outstanding vaccination locations.
func (s *ResourceScheduler) removeVaccinationLocation(herdID int, elem *list.Element) {
	locs := s.vaccinationStatus[herdID]
	for i, loc := range locs {
		if loc.elem == elem {
			locs = append(locs[:i], locs[i+1:]...)
			break
		}
	}
	if len(locs) == 0 {
		delete(s.vaccinationStatus, herdID)
	} else {
		s.vaccinationStatus[herdID] = locs
	}
}

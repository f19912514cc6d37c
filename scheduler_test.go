package naadsm

import "testing"

func newTestScheduler(destCap, vaccCap int) (*ResourceScheduler, *HerdList) {
	s := NewResourceScheduler(SchedulerConfig{
		NumProductionTypes:     1,
		ProgramDelay:           0,
		VaccinationThreshold:   0,
		DestructionCapacity:    NewCapacityChart([]CapacityPoint{{Day: 0, Value: destCap}}),
		VaccinationCapacity:    NewCapacityChart([]CapacityPoint{{Day: 0, Value: vaccCap}}),
		DestructionTimeWaiting: TimeWaitingThird,
		VaccinationTimeWaiting: TimeWaitingThird,
	})
	s.Reset()
	herds := NewHerdList([]*Herd{
		{ID: 0, ProductionType: 0, Status: Susceptible, Size: 10},
		{ID: 1, ProductionType: 0, Status: Susceptible, Size: 10},
	}, false)
	return s, herds
}

func TestScheduler_RequestForDestructionCommitsOnce(t *testing.T) {
	s, herds := newTestScheduler(10, 10)

	out := s.Run(Event{Tag: RequestForDestruction, Day: 1, Herd: 0, Reason: "Ring"}, herds, NewRNG(1))
	if len(out) != 1 || out[0].Tag != CommitmentToDestroy {
		t.Fatal("expected a single CommitmentToDestroy on first request")
	}

	out = s.Run(Event{Tag: RequestForDestruction, Day: 1, Herd: 0, Reason: "Ring"}, herds, NewRNG(1))
	if len(out) != 0 {
		t.Error("expected no second commitment for a duplicate request with no replace condition met")
	}
}

func TestScheduler_NewDayDestroysUpToCapacity(t *testing.T) {
	s, herds := newTestScheduler(1, 0)

	s.Run(Event{Tag: RequestForDestruction, Day: 1, Herd: 0, Reason: "Ring"}, herds, NewRNG(1))
	s.Run(Event{Tag: RequestForDestruction, Day: 1, Herd: 1, Reason: "Ring"}, herds, NewRNG(1))

	s.outbreakKnown = true
	s.firstDetectionDay = 0
	s.destructionProgramBeginDay = 0

	out := s.Run(Event{Tag: NewDay, Day: 1}, herds, NewRNG(1))

	destroyed := 0
	for _, e := range out {
		if e.Tag == Destruction {
			destroyed++
		}
	}
	if destroyed != 1 {
		t.Errorf(UnequalIntParameterError, "destructions on a day with capacity 1", 1, destroyed)
	}
}

func TestScheduler_DetectionCancelsOutstandingVaccination(t *testing.T) {
	s, herds := newTestScheduler(0, 10)

	s.Run(Event{Tag: RequestForVaccination, Day: 1, Herd: 0, Reason: "Ring", CancelOnDetection: true}, herds, NewRNG(1))
	out := s.Run(Event{Tag: Detection, Day: 1, Herd: 0}, herds, NewRNG(1))

	canceled := false
	for _, e := range out {
		if e.Tag == VaccinationCanceled && e.Herd == 0 {
			canceled = true
		}
	}
	if !canceled {
		t.Error("expected detection to cancel a cancel-on-detection vaccination request")
	}
}

func TestScheduler_VaccinationThresholdDiscardsAllPending(t *testing.T) {
	s, herds := newTestScheduler(0, 10)
	s.cfg.VaccinationThreshold = 5

	s.Run(Event{Tag: RequestForVaccination, Day: 1, Herd: 0, Reason: "Ring"}, herds, NewRNG(1))
	out := s.Run(Event{Tag: NewDay, Day: 2}, herds, NewRNG(1))

	canceled := false
	for _, e := range out {
		if e.Tag == VaccinationCanceled {
			canceled = true
		}
	}
	if !canceled {
		t.Error("expected vaccination requests to be discarded while detections stay below the threshold")
	}
	if len(s.vaccinationStatus) != 0 {
		t.Error("expected vaccinationStatus to be empty after a below-threshold NewDay")
	}
}

// TestScheduler_RequestForDestructionIndexesDirectlyOnPriority guards
// against a regression where sub-queue placement was recomputed from
// (production-type, reason) instead of read directly off the event's own
// priority field. Module A interns its reason first -- under the bug,
// that would have given "ModuleA" the numerically lowest computed
// sub-queue regardless of its actual priority -- but requests destruction
// at priority 3, while module B requests the same herd at priority 1.
// Priority 1 must win the replacement and be the one popped first.
func TestScheduler_RequestForDestructionIndexesDirectlyOnPriority(t *testing.T) {
	s := NewResourceScheduler(SchedulerConfig{
		NumProductionTypes:     3,
		DestructionCapacity:    NewCapacityChart([]CapacityPoint{{Day: 0, Value: 1}}),
		VaccinationCapacity:    NewCapacityChart([]CapacityPoint{{Day: 0, Value: 0}}),
		DestructionTimeWaiting: TimeWaitingThird,
		VaccinationTimeWaiting: TimeWaitingThird,
	})
	s.Reset()
	herds := NewHerdList([]*Herd{{ID: 0, ProductionType: 0, Status: Susceptible, Size: 10}}, false)

	s.Run(Event{Tag: RequestForDestruction, Day: 1, Herd: 0, Reason: "ModuleA", Priority: 3}, herds, NewRNG(1))
	out := s.Run(Event{Tag: RequestForDestruction, Day: 1, Herd: 0, Reason: "ModuleB", Priority: 1}, herds, NewRNG(1))
	if len(out) != 1 || out[0].Tag != CommitmentToDestroy {
		t.Fatalf("expected module B's higher-priority request to replace module A's and commit")
	}

	s.outbreakKnown = true
	s.firstDetectionDay = 0
	s.destructionProgramBeginDay = 0
	result := s.Run(Event{Tag: NewDay, Day: 1}, herds, NewRNG(1))

	var destroyed *Event
	for i := range result {
		if result[i].Tag == Destruction {
			destroyed = &result[i]
		}
	}
	if destroyed == nil {
		t.Fatal("expected a Destruction event on NewDay")
	}
	if destroyed.Reason != "ModuleB" {
		t.Errorf("expected the destroyed herd's reason to be ModuleB (priority 1), got %q", destroyed.Reason)
	}
}

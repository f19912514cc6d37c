package naadsm

import "testing"

func TestListMonitor_DeclaresOutputsOnce(t *testing.T) {
	m := NewListMonitor(monitorDestruction, nil)
	m.Reset()
	out := m.Run(Event{Tag: BeforeAnySimulations}, nil, nil)
	if len(out) != 1 || out[0].Tag != DeclarationOfOutputs {
		t.Fatal("expected a single DeclarationOfOutputs batch")
	}
	if len(out[0].Outputs) == 0 {
		t.Error("expected at least one declared reporting variable")
	}
}

func TestListMonitor_DestructionTracksAwaitingAndPeak(t *testing.T) {
	herds := NewHerdList([]*Herd{
		{ID: 0, ProductionType: 0, Size: 50},
		{ID: 1, ProductionType: 0, Size: 30},
	}, false)
	m := NewListMonitor(monitorDestruction, nil)
	m.Reset()

	m.Run(Event{Tag: CommitmentToDestroy, Herd: 0, Day: 1}, herds, nil)
	m.Run(Event{Tag: CommitmentToDestroy, Herd: 1, Day: 1}, herds, nil)

	if m.awaitingUnits != 2 {
		t.Errorf(UnequalIntParameterError, "awaiting units after two commitments", 2, m.awaitingUnits)
	}
	if m.awaitingAnimals != 80 {
		t.Errorf(UnequalIntParameterError, "awaiting animals after two commitments", 80, m.awaitingAnimals)
	}
	if m.peakUnits != 2 {
		t.Errorf(UnequalIntParameterError, "peak units", 2, m.peakUnits)
	}

	m.Run(Event{Tag: Destruction, Herd: 0, Day: 4, DayCommitmentMade: 1}, herds, nil)
	if m.awaitingUnits != 1 {
		t.Errorf(UnequalIntParameterError, "awaiting units after one destruction", 1, m.awaitingUnits)
	}
	if m.waitCount != 1 || m.waitSum != 3 {
		t.Errorf(UnequalIntParameterError, "recorded wait days", 3, int(m.waitSum))
	}

	// Peak should persist even as the awaiting count drops.
	if m.peakUnits != 2 {
		t.Error("expected peak units to persist after a destruction reduces the awaiting count")
	}
}

func TestListMonitor_VaccinationRefCountsConcurrentRequests(t *testing.T) {
	herds := NewHerdList([]*Herd{{ID: 0, ProductionType: 0, Size: 20}}, false)
	m := NewListMonitor(monitorVaccination, nil)
	m.Reset()

	m.Run(Event{Tag: CommitmentToVaccinate, Herd: 0, Day: 1}, herds, nil)
	m.Run(Event{Tag: CommitmentToVaccinate, Herd: 0, Day: 1}, herds, nil)
	if m.awaitingUnits != 1 {
		t.Errorf(UnequalIntParameterError, "awaiting units after two concurrent commitments to the same herd", 1, m.awaitingUnits)
	}

	m.Run(Event{Tag: VaccinationCanceled, Herd: 0, Day: 2}, herds, nil)
	if m.awaitingUnits != 1 {
		t.Error("expected the herd to remain awaiting while one commitment is still outstanding")
	}
	m.Run(Event{Tag: Vaccination, Herd: 0, Day: 3, DayCommitmentMade: 1}, herds, nil)
	if m.awaitingUnits != 0 {
		t.Error("expected the herd to clear once the last outstanding commitment resolves")
	}
}

func TestListMonitor_NewDayAccumulatesUnitDays(t *testing.T) {
	herds := NewHerdList([]*Herd{{ID: 0, ProductionType: 0, Size: 10}}, false)
	m := NewListMonitor(monitorDestruction, nil)
	m.Reset()

	m.Run(Event{Tag: CommitmentToDestroy, Herd: 0, Day: 1}, herds, nil)
	m.Run(Event{Tag: NewDay, Day: 2}, herds, nil)
	m.Run(Event{Tag: NewDay, Day: 3}, herds, nil)

	if m.unitDaysInQueue != 2 {
		t.Errorf(UnequalIntParameterError, "accumulated unit-days", 2, int(m.unitDaysInQueue))
	}
}

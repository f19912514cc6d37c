package naadsm

import "testing"

func TestRingDestruction_DeclaresReasonOnce(t *testing.T) {
	idx := NewBruteForceIndex()
	r := NewRingDestruction(RingDestructionParams{}, idx)

	out := r.Run(Event{Tag: BeforeAnySimulations}, nil, nil)
	if len(out) != 1 || out[0].Tag != DeclarationOfDestructionReasons {
		t.Fatal("expected a single DeclarationOfDestructionReasons on first BeforeAnySimulations")
	}
	out = r.Run(Event{Tag: BeforeAnySimulations}, nil, nil)
	if len(out) != 0 {
		t.Error("expected no second declaration on a later BeforeAnySimulations")
	}
}

func TestRingDestruction_RequestsDestructionWithinRadius(t *testing.T) {
	herds := []*Herd{
		{ID: 0, ProductionType: 0, X: 0, Y: 0, Status: InfectiousClinical},
		{ID: 1, ProductionType: 1, X: 1, Y: 0, Status: Susceptible},
		{ID: 2, ProductionType: 1, X: 10, Y: 0, Status: Susceptible},
		{ID: 3, ProductionType: 1, X: 1, Y: 0, Status: DestroyedStatus},
	}
	list := NewHerdList(herds, false)
	idx := NewBruteForceIndex()
	idx.Build(list.Herds)

	r := NewRingDestruction(RingDestructionParams{
		FromTypes: map[int]bool{0: true},
		ToTypes:   map[int]bool{1: true},
		Radius:    5,
		Priority:  2,
	}, idx)

	out := r.Run(Event{Tag: Detection, Herd: 0, Day: 3}, list, nil)
	if len(out) != 1 {
		t.Fatalf(UnequalIntParameterError, "destruction requests within radius", 1, len(out))
	}
	if out[0].Herd != 1 || out[0].Reason != ReasonRing || out[0].Priority != 2 {
		t.Error("expected a destruction request naming the in-radius, affectable, matching-type herd")
	}
}

func TestRingDestruction_IgnoresDetectionFromUnconfiguredType(t *testing.T) {
	herds := []*Herd{
		{ID: 0, ProductionType: 5, X: 0, Y: 0, Status: InfectiousClinical},
		{ID: 1, ProductionType: 1, X: 1, Y: 0, Status: Susceptible},
	}
	list := NewHerdList(herds, false)
	idx := NewBruteForceIndex()
	idx.Build(list.Herds)

	r := NewRingDestruction(RingDestructionParams{
		FromTypes: map[int]bool{0: true},
		ToTypes:   map[int]bool{1: true},
		Radius:    5,
	}, idx)

	out := r.Run(Event{Tag: Detection, Herd: 0, Day: 3}, list, nil)
	if len(out) != 0 {
		t.Error("expected no requests when the detected herd's type is not a configured trigger")
	}
}

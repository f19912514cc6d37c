package naadsm

import "testing"

func TestTraceExam_EmitsExamOnMatchingTrace(t *testing.T) {
	herds := NewHerdList([]*Herd{{ID: 0, ProductionType: 1, Status: Susceptible}}, false)
	ex := NewTraceExam(TraceExamParams{ContactType: DirectContact, Direction: DirectionOut, ProductionType: 1, Reason: "TraceForward"})
	ex.Reset()

	out := ex.Run(Event{Tag: TraceResult, Herd: 0, Day: 5, Traced: true, ContactType: DirectContact, Direction: DirectionOut}, herds, nil)
	if len(out) != 1 || out[0].Tag != Exam {
		t.Fatal("expected a single Exam on a matching traced contact")
	}
}

func TestTraceExam_SuppressesDuplicateExamForSameHerd(t *testing.T) {
	herds := NewHerdList([]*Herd{{ID: 0, ProductionType: 1, Status: Susceptible}}, false)
	ex := NewTraceExam(TraceExamParams{ContactType: DirectContact, Direction: DirectionOut, ProductionType: 1, Reason: "TraceForward"})
	ex.Reset()

	ex.Run(Event{Tag: TraceResult, Herd: 0, Day: 5, Traced: true, ContactType: DirectContact, Direction: DirectionOut}, herds, nil)
	out := ex.Run(Event{Tag: TraceResult, Herd: 0, Day: 6, Traced: true, ContactType: DirectContact, Direction: DirectionOut}, herds, nil)
	if len(out) != 0 {
		t.Error("expected no second exam for a herd already examined")
	}
}

func TestTraceExam_SuppressesWhenDetectedOnPriorDay(t *testing.T) {
	herds := NewHerdList([]*Herd{{ID: 0, ProductionType: 1, Status: Susceptible}}, false)
	ex := NewTraceExam(TraceExamParams{ContactType: DirectContact, Direction: DirectionOut, ProductionType: 1, Reason: "TraceForward"})
	ex.Reset()

	ex.Run(Event{Tag: Detection, Herd: 0, Day: 2}, herds, nil)
	ex.Run(Event{Tag: NewDay, Day: 5}, herds, nil)

	out := ex.Run(Event{Tag: TraceResult, Herd: 0, Day: 5, Traced: true, ContactType: DirectContact, Direction: DirectionOut}, herds, nil)
	if len(out) != 0 {
		t.Error("expected no exam for a herd detected on an earlier day")
	}
}

func TestTraceExam_AllowsExamWhenDetectedSameDay(t *testing.T) {
	herds := NewHerdList([]*Herd{{ID: 0, ProductionType: 1, Status: Susceptible}}, false)
	ex := NewTraceExam(TraceExamParams{ContactType: DirectContact, Direction: DirectionOut, ProductionType: 1, Reason: "TraceForward"})
	ex.Reset()

	ex.Run(Event{Tag: Detection, Herd: 0, Day: 5}, herds, nil)
	ex.Run(Event{Tag: NewDay, Day: 5}, herds, nil)

	out := ex.Run(Event{Tag: TraceResult, Herd: 0, Day: 5, Traced: true, ContactType: DirectContact, Direction: DirectionOut}, herds, nil)
	if len(out) != 1 {
		t.Error("expected a same-day detection to still allow an exam")
	}
}

func TestTraceZoneFocus_EmitsRequestOnMatchingTrace(t *testing.T) {
	z := NewTraceZoneFocus(TraceZoneFocusParams{ContactType: IndirectContact, Direction: DirectionIn, Reason: "TraceBack"})
	out := z.Run(Event{Tag: TraceResult, Herd: 3, Day: 9, Traced: true, ContactType: IndirectContact, Direction: DirectionIn}, nil, nil)
	if len(out) != 1 || out[0].Tag != RequestForZoneFocus || out[0].Herd != 3 {
		t.Fatal("expected a RequestForZoneFocus naming the traced herd")
	}
}

func TestTraceZoneFocus_IgnoresUntracedResult(t *testing.T) {
	z := NewTraceZoneFocus(TraceZoneFocusParams{ContactType: IndirectContact, Direction: DirectionIn, Reason: "TraceBack"})
	out := z.Run(Event{Tag: TraceResult, Herd: 3, Day: 9, Traced: false, ContactType: IndirectContact, Direction: DirectionIn}, nil, nil)
	if len(out) != 0 {
		t.Error("expected no zone focus request for an untraced result")
	}
}

func TestTraceBackDestruction_DeclaresReasonOnce(t *testing.T) {
	tb := NewTraceBackDestruction(TraceBackDestructionParams{Reason: "TraceBackDestroy"})
	out := tb.Run(Event{Tag: BeforeAnySimulations}, nil, nil)
	if len(out) != 1 || out[0].Tag != DeclarationOfDestructionReasons {
		t.Fatal("expected a single reason declaration on first BeforeAnySimulations")
	}
	out = tb.Run(Event{Tag: BeforeAnySimulations}, nil, nil)
	if len(out) != 0 {
		t.Error("expected no second declaration")
	}
}

func TestTraceBackDestruction_RequestsDestructionOnMatchingTrace(t *testing.T) {
	herds := NewHerdList([]*Herd{{ID: 0}, {ID: 1}, {ID: 2}, {ID: 3}, {ID: 4, ProductionType: 2, Status: Susceptible}}, false)
	tb := NewTraceBackDestruction(TraceBackDestructionParams{
		ContactType: DirectContact, Direction: DirectionOut, ProductionType: 2,
		Priority: 1, Reason: "TraceBackDestroy",
	})
	out := tb.Run(Event{Tag: TraceResult, Herd: 4, Day: 2, Traced: true, ContactType: DirectContact, Direction: DirectionOut}, herds, nil)
	if len(out) != 1 || out[0].Tag != RequestForDestruction || out[0].Herd != 4 {
		t.Fatal("expected a destruction request naming the traced herd")
	}
}

func TestTraceBackDestruction_SkipsUnaffectableHerd(t *testing.T) {
	herds := NewHerdList([]*Herd{{ID: 0}, {ID: 1}, {ID: 2}, {ID: 3}, {ID: 4, ProductionType: 2, Status: DestroyedStatus}}, false)
	tb := NewTraceBackDestruction(TraceBackDestructionParams{
		ContactType: DirectContact, Direction: DirectionOut, ProductionType: 2, Reason: "TraceBackDestroy",
	})
	out := tb.Run(Event{Tag: TraceResult, Herd: 4, Day: 2, Traced: true, ContactType: DirectContact, Direction: DirectionOut}, herds, nil)
	if len(out) != 0 {
		t.Error("expected no destruction request for an already-destroyed herd")
	}
}

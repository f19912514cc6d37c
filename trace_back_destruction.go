package naadsm

import "log"

// TraceBackDestructionParams configures the legacy trace-back-destruction
// policy (SPEC_FULL.md supplemental feature, grounded on the deprecated
// trace-back-destruction-model in the original engine). It is kept for
// scenario-file backward compatibility alongside the newer trace-exam and
// trace-zone-focus modules, and shares their contact-type/direction
// matching shape.
type TraceBackDestructionParams struct {
	ContactType    ContactType
	Direction      Direction
	ProductionType int
	Priority       int
	Reason         string
}

// TraceBackDestruction implements the supplemental trace-back-destruction
// behavior: on a matching TraceResult(traced=true), request destruction
// of the traced-to herd, rather than just an Exam or a zone focus point.
type TraceBackDestruction struct {
	params TraceBackDestructionParams

	declared bool
}

func NewTraceBackDestruction(params TraceBackDestructionParams) *TraceBackDestruction {
	return &TraceBackDestruction{params: params}
}

func (t *TraceBackDestruction) Name() string { return "TraceBackDestruction" }

func (t *TraceBackDestruction) EventsListenedFor() map[Tag]bool {
	return map[Tag]bool{BeforeAnySimulations: true, TraceResult: true}
}

func (t *TraceBackDestruction) Outputs() []*ReportingVariable { return nil }

func (t *TraceBackDestruction) Run(e Event, herds *HerdList, rng *RNG) Batch {
	switch e.Tag {
	case BeforeAnySimulations:
		if t.declared {
			return nil
		}
		t.declared = true
		return Batch{{Tag: DeclarationOfDestructionReasons, Reasons: []string{t.params.Reason}}}
	case TraceResult:
		return t.onTraceResult(e, herds)
	default:
		log.Fatalf(UnexpectedEventError, t.Name(), e.Tag.String())
		return nil
	}
}

func (t *TraceBackDestruction) onTraceResult(e Event, herds *HerdList) Batch {
	if !e.Traced {
		return nil
	}
	if e.ContactType != t.params.ContactType || e.Direction != t.params.Direction {
		return nil
	}
	herd := herds.Get(e.Herd)
	if herd == nil || herd.ProductionType != t.params.ProductionType {
		return nil
	}
	if herd.Unaffectable(herds.Riverton) {
		return nil
	}
	return Batch{{Tag: RequestForDestruction, Day: e.Day, Herd: e.Herd, Reason: t.params.Reason, Priority: t.params.Priority}}
}

func (t *TraceBackDestruction) Reset() {}

func (t *TraceBackDestruction) HasPendingActions() bool    { return false }
func (t *TraceBackDestruction) HasPendingInfections() bool { return false }

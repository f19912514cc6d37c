package naadsm

import "log"

// TraceZoneFocusParams configures which traced contacts seed a zone focus
// point (spec §4.7).
type TraceZoneFocusParams struct {
	ContactType ContactType
	Direction   Direction
	Reason      string
}

// TraceZoneFocus implements spec §4.7's trace-zone-focus half: on a
// matching TraceResult, emit RequestForZoneFocus for the exposed herd.
// Distinct from ZoneFocusModule, which only owns the pending/active
// timing once a focus point has been requested.
type TraceZoneFocus struct {
	params TraceZoneFocusParams
}

func NewTraceZoneFocus(params TraceZoneFocusParams) *TraceZoneFocus {
	return &TraceZoneFocus{params: params}
}

func (t *TraceZoneFocus) Name() string { return "TraceZoneFocus" }

func (t *TraceZoneFocus) EventsListenedFor() map[Tag]bool {
	return map[Tag]bool{TraceResult: true}
}

func (t *TraceZoneFocus) Outputs() []*ReportingVariable { return nil }

func (t *TraceZoneFocus) Run(e Event, herds *HerdList, rng *RNG) Batch {
	if e.Tag != TraceResult {
		log.Fatalf(UnexpectedEventError, t.Name(), e.Tag.String())
		return nil
	}
	if !e.Traced {
		return nil
	}
	if e.ContactType != t.params.ContactType || e.Direction != t.params.Direction {
		return nil
	}
	return Batch{{Tag: RequestForZoneFocus, Day: e.Day, Herd: e.Herd, Reason: t.params.Reason}}
}

func (t *TraceZoneFocus) Reset() {}

func (t *TraceZoneFocus) HasPendingActions() bool    { return false }
func (t *TraceZoneFocus) HasPendingInfections() bool { return false }

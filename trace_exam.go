package naadsm

import "log"

// TraceExamParams configures which traced contacts produce an exam (spec
// §4.7).
type TraceExamParams struct {
	ContactType    ContactType
	Direction      Direction
	ProductionType int
	Reason         string
}

// TraceExam implements spec §4.7's trace-exam half: on a matching
// TraceResult for a herd not already destroyed, emit a single Exam event,
// suppressing duplicates via a first-exam-day table. A herd detected on a
// prior day is excluded; one detected the same day is still examined
// (order between Detection and TraceResult within a wave is
// nondeterministic by design).
type TraceExam struct {
	params TraceExamParams

	firstExamDay   map[int]int
	detectedBefore map[int]bool
	detectedOnDay  map[int]int
}

func NewTraceExam(params TraceExamParams) *TraceExam {
	return &TraceExam{params: params}
}

func (t *TraceExam) Name() string { return "TraceExam" }

func (t *TraceExam) EventsListenedFor() map[Tag]bool {
	return map[Tag]bool{TraceResult: true, Detection: true, NewDay: true}
}

func (t *TraceExam) Outputs() []*ReportingVariable { return nil }

func (t *TraceExam) Run(e Event, herds *HerdList, rng *RNG) Batch {
	switch e.Tag {
	case Detection:
		t.detectedOnDay[e.Herd] = e.Day
		return nil
	case NewDay:
		for id, day := range t.detectedOnDay {
			if day < e.Day {
				t.detectedBefore[id] = true
			}
		}
		return nil
	case TraceResult:
		return t.onTraceResult(e, herds)
	default:
		log.Fatalf(UnexpectedEventError, t.Name(), e.Tag.String())
		return nil
	}
}

func (t *TraceExam) onTraceResult(e Event, herds *HerdList) Batch {
	if !e.Traced {
		return nil
	}
	if e.ContactType != t.params.ContactType || e.Direction != t.params.Direction {
		return nil
	}
	herd := herds.Get(e.Herd)
	if herd == nil || herd.Status == DestroyedStatus {
		return nil
	}
	if herd.ProductionType != t.params.ProductionType {
		return nil
	}
	if t.detectedBefore[herd.ID] {
		return nil
	}
	if _, already := t.firstExamDay[herd.ID]; already {
		return nil
	}
	t.firstExamDay[herd.ID] = e.Day
	return Batch{{Tag: Exam, Day: e.Day, Herd: herd.ID, ExamReason: t.params.Reason}}
}

func (t *TraceExam) Reset() {
	t.firstExamDay = make(map[int]int)
	t.detectedBefore = make(map[int]bool)
	t.detectedOnDay = make(map[int]int)
}

func (t *TraceExam) HasPendingActions() bool    { return false }
func (t *TraceExam) HasPendingInfections() bool { return false }

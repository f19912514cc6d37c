package naadsm

// Tag identifies the kind of an Event. Every inter-module signal in the
// simulation is one of these tags; the payload that accompanies a tag is
// immutable once the Event is constructed, and the tag is the basis for
// pub/sub dispatch in the Registry (see module.go).
type Tag int

const (
	BeforeAnySimulations Tag = iota
	BeforeEachSimulation
	DeclarationOfVaccinationReasons
	DeclarationOfDestructionReasons
	DeclarationOfVaccineDelay
	DeclarationOfOutputs
	NewDay
	Exposure
	AttemptToInfect
	Infection
	Detection
	PublicAnnouncement
	Exam
	AttemptToTrace
	TraceResult
	Test
	TestResult
	RequestForVaccination
	CommitmentToVaccinate
	VaccinationCanceled
	Vaccination
	RequestForDestruction
	CommitmentToDestroy
	Destruction
	RequestForZoneFocus
	EndOfDay
	LastDay
	Midnight
)

var tagNames = map[Tag]string{
	BeforeAnySimulations:            "BeforeAnySimulations",
	BeforeEachSimulation:            "BeforeEachSimulation",
	DeclarationOfVaccinationReasons: "DeclarationOfVaccinationReasons",
	DeclarationOfDestructionReasons: "DeclarationOfDestructionReasons",
	DeclarationOfVaccineDelay:       "DeclarationOfVaccineDelay",
	DeclarationOfOutputs:            "DeclarationOfOutputs",
	NewDay:                   "NewDay",
	Exposure:                 "Exposure",
	AttemptToInfect:          "AttemptToInfect",
	Infection:                "Infection",
	Detection:                "Detection",
	PublicAnnouncement:       "PublicAnnouncement",
	Exam:                     "Exam",
	AttemptToTrace:           "AttemptToTrace",
	TraceResult:              "TraceResult",
	Test:                     "Test",
	TestResult:               "TestResult",
	RequestForVaccination:    "RequestForVaccination",
	CommitmentToVaccinate:    "CommitmentToVaccinate",
	VaccinationCanceled:      "VaccinationCanceled",
	Vaccination:              "Vaccination",
	RequestForDestruction:    "RequestForDestruction",
	CommitmentToDestroy:      "CommitmentToDestroy",
	Destruction:              "Destruction",
	RequestForZoneFocus:      "RequestForZoneFocus",
	EndOfDay:                 "EndOfDay",
	LastDay:                  "LastDay",
	Midnight:                 "Midnight",
}

// String implements fmt.Stringer so events read naturally in log lines and
// fatal-error messages (UnexpectedEventError, EndOfDayEmitError).
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "UnknownTag"
}

// ContactType enumerates the mechanisms by which one herd can expose
// another. AirborneSpread is never traceable; DirectContact and
// IndirectContact are, subject to per-scenario trace-period windows.
type ContactType int

const (
	DirectContact ContactType = iota
	IndirectContact
	AirborneSpreadContact
)

func (c ContactType) String() string {
	switch c {
	case DirectContact:
		return "DirectContact"
	case IndirectContact:
		return "IndirectContact"
	case AirborneSpreadContact:
		return "AirborneSpread"
	default:
		return "UnknownContact"
	}
}

// Direction distinguishes outgoing ("forward") contact tracing from
// incoming ("back") contact tracing.
type Direction int

const (
	DirectionOut Direction = iota
	DirectionIn
)

// Event is the tagged union of every signal the engine's modules exchange.
// Only the fields relevant to Tag are meaningful; the zero value of all
// others is ignored. Event values are immutable after construction:
// modules must treat a received Event as read-only and emit any derived
// effects as brand-new Event values.
type Event struct {
	Tag Tag

	Day int

	// Herd / Source / Target are herd indices, not owning references.
	Herd   int
	Source int
	Target int

	ContactType ContactType
	Direction   Direction
	TracePeriod int
	InitiatedDay int
	Traced      bool

	Traceable bool
	Adequate  bool
	Delay     int

	OverrideInitialState int
	DaysInState          int
	DaysLeft             int

	DetectionReason string
	TestPositive    bool
	TestCorrect     bool

	Reason             string
	Priority           int
	CancelOnDetection  bool
	MinDaysBeforeNext  int
	DayCommitmentMade  int

	ExamReason             string
	DetectionMultiplier    float64
	TestIfNoSigns          bool

	ProductionType int
	DelayDays      int

	Reasons []string
	Outputs []*ReportingVariable

	Done bool
}

// Batch is a slice of Event values a Module.Run call emits in response to
// one dequeued event. A nil or empty Batch means "no derived effects".
type Batch []Event

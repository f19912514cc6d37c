package naadsm

import (
	"fmt"
	"log"
)

// listMonitorKind distinguishes a destruction-list monitor from a
// vaccination-list monitor; the two share every counter and statistic
// described in spec §4.8 but subscribe to different event tags and, for
// vaccination, track a reference count per herd instead of a single flag.
type listMonitorKind int

const (
	monitorDestruction listMonitorKind = iota
	monitorVaccination
)

// ListMonitor implements spec §4.8: per-production-type awaiting counts,
// peaks (value and day), unit-days/animal-days-in-queue accumulators, and
// first-moment wait-time statistics, shared between the destruction and
// vaccination list monitors.
type ListMonitor struct {
	kind           listMonitorKind
	productionName func(productionType int) string

	awaitingUnits    int
	awaitingAnimals  int
	refCount         map[int]int // vaccination: concurrent outstanding requests per herd

	// Per-(production-type, reason) breakdown, keyed by groupLabel. Every
	// commit/action/cancel event carries the reason the underlying request
	// was queued under (scheduler.go threads it onto CommitmentToDestroy,
	// CommitmentToVaccinate and VaccinationCanceled alongside Destruction and
	// Vaccination), so no extra per-herd bookkeeping is needed here.
	awaitingByGroup  map[string]int
	peakByGroup      map[string]int
	waitSumByGroup   map[string]int64
	waitCountByGroup map[string]int64

	peakUnits    int
	peakUnitsDay int
	peakAnimals    int
	peakAnimalsDay int

	unitDaysInQueue   int64
	animalDaysInQueue int64

	waitSum   int64
	waitCount int64
	waitPeakDays int

	outputs          OutputSet
	varAwaitingUnits *ReportingVariable
	varAwaitingAnimals *ReportingVariable
	varPeakUnits     *ReportingVariable
	varPeakAnimals   *ReportingVariable
	varUnitDays      *ReportingVariable
	varAnimalDays    *ReportingVariable
	varAvgWait       *ReportingVariable

	varAwaitingByGroup *ReportingVariable
	varPeakByGroup     *ReportingVariable
	varAvgWaitByGroup  *ReportingVariable
}

// NewListMonitor builds a monitor of the given kind. productionName may be
// nil if per-production-type breakdowns are not needed.
func NewListMonitor(kind listMonitorKind, productionName func(int) string) *ListMonitor {
	m := &ListMonitor{kind: kind, productionName: productionName}
	prefix := "destr"
	if kind == monitorVaccination {
		prefix = "vacc"
	}
	m.varAwaitingUnits = m.outputs.Declare(prefix+"UnitsAwaiting", FrequencyDaily)
	m.varAwaitingAnimals = m.outputs.Declare(prefix+"AnimalsAwaiting", FrequencyDaily)
	m.varPeakUnits = m.outputs.Declare(prefix+"UnitsPeak", FrequencyPerIteration)
	m.varPeakAnimals = m.outputs.Declare(prefix+"AnimalsPeak", FrequencyPerIteration)
	m.varUnitDays = m.outputs.Declare(prefix+"UnitDaysInQueue", FrequencyPerIteration)
	m.varAnimalDays = m.outputs.Declare(prefix+"AnimalDaysInQueue", FrequencyPerIteration)
	m.varAvgWait = m.outputs.Declare(prefix+"AvgWait", FrequencyPerIteration)
	m.varAwaitingByGroup = m.outputs.Declare(prefix+"UnitsAwaitingByGroup", FrequencyDaily)
	m.varPeakByGroup = m.outputs.Declare(prefix+"PeakByGroup", FrequencyPerIteration)
	m.varAvgWaitByGroup = m.outputs.Declare(prefix+"AvgWaitByGroup", FrequencyPerIteration)
	return m
}

// groupLabel names the per-(production-type, reason) bucket a commitment is
// counted under. productionName falls back to a numeric label when the
// module wasn't given a name lookup.
func (m *ListMonitor) groupLabel(productionType int, reason string) string {
	name := fmt.Sprintf("type%d", productionType)
	if m.productionName != nil {
		if n := m.productionName(productionType); n != "" {
			name = n
		}
	}
	if reason == "" {
		return name
	}
	return name + "/" + reason
}

func (m *ListMonitor) Name() string {
	if m.kind == monitorVaccination {
		return "VaccinationListMonitor"
	}
	return "DestructionListMonitor"
}

func (m *ListMonitor) EventsListenedFor() map[Tag]bool {
	if m.kind == monitorVaccination {
		return map[Tag]bool{
			BeforeAnySimulations: true,
			CommitmentToVaccinate: true,
			Vaccination:           true,
			VaccinationCanceled:   true,
			NewDay:                true,
		}
	}
	return map[Tag]bool{
		BeforeAnySimulations: true,
		CommitmentToDestroy:  true,
		Destruction:          true,
		NewDay:               true,
	}
}

func (m *ListMonitor) Outputs() []*ReportingVariable { return m.outputs.Vars() }

func (m *ListMonitor) Run(e Event, herds *HerdList, rng *RNG) Batch {
	switch e.Tag {
	case BeforeAnySimulations:
		return Batch{{Tag: DeclarationOfOutputs, Outputs: m.outputs.Vars()}}
	case CommitmentToDestroy:
		if m.kind == monitorDestruction {
			m.onCommit(e, herds)
		}
	case CommitmentToVaccinate:
		if m.kind == monitorVaccination {
			m.onCommit(e, herds)
		}
	case Destruction:
		if m.kind == monitorDestruction {
			m.onAction(e, herds)
		}
	case Vaccination:
		if m.kind == monitorVaccination {
			m.onAction(e, herds)
		}
	case VaccinationCanceled:
		if m.kind == monitorVaccination {
			m.onCancel(e, herds)
		}
	case NewDay:
		m.onNewDay()
	default:
		log.Fatalf(UnexpectedEventError, m.Name(), e.Tag.String())
	}
	return nil
}

func (m *ListMonitor) onCommit(e Event, herds *HerdList) {
	herd := herds.Get(e.Herd)
	if herd == nil {
		return
	}
	label := m.groupLabel(herd.ProductionType, e.Reason)
	m.awaitingByGroup[label]++
	if m.awaitingByGroup[label] > m.peakByGroup[label] {
		m.peakByGroup[label] = m.awaitingByGroup[label]
	}

	if m.kind == monitorVaccination {
		m.refCount[e.Herd]++
		if m.refCount[e.Herd] > 1 {
			// Already counted as awaiting; only the first concurrent
			// request adds to the totals.
			return
		}
	}
	m.awaitingUnits++
	m.awaitingAnimals += herd.Size

	if m.awaitingUnits > m.peakUnits {
		m.peakUnits = m.awaitingUnits
		m.peakUnitsDay = e.Day
	}
	if m.awaitingAnimals > m.peakAnimals {
		m.peakAnimals = m.awaitingAnimals
		m.peakAnimalsDay = e.Day
	}
}

func (m *ListMonitor) onAction(e Event, herds *HerdList) {
	herd := herds.Get(e.Herd)
	if herd == nil {
		return
	}
	label := m.groupLabel(herd.ProductionType, e.Reason)
	wait := e.Day - e.DayCommitmentMade
	m.awaitingByGroup[label]--
	m.waitSumByGroup[label] += int64(wait)
	m.waitCountByGroup[label]++

	if m.kind == monitorVaccination {
		m.refCount[e.Herd]--
		if m.refCount[e.Herd] > 0 {
			return
		}
		delete(m.refCount, e.Herd)
	}
	m.awaitingUnits--
	m.awaitingAnimals -= herd.Size

	m.waitSum += int64(wait)
	m.waitCount++
	if wait > m.waitPeakDays {
		m.waitPeakDays = wait
	}
}

func (m *ListMonitor) onCancel(e Event, herds *HerdList) {
	herd := herds.Get(e.Herd)
	if herd == nil {
		return
	}
	label := m.groupLabel(herd.ProductionType, e.Reason)
	m.awaitingByGroup[label]--

	m.refCount[e.Herd]--
	if m.refCount[e.Herd] > 0 {
		return
	}
	delete(m.refCount, e.Herd)
	m.awaitingUnits--
	m.awaitingAnimals -= herd.Size
}

func (m *ListMonitor) onNewDay() {
	m.unitDaysInQueue += int64(m.awaitingUnits)
	m.animalDaysInQueue += int64(m.awaitingAnimals)

	m.varAwaitingUnits.Set(IntValue(m.awaitingUnits))
	m.varAwaitingAnimals.Set(IntValue(m.awaitingAnimals))
	m.varPeakUnits.Set(IntValue(m.peakUnits))
	m.varPeakAnimals.Set(IntValue(m.peakAnimals))
	m.varUnitDays.Set(IntValue(int(m.unitDaysInQueue)))
	m.varAnimalDays.Set(IntValue(int(m.animalDaysInQueue)))
	if m.waitCount > 0 {
		m.varAvgWait.Set(RealValue(float64(m.waitSum) / float64(m.waitCount)))
	}

	awaiting := make(map[string]float64, len(m.awaitingByGroup))
	for label, n := range m.awaitingByGroup {
		awaiting[label] = float64(n)
	}
	m.varAwaitingByGroup.Set(GroupValue(awaiting))

	peak := make(map[string]float64, len(m.peakByGroup))
	for label, n := range m.peakByGroup {
		peak[label] = float64(n)
	}
	m.varPeakByGroup.Set(GroupValue(peak))

	avgWait := make(map[string]float64, len(m.waitCountByGroup))
	for label, n := range m.waitCountByGroup {
		if n > 0 {
			avgWait[label] = float64(m.waitSumByGroup[label]) / float64(n)
		}
	}
	m.varAvgWaitByGroup.Set(GroupValue(avgWait))
}

func (m *ListMonitor) Reset() {
	m.awaitingUnits = 0
	m.awaitingAnimals = 0
	m.awaitingByGroup = make(map[string]int)
	m.peakByGroup = make(map[string]int)
	m.waitSumByGroup = make(map[string]int64)
	m.waitCountByGroup = make(map[string]int64)
	m.refCount = make(map[int]int)
	m.peakUnits = 0
	m.peakUnitsDay = 0
	m.peakAnimals = 0
	m.peakAnimalsDay = 0
	m.unitDaysInQueue = 0
	m.animalDaysInQueue = 0
	m.waitSum = 0
	m.waitCount = 0
	m.waitPeakDays = 0
}

func (m *ListMonitor) HasPendingActions() bool    { return m.awaitingUnits > 0 }
func (m *ListMonitor) HasPendingInfections() bool { return false }

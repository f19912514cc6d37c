package naadsm

// DiseaseStatus is the epidemiological status of a herd, per spec §3.
type DiseaseStatus int

const (
	Susceptible DiseaseStatus = iota
	Latent
	InfectiousSubclinical
	InfectiousClinical
	NaturallyImmune
	VaccineImmune
	DestroyedStatus
)

func (s DiseaseStatus) String() string {
	switch s {
	case Susceptible:
		return "Susceptible"
	case Latent:
		return "Latent"
	case InfectiousSubclinical:
		return "InfectiousSubclinical"
	case InfectiousClinical:
		return "InfectiousClinical"
	case NaturallyImmune:
		return "NaturallyImmune"
	case VaccineImmune:
		return "VaccineImmune"
	case DestroyedStatus:
		return "Destroyed"
	default:
		return "UnknownStatus"
	}
}

// Infectious reports whether a herd in this status can be a source of
// Exposure events.
func (s DiseaseStatus) Infectious() bool {
	return s == InfectiousSubclinical || s == InfectiousClinical
}

// Herd is a single geo-located production unit. Herds are owned by the
// HerdList for the whole process; events reference herds by index, never
// by holding an owning pointer (spec §3 "Event" ownership rules).
type Herd struct {
	ID             int
	OfficialID     string
	ProductionType int
	ProductionName string
	X, Y           float64
	Size           int
	Status         DiseaseStatus
	Prevalence     float64
	Quarantined    bool

	initialStatus      DiseaseStatus
	initialSize        int
	initialPrevalence  float64
	initialQuarantined bool
}

// snapshotInitial captures the values reset() restores between iterations.
func (h *Herd) snapshotInitial() {
	h.initialStatus = h.Status
	h.initialSize = h.Size
	h.initialPrevalence = h.Prevalence
	h.initialQuarantined = h.Quarantined
}

// reset restores a herd to the state recorded at scenario load, per spec
// §3 "Herds ... are reset to initial state between iterations."
func (h *Herd) reset() {
	h.Status = h.initialStatus
	h.Size = h.initialSize
	h.Prevalence = h.initialPrevalence
	h.Quarantined = h.initialQuarantined
}

// Unaffectable reports whether a herd can no longer be a meaningful
// target of disease or control processes: destroyed always qualifies, and
// under the Riverton variant so does NaturallyImmune (DESIGN NOTES,
// "Riverton variant"). Every "unit can no longer be affected" predicate in
// this codebase is expressed through this single helper so the variant
// flag only has to be checked in one place.
func (h *Herd) Unaffectable(riverton bool) bool {
	if h.Status == DestroyedStatus {
		return true
	}
	return riverton && h.Status == NaturallyImmune
}

// HerdList is the ordered, indexable population of herds for one
// scenario. Index i of Herds corresponds to herd ID i.
type HerdList struct {
	Herds    []*Herd
	Riverton bool
}

// NewHerdList wraps herds (in ID order) into a HerdList and snapshots each
// herd's initial state for later reset() calls.
func NewHerdList(herds []*Herd, riverton bool) *HerdList {
	for _, h := range herds {
		h.snapshotInitial()
	}
	return &HerdList{Herds: herds, Riverton: riverton}
}

// Get returns the herd at index id, or nil if id is out of range.
func (hl *HerdList) Get(id int) *Herd {
	if id < 0 || id >= len(hl.Herds) {
		return nil
	}
	return hl.Herds[id]
}

// Len returns the number of herds in the population.
func (hl *HerdList) Len() int {
	return len(hl.Herds)
}

// Reset restores every herd to its initial state, for the
// BeforeEachSimulation lifecycle event (spec §4.3 step 2).
func (hl *HerdList) Reset() {
	for _, h := range hl.Herds {
		h.reset()
	}
}

// CountByStatus tallies herds per DiseaseStatus, the basis of spec §8
// invariant 1 ("sum of units across disease-status buckets equals total
// unit count").
func (hl *HerdList) CountByStatus() map[DiseaseStatus]int {
	counts := make(map[DiseaseStatus]int)
	for _, h := range hl.Herds {
		counts[h.Status]++
	}
	return counts
}

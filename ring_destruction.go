package naadsm

import "log"

// RingDestructionParams configures which production types trigger a ring
// and which production types fall inside it (spec §4.6).
type RingDestructionParams struct {
	FromTypes map[int]bool
	ToTypes   map[int]bool
	Radius    float64
	Priority  int
}

// RingDestruction implements spec §4.6: on detection of a herd whose
// production type is in the configured "from" set, requests destruction
// of every eligible herd within radius belonging to the "to" set.
type RingDestruction struct {
	params RingDestructionParams
	index  SpatialIndex

	declared bool
}

func NewRingDestruction(params RingDestructionParams, index SpatialIndex) *RingDestruction {
	return &RingDestruction{params: params, index: index}
}

func (r *RingDestruction) Name() string { return "RingDestruction" }

func (r *RingDestruction) EventsListenedFor() map[Tag]bool {
	return map[Tag]bool{BeforeAnySimulations: true, Detection: true}
}

func (r *RingDestruction) Outputs() []*ReportingVariable { return nil }

func (r *RingDestruction) Run(e Event, herds *HerdList, rng *RNG) Batch {
	switch e.Tag {
	case BeforeAnySimulations:
		if r.declared {
			return nil
		}
		r.declared = true
		return Batch{{Tag: DeclarationOfDestructionReasons, Reasons: []string{ReasonRing}}}
	case Detection:
		return r.onDetection(e, herds)
	default:
		log.Fatalf(UnexpectedEventError, r.Name(), e.Tag.String())
		return nil
	}
}

func (r *RingDestruction) onDetection(e Event, herds *HerdList) Batch {
	herd := herds.Get(e.Herd)
	if herd == nil || !r.params.FromTypes[herd.ProductionType] {
		return nil
	}
	var out Batch
	for _, id := range r.index.Within(herd.X, herd.Y, r.params.Radius) {
		if id == herd.ID {
			continue
		}
		target := herds.Get(id)
		if target == nil || !r.params.ToTypes[target.ProductionType] {
			continue
		}
		if target.Unaffectable(herds.Riverton) {
			continue
		}
		out = append(out, Event{
			Tag: RequestForDestruction, Day: e.Day, Herd: id,
			Reason: ReasonRing, Priority: r.params.Priority,
		})
	}
	return out
}

func (r *RingDestruction) Reset() { r.declared = false }

func (r *RingDestruction) HasPendingActions() bool    { return false }
func (r *RingDestruction) HasPendingInfections() bool { return false }

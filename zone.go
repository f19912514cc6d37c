package naadsm

import "log"

// FocusPoint is a point that seeds a regulatory zone (spec glossary:
// "Zone focus"). The actual polygon reshaping around a set of focus
// points is GIS work this core treats as an external collaborator (spec
// §1); this type only carries the data a RequestForZoneFocus event needs
// to hand off to that collaborator.
type FocusPoint struct {
	HerdID int
	Day    int
	Reason string
}

// ZoneFocusModule accumulates RequestForZoneFocus points during a day and
// moves them from pending to active at Midnight, per spec §4.4's "takes
// effect at next Midnight" rule. It does not reshape any geometry itself
// -- that is the spatial/GIS collaborator's job, reached through Active()
// -- it only owns the timing contract of when a focus point becomes
// visible to that collaborator.
type ZoneFocusModule struct {
	pending []FocusPoint
	active  []FocusPoint
}

// NewZoneFocusModule returns an empty zone-focus tracker.
func NewZoneFocusModule() *ZoneFocusModule {
	return &ZoneFocusModule{}
}

func (z *ZoneFocusModule) Name() string { return "ZoneFocus" }

func (z *ZoneFocusModule) EventsListenedFor() map[Tag]bool {
	return map[Tag]bool{RequestForZoneFocus: true, Midnight: true}
}

func (z *ZoneFocusModule) Outputs() []*ReportingVariable { return nil }

func (z *ZoneFocusModule) Run(e Event, herds *HerdList, rng *RNG) Batch {
	switch e.Tag {
	case RequestForZoneFocus:
		z.pending = append(z.pending, FocusPoint{HerdID: e.Herd, Day: e.Day, Reason: e.Reason})
	case Midnight:
		z.active = append(z.active, z.pending...)
		z.pending = z.pending[:0]
	default:
		log.Fatalf(UnexpectedEventError, z.Name(), e.Tag.String())
	}
	return nil
}

func (z *ZoneFocusModule) Reset() {
	z.pending = nil
	z.active = nil
}

func (z *ZoneFocusModule) HasPendingActions() bool     { return len(z.pending) > 0 }
func (z *ZoneFocusModule) HasPendingInfections() bool  { return false }

// Active returns every focus point that has taken effect (i.e. that
// survived at least one Midnight), for a spatial/GIS collaborator to
// reshape zones around.
func (z *ZoneFocusModule) Active() []FocusPoint {
	return z.active
}

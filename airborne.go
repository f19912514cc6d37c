package naadsm

import (
	"log"
	"math"
)

// DelayDistribution samples an integer day-delay for airborne exposure,
// per spec §4.5. The probability-distribution library itself is treated
// as an external collaborator (spec §1); this interface is the narrow
// seam this module consumes it through.
type DelayDistribution interface {
	Sample(rng *RNG) int
}

// ConstantDelay is the simplest DelayDistribution: every draw returns the
// same number of days.
type ConstantDelay int

func (d ConstantDelay) Sample(rng *RNG) int { return int(d) }

// AirborneParams is one (source production type, target production type)
// parameter block from spec §4.5.
type AirborneParams struct {
	ProbSpread1km float64
	WindDirStart  float64 // degrees, normalized to [0,360)
	WindDirEnd    float64
	MaxSpread     float64 // km; <= 1 means the block is disabled
	Delay         DelayDistribution
}

// enabled reports whether this param block is active (spec §7: "max_spread
// ≤ 1 → module disabled").
func (p AirborneParams) enabled() bool {
	return p.MaxSpread > 1 && p.ProbSpread1km > 0
}

// windMatches reports whether heading (degrees, [0,360)) falls within
// [start,end], handling the 0°-crossing arc (start > end means the arc
// wraps through 0°).
func windMatches(heading, start, end float64) bool {
	heading = normalizeDegrees(heading)
	start = normalizeDegrees(start)
	end = normalizeDegrees(end)
	if start <= end {
		return heading >= start && heading <= end
	}
	return heading >= start || heading <= end
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// headingDegrees returns the compass heading in degrees from (x1,y1) to
// (x2,y2), 0 = north, increasing clockwise.
func headingDegrees(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	return normalizeDegrees(deg)
}

// AirborneSpread is the spatial-kernel exposure generator described in
// spec §4.5: a precomputed herd-size CDF factor, a per-(source,target)
// production-type parameter table, a spatial index for radius queries,
// and a delayed-infection rotating buffer.
type AirborneSpread struct {
	params map[[2]int]AirborneParams
	index  SpatialIndex

	herdSizeFactor []float64
	maxRadius      float64

	ring            *DelayRing
	pendingInfect   int
	riverton        bool
}

// NewAirborneSpread builds the module with the given per-type-pair
// parameter table and spatial index. Call Precompute once herds are
// loaded (herd sizes feed the herd-size-factor CDF).
func NewAirborneSpread(params map[[2]int]AirborneParams, index SpatialIndex, riverton bool) *AirborneSpread {
	a := &AirborneSpread{
		params:   params,
		index:    index,
		ring:     NewDelayRing(8),
		riverton: riverton,
	}
	for _, p := range params {
		if p.enabled() && p.MaxSpread > a.maxRadius {
			a.maxRadius = p.MaxSpread
		}
	}
	return a
}

// Precompute builds herd_size_factor[i] = 2*CDF_sizes(size(i)) (spec
// §4.5) from the current herd population, and (re)builds the spatial
// index over it.
func (a *AirborneSpread) Precompute(herds *HerdList) {
	n := herds.Len()
	sizes := make([]int, n)
	for i, h := range herds.Herds {
		sizes[i] = h.Size
	}
	sorted := append([]int(nil), sizes...)
	insertionSortInts(sorted)

	a.herdSizeFactor = make([]float64, n)
	for i, sz := range sizes {
		a.herdSizeFactor[i] = 2 * empiricalCDF(sorted, sz)
	}
	a.index.Build(herds.Herds)
}

func insertionSortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// empiricalCDF returns the fraction of values in sorted (ascending) that
// are <= x.
func empiricalCDF(sorted []int, x int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	count := 0
	for _, v := range sorted {
		if v <= x {
			count++
		} else {
			break
		}
	}
	return float64(count) / float64(len(sorted))
}

// MaxQueryRadius bounds the spatial-index query radius this module will
// ever issue: the largest configured max_spread across all enabled
// parameter blocks, plus a small epsilon to include herds exactly at the
// boundary.
func (a *AirborneSpread) MaxQueryRadius() float64 {
	if a.maxRadius == 0 {
		return 0
	}
	return a.maxRadius + 1e-6
}

func (a *AirborneSpread) Name() string { return "AirborneSpread" }

func (a *AirborneSpread) EventsListenedFor() map[Tag]bool {
	return map[Tag]bool{NewDay: true}
}

func (a *AirborneSpread) Outputs() []*ReportingVariable { return nil }

func (a *AirborneSpread) Run(e Event, herds *HerdList, rng *RNG) Batch {
	if e.Tag != NewDay {
		log.Fatalf(UnexpectedEventError, a.Name(), e.Tag.String())
		return nil
	}
	var out Batch

	due := a.ring.Advance()
	for _, ev := range due {
		if ev.Day != e.Day {
			log.Fatalf(DelayRingDayMismatchError, ev.Day, e.Day)
		}
		if ev.Tag == AttemptToInfect {
			a.pendingInfect--
		}
		out = append(out, ev)
	}

	radius := a.MaxQueryRadius()
	if radius <= 0 {
		return out
	}

	for _, src := range herds.Herds {
		if !src.Status.Infectious() {
			continue
		}
		candidates := a.index.Within(src.X, src.Y, radius)
		for _, bi := range candidates {
			target := herds.Get(bi)
			if target == nil || target.ID == src.ID {
				continue
			}
			params, ok := a.params[[2]int{src.ProductionType, target.ProductionType}]
			if !ok || !params.enabled() {
				continue
			}
			if target.Unaffectable(a.riverton) {
				continue
			}
			heading := headingDegrees(src.X, src.Y, target.X, target.Y)
			if !windMatches(heading, params.WindDirStart, params.WindDirEnd) {
				continue
			}
			d := distance(src.X, src.Y, target.X, target.Y)
			if d > params.MaxSpread {
				continue
			}
			distanceFactor := (params.MaxSpread - d) / (params.MaxSpread - 1)
			if distanceFactor < 0 {
				distanceFactor = 0
			}
			p := a.herdSizeFactor[src.ID] * src.Prevalence * distanceFactor * params.ProbSpread1km * a.herdSizeFactor[target.ID]
			if p > 1 {
				p = 1
			}
			if p < 0 {
				p = 0
			}
			r := rng.Float64()
			adequate := r < p

			delay := 0
			if params.Delay != nil {
				delay = params.Delay.Sample(rng)
			}

			exposure := Event{
				Tag: Exposure, Day: e.Day, Source: src.ID, Target: target.ID,
				ContactType: AirborneSpreadContact, Traceable: false, Adequate: adequate,
			}
			a.route(exposure, delay, &out)

			if adequate && target.Status == Susceptible {
				infect := Event{
					Tag: AttemptToInfect, Day: e.Day, Source: src.ID, Target: target.ID,
					ContactType: AirborneSpreadContact, Traceable: false, Adequate: true,
				}
				a.pendingInfect++
				a.route(infect, delay, &out)
			}
		}
	}
	return out
}

// route sends ev directly to the outgoing batch if delay <= 0, otherwise
// buffers it in the ring at the configured delay (spec §4.5 step 2,
// "Always emit an Exposure ... If k <= 0 it goes to the outgoing queue;
// else it is buffered").
func (a *AirborneSpread) route(ev Event, delay int, out *Batch) {
	if delay <= 0 {
		ev.Day += delay
		*out = append(*out, ev)
		return
	}
	ev.Day += delay
	// Run has already called Advance, so the ring's head is tomorrow's
	// slot: an event due `delay` days from today goes delay-1 slots on.
	a.ring.Schedule(delay-1, ev)
}

func distance(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	return math.Sqrt(dx*dx + dy*dy)
}

func (a *AirborneSpread) Reset() {
	a.ring.Reset()
	a.pendingInfect = 0
}

func (a *AirborneSpread) HasPendingActions() bool { return false }

func (a *AirborneSpread) HasPendingInfections() bool { return a.pendingInfect > 0 }

package naadsm

import "container/list"

// TimeWaitingPosition is where the "time-waiting" axis sits in a
// priority-queue set's configured priority order (spec §4.4).
type TimeWaitingPosition int

const (
	TimeWaitingFirst TimeWaitingPosition = iota + 1
	TimeWaitingSecond
	TimeWaitingThird
)

// request is one entry in a priority-queue sub-queue: a pending
// destruction or vaccination commitment for a single herd.
type request struct {
	herdID            int
	reason            string
	priority          int // 1-based sub-queue number
	enqueueDay        int // day this specific request/replacement was submitted
	dayCommitmentMade int // day the herd first received a commitment
	cancelOnDetection bool
	minDaysBeforeNext int
}

// queueLocation is a non-owning back-reference into a PrioritySet: which
// sub-queue a herd's request lives in, and the linked-list handle needed
// to remove it in O(1) without disturbing any other herd's back-reference
// (DESIGN NOTES: "never with an owning pointer ... a doubly-linked-list
// handle kept alongside the queue node").
type queueLocation struct {
	subQueue int
	elem     *list.Element
}

// PrioritySet is the ordered array of FIFO sub-queues described in spec
// §3/§4.4: one sub-queue per (production-type, reason) pair, dispatched
// in one of three orders depending on where "time-waiting" sits in the
// configured priority permutation.
type PrioritySet struct {
	numProductionTypes int
	numReasons         int
	prodOuter          bool // true: production-type is the outer ("slow") axis
	timeWaiting        TimeWaitingPosition

	subQueues []*list.List
}

// NewPrioritySet builds a priority-queue set with
// numProductionTypes*numReasons sub-queues.
func NewPrioritySet(numProductionTypes, numReasons int, prodOuter bool, tw TimeWaitingPosition) *PrioritySet {
	n := numProductionTypes * numReasons
	if n == 0 {
		n = 1
	}
	subQueues := make([]*list.List, n)
	for i := range subQueues {
		subQueues[i] = list.New()
	}
	return &PrioritySet{
		numProductionTypes: numProductionTypes,
		numReasons:         numReasons,
		prodOuter:          prodOuter,
		timeWaiting:        tw,
		subQueues:          subQueues,
	}
}

// N returns the number of sub-queues.
func (p *PrioritySet) N() int {
	return len(p.subQueues)
}

// blockSize is the size of one "block" for the time-waiting-2nd strategy:
// the span of sub-queues sharing the same outer-axis value.
func (p *PrioritySet) blockSize() int {
	if p.prodOuter {
		if p.numReasons == 0 {
			return 1
		}
		return p.numReasons
	}
	if p.numProductionTypes == 0 {
		return 1
	}
	return p.numProductionTypes
}

// IndexFor computes the 0-based sub-queue index for a (production-type,
// reason) pair given the configured outer/inner axis order (spec §4.4
// "The N sub-queues are numbered 0..N-1 in lexicographic order of the two
// slow axes").
func (p *PrioritySet) IndexFor(productionType, reasonIdx int) int {
	if p.prodOuter {
		return productionType*p.blockSize() + reasonIdx
	}
	return reasonIdx*p.blockSize() + productionType
}

// SubQueueFor clamps a 1-based event-supplied priority into a valid 0-based
// sub-queue index. The original engine indexes destruction/vaccination
// sub-queues directly off the request's priority field
// (resources-and-implementation-of-controls-model.c:
// pending_destructions[event->priority - 1]) rather than recomputing it from
// production-type/reason, so priority is the single source of truth for
// where a request lands; production-type and reason only label the request.
func (p *PrioritySet) SubQueueFor(priority int) int {
	idx := priority - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.subQueues) {
		idx = len(p.subQueues) - 1
	}
	return idx
}

// Push enqueues req onto the given 0-based sub-queue index and returns the
// resulting back-reference.
func (p *PrioritySet) Push(subQueue int, req request) *queueLocation {
	elem := p.subQueues[subQueue].PushBack(req)
	return &queueLocation{subQueue: subQueue, elem: elem}
}

// Remove deletes the request at loc in O(1). Safe to call with a nil loc.
func (p *PrioritySet) Remove(loc *queueLocation) {
	if loc == nil {
		return
	}
	p.subQueues[loc.subQueue].Remove(loc.elem)
}

// At returns the request value stored at loc.
func (p *PrioritySet) At(loc *queueLocation) request {
	return loc.elem.Value.(request)
}

// PopNext removes and returns the next request to act on, per the
// configured time-waiting strategy (spec §4.4's three dispatch
// strategies). Returns ok=false when every sub-queue is empty. The
// returned *list.Element is the same pointer handed out in the
// queueLocation at Push time, so a caller tracking several outstanding
// back-references for one herd (vaccination) can identify which one was
// just popped by pointer equality.
func (p *PrioritySet) PopNext() (req request, elem *list.Element, ok bool) {
	switch p.timeWaiting {
	case TimeWaitingFirst:
		return p.popGlobalOldest()
	case TimeWaitingSecond:
		return p.popBlockOldest()
	default: // TimeWaitingThird
		return p.popStrictOrder()
	}
}

func (p *PrioritySet) popGlobalOldest() (request, *list.Element, bool) {
	bestIdx := -1
	var bestDay int
	for i, q := range p.subQueues {
		if q.Len() == 0 {
			continue
		}
		day := q.Front().Value.(request).enqueueDay
		if bestIdx == -1 || day < bestDay {
			bestIdx, bestDay = i, day
		}
	}
	if bestIdx == -1 {
		return request{}, nil, false
	}
	req, elem := p.popFront(bestIdx)
	return req, elem, true
}

func (p *PrioritySet) popBlockOldest() (request, *list.Element, bool) {
	blockSize := p.blockSize()
	n := len(p.subQueues)
	for start := 0; start < n; start += blockSize {
		end := start + blockSize
		if end > n {
			end = n
		}
		bestIdx := -1
		var bestDay int
		for i := start; i < end; i++ {
			if p.subQueues[i].Len() == 0 {
				continue
			}
			day := p.subQueues[i].Front().Value.(request).enqueueDay
			if bestIdx == -1 || day < bestDay {
				bestIdx, bestDay = i, day
			}
		}
		if bestIdx != -1 {
			req, elem := p.popFront(bestIdx)
			return req, elem, true
		}
	}
	return request{}, nil, false
}

func (p *PrioritySet) popStrictOrder() (request, *list.Element, bool) {
	for i, q := range p.subQueues {
		if q.Len() > 0 {
			req, elem := p.popFront(i)
			return req, elem, true
		}
	}
	return request{}, nil, false
}

func (p *PrioritySet) popFront(i int) (request, *list.Element) {
	front := p.subQueues[i].Front()
	p.subQueues[i].Remove(front)
	return front.Value.(request), front
}

// ShouldReplace implements spec §4.4's "replace-existing-request rule",
// used only for destruction requests (vaccination keeps every request).
// Numerically lower priority means higher logical priority throughout.
func (p *PrioritySet) ShouldReplace(existing, candidate request) bool {
	switch p.timeWaiting {
	case TimeWaitingFirst:
		return existing.enqueueDay == candidate.enqueueDay && candidate.priority < existing.priority
	case TimeWaitingThird:
		return candidate.priority < existing.priority
	default: // TimeWaitingSecond
		blockSize := p.blockSize()
		existingBlock := (existing.priority - 1) / blockSize
		candidateBlock := (candidate.priority - 1) / blockSize
		if candidateBlock < existingBlock {
			return true
		}
		return existing.enqueueDay == candidate.enqueueDay && candidate.priority < existing.priority
	}
}

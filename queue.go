package naadsm

// EventQueue is the two-wave event queue described in spec §4.1. Every
// event produced while current is draining lands in next; only once
// current is exhausted do the waves swap, so all derived effects of one
// wave are held back until the wave that produced them has fully settled.
// This is the engine's cascade-settling mechanism and its sole source of
// randomized ordering.
type EventQueue struct {
	current []Event
	next    []Event
}

// NewEventQueue returns an empty two-wave queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Enqueue places e into next. O(1).
func (q *EventQueue) Enqueue(e Event) {
	q.next = append(q.next, e)
}

// EnqueueBatch enqueues every event in b into next, in order. Order among
// a single Run call's derived events does not matter: the queue's own
// Dequeue randomizes within a wave regardless of insertion order.
func (q *EventQueue) EnqueueBatch(b Batch) {
	for _, e := range b {
		q.Enqueue(e)
	}
}

// Dequeue returns a uniformly-chosen event from current, removing it via
// swap-remove (order within a wave is immaterial, so swap-remove avoids an
// O(n) shift). If current is empty, current and next are swapped first;
// if current is still empty after the swap, Dequeue returns ok=false.
func (q *EventQueue) Dequeue(rng *RNG) (e Event, ok bool) {
	if len(q.current) == 0 {
		q.current, q.next = q.next, q.current[:0]
		if len(q.current) == 0 {
			return Event{}, false
		}
	}
	i := rng.Intn(len(q.current))
	e = q.current[i]
	last := len(q.current) - 1
	q.current[i] = q.current[last]
	q.current = q.current[:last]
	return e, true
}

// IsEmpty reports whether both waves are empty.
func (q *EventQueue) IsEmpty() bool {
	return len(q.current) == 0 && len(q.next) == 0
}

// Drain pumps d against q until IsEmpty is true. It is the mechanism
// behind spec §4.3 step 3a: events generated in response to the events of
// wave W land in wave W+1 and are not observed until wave W drains.
func (q *EventQueue) Drain(d *Dispatcher, rng *RNG) {
	for {
		e, ok := q.Dequeue(rng)
		if !ok {
			return
		}
		d.Dispatch(e, q, rng)
	}
}

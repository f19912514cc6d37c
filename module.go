package naadsm

import "log"

// Module is the uniform contract every domain module satisfies (spec
// §4.2). The engine holds a flat, ordered list of modules and dispatches
// each dequeued event to every subscriber whose EventsListenedFor
// contains the event's tag. A module must not mutate the Event it
// receives; derived effects are returned as a Batch for the dispatcher to
// enqueue into the next wave.
type Module interface {
	// Name identifies the module in logs and fatal-error messages.
	Name() string
	// EventsListenedFor is the fixed set of tags this module subscribes
	// to. It never changes at runtime (spec: "No dynamic
	// subscription/unsubscription at runtime").
	EventsListenedFor() map[Tag]bool
	// Outputs returns the reporting-variable handles this module
	// publishes.
	Outputs() []*ReportingVariable
	// Run handles one event, given read/write access to the shared herd
	// list and RNG, and returns any derived events.
	Run(e Event, herds *HerdList, rng *RNG) Batch
	// Reset clears all per-iteration internal state, called at
	// BeforeEachSimulation.
	Reset()
	// HasPendingActions reports whether the module still has queued
	// destruction/vaccination-type work that could still produce events.
	HasPendingActions() bool
	// HasPendingInfections reports whether the module still has buffered
	// future infection-causing events (e.g. the airborne delay ring).
	HasPendingInfections() bool
}

// Registry holds modules in registration order. Registration order is
// significant (spec §4.2 "Order among subscribers is defined by module
// registration order") and is preserved by always appending.
type Registry struct {
	modules []Module
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends m to the registry. Registration order determines
// dispatch order for every event tag m subscribes to.
func (r *Registry) Register(m Module) {
	r.modules = append(r.modules, m)
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []Module {
	return r.modules
}

// ResetAll calls Reset on every registered module, for the
// BeforeEachSimulation lifecycle event.
func (r *Registry) ResetAll() {
	for _, m := range r.modules {
		m.Reset()
	}
}

// AnyPendingActions reports whether any module has pending
// destruction/vaccination actions, feeding the termination check in spec
// §4.3.
func (r *Registry) AnyPendingActions() bool {
	for _, m := range r.modules {
		if m.HasPendingActions() {
			return true
		}
	}
	return false
}

// AnyPendingInfections reports whether any module has pending buffered
// infections, feeding the termination check in spec §4.3.
func (r *Registry) AnyPendingInfections() bool {
	for _, m := range r.modules {
		if m.HasPendingInfections() {
			return true
		}
	}
	return false
}

// Dispatcher fans an Event out to every subscribed module in registration
// order and enqueues each module's derived events into the next wave
// (spec §4.2 "Publish/subscribe fan-out").
type Dispatcher struct {
	registry *Registry
	herds    *HerdList
}

// NewDispatcher builds a Dispatcher over registry, bound to the shared
// herd list every module needs read/write access to.
func NewDispatcher(registry *Registry, herds *HerdList) *Dispatcher {
	return &Dispatcher{registry: registry, herds: herds}
}

// Dispatch delivers e to every subscribed module and enqueues the
// resulting derived events into q's next wave. It enforces the
// EndOfDay-never-emits invariant (DESIGN NOTES' open question, resolved
// in DESIGN.md): any module that returns a non-empty Batch in response to
// EndOfDay is a fatal programmer error.
func (d *Dispatcher) Dispatch(e Event, q *EventQueue, rng *RNG) {
	for _, m := range d.registry.modules {
		if !m.EventsListenedFor()[e.Tag] {
			continue
		}
		derived := m.Run(e, d.herds, rng)
		if e.Tag == EndOfDay && len(derived) > 0 {
			log.Fatalf(EndOfDayEmitError, m.Name(), e.Day)
		}
		q.EnqueueBatch(derived)
	}
}

package naadsm

// Error message format constants used for assertion-style fatal errors
// and test failures, following the same convention throughout the
// package: one %-format string per distinct failure shape, compared with
// fmt.Errorf/fmt.Sprintf rather than ad hoc string literals scattered
// through call sites.
const (
	// UnequalIntParameterError is used in tests comparing expected vs
	// actual integer values.
	UnequalIntParameterError = "expected %s %d, instead got %d"
	// UnequalFloatParameterError is used in tests comparing expected vs
	// actual float values.
	UnequalFloatParameterError = "expected %s %f, instead got %f"
	// UnequalStringParameterError is used in tests comparing expected vs
	// actual string values.
	UnequalStringParameterError = "expected %s %s, instead got %s"
	// UnequalBoolParameterError is used in tests comparing expected vs
	// actual boolean values.
	UnequalBoolParameterError = "expected %s %t, instead got %t"

	// InvalidFloatParameterError reports a parameter value that failed
	// validation.
	InvalidFloatParameterError = "invalid %s %f: %s"
	// InvalidIntParameterError reports a parameter value that failed
	// validation.
	InvalidIntParameterError = "invalid %s %d: %s"
	// InvalidStringParameterError reports a parameter value that failed
	// validation.
	InvalidStringParameterError = "invalid %s %q: %s"

	// UnrecognizedKeywordError reports a scenario keyword that did not
	// match any of the recognized values for a field.
	UnrecognizedKeywordError = "%q is not a recognized value for %s"

	// DuplicateEnqueueError is a fatal invariant violation: a herd was
	// enqueued for destruction while already occupying a destruction
	// sub-queue.
	DuplicateEnqueueError = "herd %d already has an active destruction request in sub-queue %d"
	// AlreadyDestroyedError is a fatal invariant violation outside the
	// Riverton variant: a herd was destroyed twice within one iteration.
	AlreadyDestroyedError = "herd %d was already destroyed on day %d"
	// UnexpectedEventError is a fatal invariant violation: a module's Run
	// was invoked for an event tag that is not in its EventsListenedFor
	// set.
	UnexpectedEventError = "module %s received event %s which it does not listen for"
	// EndOfDayEmitError is a fatal invariant violation: a module attempted
	// to emit events while handling EndOfDay.
	EndOfDayEmitError = "module %s emitted events while handling EndOfDay(day=%d); no module may derive events from EndOfDay"
	// DelayRingDayMismatchError is a fatal invariant violation: an event
	// drained from the delay ring does not carry the current day.
	DelayRingDayMismatchError = "delay ring drained an event for day %d on day %d"
)

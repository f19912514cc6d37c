package naadsm

// Frequency is how often a ReportingVariable is written to the output
// table (spec §3 "Reporting variable").
type Frequency int

const (
	FrequencyNever Frequency = iota
	FrequencyOnce
	FrequencyDaily
	FrequencyWeekly
	FrequencyMonthly
	FrequencyPerIteration
)

// ValueKind is the type carried by a ReportValue.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindReal
	KindGroup
)

// ReportValue is the typed payload of one reporting variable on one day.
// Only the field matching Kind is meaningful.
type ReportValue struct {
	Kind  ValueKind
	Int   int
	Real  float64
	Group map[string]float64
}

// IntValue constructs an integer ReportValue.
func IntValue(v int) ReportValue { return ReportValue{Kind: KindInt, Int: v} }

// RealValue constructs a real ReportValue.
func RealValue(v float64) ReportValue { return ReportValue{Kind: KindReal, Real: v} }

// GroupValue constructs a group-of-named-values ReportValue.
func GroupValue(v map[string]float64) ReportValue { return ReportValue{Kind: KindGroup, Group: v} }

// ReportingVariable is a named, typed output accumulator. It is owned by
// the module that publishes it (spec §3): other modules, and the output
// writer, may read Value but must never mutate it directly -- mutation
// happens only through the owning module's event handlers.
type ReportingVariable struct {
	Name      string
	Frequency Frequency
	Value     ReportValue
}

// Set overwrites the variable's current value. Called only by the owning
// module.
func (v *ReportingVariable) Set(val ReportValue) {
	v.Value = val
}

// OutputSet collects every ReportingVariable a module publishes, in
// declaration order, for DeclarationOfOutputs (spec §4.8: "On
// BeforeAnySimulations: publish all output variables with non-never
// frequencies via DeclarationOfOutputs").
type OutputSet struct {
	vars []*ReportingVariable
}

// Declare registers a new output variable and returns it for the owning
// module to retain and mutate.
func (o *OutputSet) Declare(name string, freq Frequency) *ReportingVariable {
	v := &ReportingVariable{Name: name, Frequency: freq}
	o.vars = append(o.vars, v)
	return v
}

// Vars returns every declared variable with a non-never frequency, in
// declaration order.
func (o *OutputSet) Vars() []*ReportingVariable {
	out := make([]*ReportingVariable, 0, len(o.vars))
	for _, v := range o.vars {
		if v.Frequency != FrequencyNever {
			out = append(out, v)
		}
	}
	return out
}

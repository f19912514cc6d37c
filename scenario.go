package naadsm

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ScenarioConfig is the top-level TOML configuration for one scenario,
// mirroring the teacher's EvoEpiConfig/SingleHostConfig split into typed
// sub-sections per concern.
type ScenarioConfig struct {
	Simulation      simulationConfig       `toml:"simulation"`
	ProductionTypes []productionTypeConfig `toml:"production_type"`
	Scheduler       schedulerConfig        `toml:"scheduler"`
	Airborne        []airborneConfig       `toml:"airborne_spread"`
	RingDestruction *ringDestructionConfig `toml:"ring_destruction"`
	TraceExam       []traceExamConfig      `toml:"trace_exam"`
	TraceZoneFocus  []traceZoneFocusConfig `toml:"trace_zone_focus"`
	TraceBack       []traceBackConfig      `toml:"trace_back_destruction"`

	validated bool
}

type simulationConfig struct {
	MaxDays                  int      `toml:"max_days"`
	NumIterations            int      `toml:"num_iterations"`
	RNGSeed                  int64    `toml:"rng_seed"`
	FixedRandomVal           *float64 `toml:"fixed_random_value"`
	Riverton                 bool     `toml:"riverton"`
	Threads                  int      `toml:"threads"`
	OutputPath               string   `toml:"output_path"`
	OutputFormat             string   `toml:"output_format"` // "csv" or "sqlite"
	StopOnFirstDetection     bool     `toml:"stop_on_first_detection"`
	StopOnDiseaseExtinction  bool     `toml:"stop_on_disease_extinction"`
}

type productionTypeConfig struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

type capacityPointConfig struct {
	Day   int `toml:"day"`
	Value int `toml:"value"`
}

type schedulerConfig struct {
	ProgramDelay         int                   `toml:"program_delay"`
	VaccinationThreshold int                   `toml:"vaccination_threshold"`
	DestructionCapacity  []capacityPointConfig `toml:"destruction_capacity"`
	VaccinationCapacity  []capacityPointConfig `toml:"vaccination_capacity"`
	DestructionProdOuter bool                  `toml:"destruction_production_type_outer"`
	DestructionTimeWait  string                `toml:"destruction_time_waiting"` // "first", "second", "third"
	VaccinationProdOuter bool                  `toml:"vaccination_production_type_outer"`
	VaccinationTimeWait  string                `toml:"vaccination_time_waiting"`
}

type airborneConfig struct {
	SourceType    int     `toml:"source_type"`
	TargetType    int     `toml:"target_type"`
	ProbSpread1km float64 `toml:"prob_spread_1km"`
	WindDirStart  float64 `toml:"wind_dir_start"`
	WindDirEnd    float64 `toml:"wind_dir_end"`
	MaxSpread     float64 `toml:"max_spread"`
	DelayDays     int     `toml:"delay_days"`
}

type ringDestructionConfig struct {
	FromTypes []int   `toml:"from_types"`
	ToTypes   []int   `toml:"to_types"`
	Radius    float64 `toml:"radius"`
	Priority  int     `toml:"priority"`
}

type traceExamConfig struct {
	ContactType    string `toml:"contact_type"`
	Direction      string `toml:"direction"`
	ProductionType int    `toml:"production_type"`
	Reason         string `toml:"reason"`
}

type traceZoneFocusConfig struct {
	ContactType string `toml:"contact_type"`
	Direction   string `toml:"direction"`
	Reason      string `toml:"reason"`
}

type traceBackConfig struct {
	ContactType    string `toml:"contact_type"`
	Direction      string `toml:"direction"`
	ProductionType int    `toml:"production_type"`
	Priority       int    `toml:"priority"`
	Reason         string `toml:"reason"`
}

// Validate checks the scenario for the two error classes spec §7
// distinguishes: scenario errors (abort before simulation starts) and
// parameter-value anomalies (warn and clamp/default). Anomalies are
// returned as warnings, not errors; only scenario errors are returned as
// err != nil.
func (c *ScenarioConfig) Validate() ([]string, error) {
	var warnings []string

	if c.Simulation.MaxDays <= 0 {
		return nil, errors.New("simulation.max_days must be positive")
	}
	if c.Simulation.NumIterations <= 0 {
		return nil, errors.New("simulation.num_iterations must be positive")
	}
	seen := make(map[int]bool)
	for _, pt := range c.ProductionTypes {
		if seen[pt.ID] {
			return nil, errors.Errorf(UnrecognizedKeywordError, pt.Name, "production_type.id (duplicate)")
		}
		seen[pt.ID] = true
	}

	for i := range c.Airborne {
		a := &c.Airborne[i]
		if a.MaxSpread <= 1 {
			warnings = append(warnings, "airborne_spread max_spread <= 1km: module disabled for this type pair")
		}
		if a.ProbSpread1km < 0 {
			warnings = append(warnings, "airborne_spread prob_spread_1km negative: clamped to 0")
			a.ProbSpread1km = 0
		}
	}

	if c.RingDestruction != nil && c.RingDestruction.Radius < 0 {
		warnings = append(warnings, "ring_destruction radius negative: clamped to 0")
		c.RingDestruction.Radius = 0
	}

	destTW, destDup := parseTimeWaitingChecked(c.Scheduler.DestructionTimeWait)
	if destDup {
		warnings = append(warnings, "destruction_time_waiting keyword unrecognized: defaulting to third")
	}
	_ = destTW
	vaccTW, vaccDup := parseTimeWaitingChecked(c.Scheduler.VaccinationTimeWait)
	if vaccDup {
		warnings = append(warnings, "vaccination_time_waiting keyword unrecognized: defaulting to third")
	}
	_ = vaccTW

	c.validated = true
	return warnings, nil
}

// parseTimeWaitingChecked parses the configured time-waiting keyword and
// additionally reports whether the keyword was unrecognized (then it
// defaults to third), matching the teacher's warn-and-default pattern for
// scenario anomalies. An empty keyword also means third and is not
// reported.
func parseTimeWaitingChecked(s string) (TimeWaitingPosition, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return TimeWaitingFirst, false
	case "second":
		return TimeWaitingSecond, false
	case "third", "":
		return TimeWaitingThird, false
	default:
		return TimeWaitingThird, true
	}
}

func parseContactType(s string) ContactType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct":
		return DirectContact
	case "indirect":
		return IndirectContact
	case "airborne":
		return AirborneSpreadContact
	default:
		return DirectContact
	}
}

func parseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "in") {
		return DirectionIn
	}
	return DirectionOut
}

// ScenarioLoader is the narrow seam the engine loads scenario files
// through (spec §1 treats XML/TOML scenario parsing as an external
// collaborator; this repo's own concrete implementation is TOMLScenarioLoader).
type ScenarioLoader interface {
	Load(path string) (*ScenarioConfig, error)
}

// TOMLScenarioLoader decodes a scenario file with
// github.com/BurntSushi/toml, mirroring LoadSingleHostConfig /
// EvoEpiConfig's toml.DecodeFile usage in the teacher.
type TOMLScenarioLoader struct{}

func NewTOMLScenarioLoader() *TOMLScenarioLoader { return &TOMLScenarioLoader{} }

func (l *TOMLScenarioLoader) Load(path string) (*ScenarioConfig, error) {
	cfg := new(ScenarioConfig)
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "loading scenario file %s", path)
	}
	return cfg, nil
}

// NumIterationsOrDefault returns the configured iteration count, or 1 if
// unset (so a minimal scenario file still runs once).
func (c *ScenarioConfig) NumIterationsOrDefault() int {
	if c.Simulation.NumIterations <= 0 {
		return 1
	}
	return c.Simulation.NumIterations
}

// ThreadsOrDefault returns the configured worker-pool size for running
// iterations concurrently, or 1 (sequential, single shared registry) if
// unset or non-positive.
func (c *ScenarioConfig) ThreadsOrDefault() int {
	if c.Simulation.Threads <= 0 {
		return 1
	}
	return c.Simulation.Threads
}

// buildCapacityChart converts a capacityPointConfig slice into a CapacityChart.
func buildCapacityChart(points []capacityPointConfig) *CapacityChart {
	pts := make([]CapacityPoint, len(points))
	for i, p := range points {
		pts[i] = CapacityPoint{Day: p.Day, Value: p.Value}
	}
	return NewCapacityChart(pts)
}

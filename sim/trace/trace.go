package trace

import "github.com/google/uuid"

// TraceLevel controls how much of a run is recorded.
type TraceLevel string

const (
	// TraceLevelNone keeps only the initial snapshot and the verdict.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps records every applied rule (default).
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to steps
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// RunTrace collects the step records of a single simulation run.
type RunTrace struct {
	RunID   string         `json:"run_id" yaml:"run_id"`
	Mode    string         `json:"mode" yaml:"mode"`
	Input   string         `json:"input" yaml:"input"`
	Level   TraceLevel     `json:"-" yaml:"-"`
	Initial Snapshot       `json:"initial" yaml:"initial"`
	Steps   []StepRecord   `json:"steps" yaml:"steps"`
	Verdict *VerdictRecord `json:"verdict,omitempty" yaml:"verdict,omitempty"`

	count int
}

// NewRunTrace creates a RunTrace ready for recording, tagged with a fresh run ID.
func NewRunTrace(mode, input string, level TraceLevel) *RunTrace {
	if level == "" {
		level = TraceLevelSteps
	}
	return &RunTrace{
		RunID: uuid.NewString(),
		Mode:  mode,
		Input: input,
		Level: level,
		Steps: make([]StepRecord, 0),
	}
}

// Record appends a step. The index is assigned here, starting at 1, and keeps
// counting even when the level discards the record.
func (rt *RunTrace) Record(rule RuleRecord, snap Snapshot) {
	rt.count++
	if rt.Level == TraceLevelNone {
		return
	}
	rt.Steps = append(rt.Steps, StepRecord{Index: rt.count, Rule: rule, Snapshot: snap})
}

// Len returns the number of steps recorded so far, including discarded ones.
func (rt *RunTrace) Len() int {
	return rt.count
}

// Last returns the most recent snapshot, or the initial one when no step was kept.
func (rt *RunTrace) Last() Snapshot {
	if len(rt.Steps) == 0 {
		return rt.Initial
	}
	return rt.Steps[len(rt.Steps)-1].Snapshot
}

// Finish attaches the terminating verdict record.
func (rt *RunTrace) Finish(v VerdictRecord) {
	rt.Verdict = &v
}

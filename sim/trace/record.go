// Package trace provides step-trace recording for simulation runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// RuleRecord captures the rule applied by a single step: the lookup key that
// matched and the action it produced, both in display form.
type RuleRecord struct {
	Key      string `json:"key" yaml:"key"`
	Action   string `json:"action" yaml:"action"`
	Wildcard bool   `json:"wildcard,omitempty" yaml:"wildcard,omitempty"` // matched through a `*` entry
	Epsilon  bool   `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`   // epsilon-triggered, consumed no input
}

// Snapshot captures the runtime configuration after a step.
// Only the fields relevant to the running mode are populated.
type Snapshot struct {
	State     string   `json:"state,omitempty" yaml:"state,omitempty"`
	Position  int      `json:"position" yaml:"position"`                       // input index (DFA, PDA)
	Remaining string   `json:"remaining,omitempty" yaml:"remaining,omitempty"` // unread input (DFA, PDA)
	Stack     []string `json:"stack,omitempty" yaml:"stack,omitempty"`         // bottom first (PDA)
	Tape      []string `json:"tape,omitempty" yaml:"tape,omitempty"`           // visible cells (TM)
	Head      int      `json:"head" yaml:"head"`                               // head index into Tape (TM)
	Form      string   `json:"form,omitempty" yaml:"form,omitempty"`           // sentential form (grammars)
}

// StepRecord is one entry of the linear trace.
type StepRecord struct {
	Index    int        `json:"index" yaml:"index"`
	Rule     RuleRecord `json:"rule" yaml:"rule"`
	Snapshot Snapshot   `json:"snapshot" yaml:"snapshot"`
}

// VerdictRecord terminates a trace.
type VerdictRecord struct {
	Verdict        string `json:"verdict" yaml:"verdict"`
	Reason         string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Detail         string `json:"detail,omitempty" yaml:"detail,omitempty"`
	BudgetExceeded bool   `json:"budget_exceeded" yaml:"budget_exceeded"`
	Steps          int    `json:"steps" yaml:"steps"`
}

package sim

import (
	"github.com/automata-sim/automata-sim/sim/trace"
)

// Verdict is the outcome of a run.
type Verdict string

const (
	Accepted Verdict = "ACCEPTED"
	Rejected Verdict = "REJECTED"
)

// Reason explains a REJECTED verdict (or, with BudgetExceeded, why a run was cut short).
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonNoTransition   Reason = "no matching transition"
	ReasonInputRemaining Reason = "input not fully consumed"
	ReasonNotFinal       Reason = "wrong final state"
	ReasonStepBudget     Reason = "step budget exceeded"
	ReasonNoDerivation   Reason = "no derivation found"
)

// Result is the verdict of one run together with its trace.
//
// BudgetExceeded distinguishes an inconclusive run from a genuine rejection:
// when set, the run was stopped by its step budget and Verdict only reflects
// the configuration it had reached.
type Result struct {
	Mode           Mode
	Input          string
	Verdict        Verdict
	Reason         Reason
	Detail         string
	BudgetExceeded bool
	Steps          int // applied rules (automata) or derivation length (grammars)
	Explored       int // sentential forms expanded by the grammar search
	Final          trace.Snapshot
	Output         string   // TM tape with trailing blanks trimmed
	Derivation     []string // grammar witness, start symbol to target inclusive
	Diagnostics    []string
	Trace          *trace.RunTrace
}

// Accepted reports whether the verdict is ACCEPTED.
func (r *Result) Accepted() bool {
	return r.Verdict == Accepted
}

// finish copies the verdict into the trace terminator.
func (r *Result) finish() *Result {
	if r.Trace != nil {
		r.Trace.Finish(trace.VerdictRecord{
			Verdict:        string(r.Verdict),
			Reason:         string(r.Reason),
			Detail:         r.Detail,
			BudgetExceeded: r.BudgetExceeded,
			Steps:          r.Steps,
		})
	}
	return r
}

// verdictFor maps a boolean acceptance test to a Verdict.
func verdictFor(ok bool) Verdict {
	if ok {
		return Accepted
	}
	return Rejected
}

package trace

// TraceSummary aggregates statistics from a RunTrace.
type TraceSummary struct {
	TotalSteps     int
	EpsilonSteps   int
	WildcardSteps  int
	MaxStackDepth  int
	MaxTapeLength  int
	UniqueStates   int
	StateVisits    map[string]int // state → number of steps that entered it
	Accepted       bool
	BudgetExceeded bool
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RunTrace) *TraceSummary {
	summary := &TraceSummary{
		StateVisits: make(map[string]int),
	}
	if rt == nil {
		return summary
	}

	summary.TotalSteps = rt.Len()
	summary.MaxStackDepth = len(rt.Initial.Stack)
	summary.MaxTapeLength = len(rt.Initial.Tape)
	for _, s := range rt.Steps {
		if s.Rule.Epsilon {
			summary.EpsilonSteps++
		}
		if s.Rule.Wildcard {
			summary.WildcardSteps++
		}
		if s.Snapshot.State != "" {
			summary.StateVisits[s.Snapshot.State]++
		}
		if d := len(s.Snapshot.Stack); d > summary.MaxStackDepth {
			summary.MaxStackDepth = d
		}
		if l := len(s.Snapshot.Tape); l > summary.MaxTapeLength {
			summary.MaxTapeLength = l
		}
	}
	summary.UniqueStates = len(summary.StateVisits)

	if rt.Verdict != nil {
		summary.Accepted = rt.Verdict.Verdict == "ACCEPTED"
		summary.BudgetExceeded = rt.Verdict.BudgetExceeded
	}
	return summary
}

package sim

import (
	"github.com/automata-sim/automata-sim/sim/trace"
)

// Strategy selects the grammar derivation search.
type Strategy string

const (
	// StrategyAuto runs breadth-first search and falls back to depth-first
	// search when the breadth-first budget runs out.
	StrategyAuto Strategy = "auto"
	StrategyBFS  Strategy = "bfs"
	StrategyDFS  Strategy = "dfs"
)

// ValidStrategies is the set of recognized strategy names.
var ValidStrategies = map[Strategy]bool{"": true, StrategyAuto: true, StrategyBFS: true, StrategyDFS: true}

// Pruning holds the tunable bounds of the derivation search. The bounds are
// empirical: a tight LengthFactor can reject derivations that pass through
// long intermediate forms.
type Pruning struct {
	// LengthFactor bounds the sentential form length to LengthFactor*len(target)+1.
	LengthFactor int
}

// DefaultPruning is used when no WithPruning option is given.
var DefaultPruning = Pruning{LengthFactor: 2}

// Option adjusts how a machine is built.
type Option func(*options)

type options struct {
	maxSteps   int
	strategy   Strategy
	pruning    Pruning
	traceLevel trace.TraceLevel
}

// WithMaxSteps overrides both the mode default and the definition's max_pasos.
// Zero leaves the budget unchanged.
func WithMaxSteps(n int) Option {
	return func(o *options) { o.maxSteps = n }
}

// WithStrategy selects the grammar search strategy. Ignored by automata.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithPruning replaces the grammar search pruning bounds. Ignored by automata.
func WithPruning(p Pruning) Option {
	return func(o *options) { o.pruning = p }
}

// WithTraceLevel controls how many step records runs keep.
func WithTraceLevel(level trace.TraceLevel) Option {
	return func(o *options) { o.traceLevel = level }
}

// resolveOptions applies precedence option > definition > mode default and
// validates the result.
func resolveOptions(mode Mode, cfg *MachineConfig, opts []Option) (options, error) {
	o := options{pruning: DefaultPruning}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxSteps < 0 {
		return o, configErrorf("max_pasos", "step budget must be positive, got %d", o.maxSteps)
	}
	if o.maxSteps == 0 {
		if cfg.MaxSteps != nil {
			if *cfg.MaxSteps <= 0 {
				return o, configErrorf("max_pasos", "step budget must be positive, got %d", *cfg.MaxSteps)
			}
			o.maxSteps = *cfg.MaxSteps
		} else {
			o.maxSteps = mode.DefaultMaxSteps()
		}
	}
	if !ValidStrategies[o.strategy] {
		return o, configErrorf("strategy", "unknown search strategy %q", o.strategy)
	}
	if o.strategy == "" {
		o.strategy = StrategyAuto
	}
	if o.pruning.LengthFactor < 1 {
		return o, configErrorf("pruning", "length factor must be at least 1, got %d", o.pruning.LengthFactor)
	}
	if !trace.IsValidTraceLevel(string(o.traceLevel)) {
		return o, configErrorf("trace", "unknown trace level %q", o.traceLevel)
	}
	return o, nil
}

package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/automata-sim/automata-sim/sim/trace"
)

// DFAKey is the lookup key of a DFA transition.
type DFAKey struct {
	State  string
	Symbol string // input symbol or Wildcard
}

func (k DFAKey) String() string {
	return fmt.Sprintf("δ(%s, %s)", k.State, quoteSymbol(k.Symbol))
}

// DFA is a deterministic finite automaton.
type DFA struct {
	automaton
	table map[DFAKey]string
	opts  options
}

// NewDFA validates a definition whose transitions have the shape
// {state: {symbol: next}}.
func NewDFA(cfg *MachineConfig, opts ...Option) (*DFA, error) {
	a, err := newAutomaton(cfg)
	if err != nil {
		return nil, err
	}
	o, err := resolveOptions(ModeDFA, cfg, opts)
	if err != nil {
		return nil, err
	}
	d := &DFA{automaton: a, table: make(map[DFAKey]string), opts: o}
	for _, state := range sortedRawKeys(cfg.Transitions) {
		if err := d.checkSource(state, state); err != nil {
			return nil, err
		}
		row, ok := stringMap(cfg.Transitions[state])
		if !ok {
			return nil, configErrorf("transiciones", "transitions of state %q must map symbols to states", state)
		}
		for _, sym := range sortedRawKeys(row) {
			next, ok := scalarString(row[sym])
			if !ok {
				return nil, configErrorf("transiciones", "transition δ(%s, '%s') must name a single state", state, sym)
			}
			key := DFAKey{State: state, Symbol: sym}
			if err := d.checkDestination(key.String(), next); err != nil {
				return nil, err
			}
			d.table[key] = next
		}
	}
	return d, nil
}

func (d *DFA) Mode() Mode { return ModeDFA }

// Find looks up the exact symbol first, then the wildcard.
func (d *DFA) Find(state, symbol string) (DFAKey, string, bool) {
	for _, k := range [...]DFAKey{{state, symbol}, {state, Wildcard}} {
		if next, ok := d.table[k]; ok {
			return k, next, true
		}
	}
	return DFAKey{}, "", false
}

// Run walks the input left to right. A missing transition rejects at once;
// otherwise the verdict is whether the last state is final. The input length
// bounds the run unless an explicit step budget is smaller.
func (d *DFA) Run(input string) *Result {
	symbols := splitSymbols(input)
	state := d.initial
	rt := trace.NewRunTrace(string(ModeDFA), input, d.opts.traceLevel)
	rt.Initial = trace.Snapshot{State: state, Remaining: remaining(symbols, 0)}
	res := &Result{
		Mode:        ModeDFA,
		Input:       input,
		Trace:       rt,
		Diagnostics: alphabetDiagnostics(d.alphabet, input),
	}

	for i, sym := range symbols {
		key, next, ok := d.Find(state, sym)
		if ok && d.opts.maxSteps > 0 && res.Steps >= d.opts.maxSteps {
			logrus.Warnf("DFA stopped after reaching the limit of %d steps", d.opts.maxSteps)
			res.BudgetExceeded = true
			res.Verdict = Rejected
			res.Reason = ReasonStepBudget
			res.Detail = fmt.Sprintf("%s after %d steps", ReasonInputRemaining, res.Steps)
			res.Final = trace.Snapshot{State: state, Position: i, Remaining: remaining(symbols, i)}
			return res.finish()
		}
		if !ok {
			logrus.Debugf("[step %04d] no transition for '%s' from %s", i+1, sym, state)
			res.Verdict = Rejected
			res.Reason = ReasonNoTransition
			res.Detail = fmt.Sprintf("no transition for '%s' from state %s", sym, state)
			res.Final = trace.Snapshot{State: state, Position: i, Remaining: remaining(symbols, i)}
			return res.finish()
		}
		logrus.Debugf("[step %04d] %s -> %s", i+1, key, next)
		state = next
		rt.Record(
			trace.RuleRecord{Key: key.String(), Action: next, Wildcard: key.Symbol == Wildcard && sym != Wildcard},
			trace.Snapshot{State: state, Position: i + 1, Remaining: remaining(symbols, i+1)},
		)
		res.Steps++
	}

	res.Final = trace.Snapshot{State: state, Position: len(symbols), Remaining: remaining(symbols, len(symbols))}
	res.Verdict = verdictFor(d.isFinal(state))
	if res.Verdict == Rejected {
		res.Reason = ReasonNotFinal
		res.Detail = fmt.Sprintf("state %s is not final", state)
	}
	return res.finish()
}

// Rules lists δ(state, symbol) → next in a stable order.
func (d *DFA) Rules() []string {
	keys := make([]DFAKey, 0, len(d.table))
	for k := range d.table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].State != keys[j].State {
			return keys[i].State < keys[j].State
		}
		return keys[i].Symbol < keys[j].Symbol
	})
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s → %s", k, d.table[k]))
	}
	return out
}

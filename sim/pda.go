package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/automata-sim/automata-sim/sim/trace"
)

// PDAKey is the lookup key of a PDA transition. Symbol is Epsilon for moves
// that consume no input; Top may be Wildcard.
type PDAKey struct {
	State  string
	Symbol string
	Top    string
}

func (k PDAKey) String() string {
	return fmt.Sprintf("δ(%s, %s, %s)", k.State, quoteSymbol(k.Symbol), quoteSymbol(k.Top))
}

// PDAAction is what a PDA transition does after popping the top symbol.
type PDAAction struct {
	Next  string
	Write string // symbols to push, PopAction, or an epsilon synonym
}

// pushes reports whether the write puts anything on the stack.
func (a PDAAction) pushes() bool {
	return a.Write != PopAction && !IsEpsilon(a.Write)
}

func (a PDAAction) String() string {
	w := a.Write
	if IsEpsilon(w) {
		w = "ε"
	}
	return fmt.Sprintf("(%s, %s)", a.Next, w)
}

// PDA is a pushdown automaton accepting by final state with the whole input
// consumed. Stack contents play no part in acceptance.
type PDA struct {
	automaton
	bottom string
	table  map[PDAKey]PDAAction
	opts   options
}

// NewPDA validates a definition whose transitions map "(state, symbol, top)"
// keys to [next, write] pairs.
func NewPDA(cfg *MachineConfig, opts ...Option) (*PDA, error) {
	a, err := newAutomaton(cfg)
	if err != nil {
		return nil, err
	}
	o, err := resolveOptions(ModePDA, cfg, opts)
	if err != nil {
		return nil, err
	}
	p := &PDA{automaton: a, bottom: cfg.stackBottom(), table: make(map[PDAKey]PDAAction), opts: o}
	for _, raw := range sortedRawKeys(cfg.Transitions) {
		parts, err := parseTupleKey(raw, 3)
		if err != nil {
			return nil, configErrorf("transiciones", "%v", err)
		}
		key := PDAKey{State: parts[0], Symbol: parts[1], Top: parts[2]}
		if isEpsilonKeySymbol(key.Symbol) {
			key.Symbol = Epsilon
		}
		if isEpsilonKeySymbol(key.Top) {
			key.Top = Epsilon
		}
		if err := p.checkSource(raw, key.State); err != nil {
			return nil, err
		}
		vals, ok := scalarList(cfg.Transitions[raw])
		if !ok || len(vals) != 2 {
			return nil, configErrorf("transiciones", "rule %s must map to [next_state, stack_write]", raw)
		}
		action := PDAAction{Next: vals[0], Write: vals[1]}
		if err := p.checkDestination(raw, action.Next); err != nil {
			return nil, err
		}
		if _, dup := p.table[key]; dup {
			return nil, configErrorf("transiciones", "rule %s duplicates %s", raw, key)
		}
		p.table[key] = action
	}
	return p, nil
}

func (p *PDA) Mode() Mode { return ModePDA }

// Find applies the lookup priority
//
//	(symbol, top) → (symbol, *) → (ε, top) → (ε, *)
//
// The epsilon levels are the retry after a miss on the real symbol; when
// symbol is already Epsilon only they are consulted.
func (p *PDA) Find(state, symbol, top string) (PDAKey, PDAAction, bool) {
	if symbol != Epsilon {
		if k, a, ok := p.lookup(state, symbol, top); ok {
			return k, a, true
		}
	}
	return p.lookup(state, Epsilon, top)
}

func (p *PDA) lookup(state, symbol, top string) (PDAKey, PDAAction, bool) {
	for _, k := range [...]PDAKey{{state, symbol, top}, {state, symbol, Wildcard}} {
		if a, ok := p.table[k]; ok {
			return k, a, true
		}
	}
	return PDAKey{}, PDAAction{}, false
}

// pdaRun is the runtime configuration of one PDA run.
type pdaRun struct {
	state   string
	symbols []string
	pos     int
	stack   *Stack
}

func (r *pdaRun) current() string {
	if r.pos < len(r.symbols) {
		return r.symbols[r.pos]
	}
	return Epsilon
}

func (r *pdaRun) snapshot() trace.Snapshot {
	return trace.Snapshot{
		State:     r.state,
		Position:  r.pos,
		Remaining: remaining(r.symbols, r.pos),
		Stack:     r.stack.Items(),
	}
}

// Run steps the PDA until no transition applies or the step budget is spent.
func (p *PDA) Run(input string) *Result {
	run := &pdaRun{state: p.initial, symbols: splitSymbols(input), stack: NewStack(p.bottom)}
	rt := trace.NewRunTrace(string(ModePDA), input, p.opts.traceLevel)
	rt.Initial = run.snapshot()
	res := &Result{
		Mode:        ModePDA,
		Input:       input,
		Trace:       rt,
		Diagnostics: alphabetDiagnostics(p.alphabet, input),
	}

	halted := false
	for res.Steps < p.opts.maxSteps {
		sym, top := run.current(), run.stack.Top()
		key, action, ok := p.Find(run.state, sym, top)
		if !ok {
			halted = true
			if run.pos < len(run.symbols) {
				logrus.Debugf("[step %04d] no transition from (%s, '%s', '%s')", res.Steps+1, run.state, sym, DisplaySymbol(top))
				res.Verdict = Rejected
				res.Reason = ReasonNoTransition
				res.Detail = fmt.Sprintf("no transition from (%s, '%s', '%s')", run.state, sym, DisplaySymbol(top))
				res.Final = run.snapshot()
				return res.finish()
			}
			break
		}

		run.stack.Pop()
		if action.pushes() {
			run.stack.PushString(action.Write)
		}
		run.state = action.Next
		if key.Symbol != Epsilon {
			run.pos++
		}
		res.Steps++
		logrus.Debugf("[step %04d] %s -> %s stack=%v", res.Steps, key, action, run.stack.items)
		rt.Record(trace.RuleRecord{
			Key:      key.String(),
			Action:   action.String(),
			Wildcard: key.Top == Wildcard,
			Epsilon:  key.Symbol == Epsilon,
		}, run.snapshot())
	}

	if !halted {
		// The budget ran out; it only counts as exceeded if another move was possible.
		if _, _, more := p.Find(run.state, run.current(), run.stack.Top()); more {
			res.BudgetExceeded = true
			logrus.Warnf("PDA stopped after reaching the limit of %d steps", p.opts.maxSteps)
		}
	}

	res.Final = run.snapshot()
	consumed := run.pos >= len(run.symbols)
	res.Verdict = verdictFor(p.isFinal(run.state) && consumed)
	if res.Verdict == Rejected {
		switch {
		case res.BudgetExceeded:
			res.Reason = ReasonStepBudget
			if !consumed {
				res.Detail = fmt.Sprintf("%s after %d steps", ReasonInputRemaining, res.Steps)
			} else {
				res.Detail = fmt.Sprintf("state %s is not final after %d steps", run.state, res.Steps)
			}
		case !consumed:
			res.Reason = ReasonInputRemaining
		default:
			res.Reason = ReasonNotFinal
			res.Detail = fmt.Sprintf("state %s is not final", run.state)
		}
	}
	return res.finish()
}

// Rules lists the transitions in a stable order.
func (p *PDA) Rules() []string {
	keys := make([]PDAKey, 0, len(p.table))
	for k := range p.table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].State != keys[j].State {
			return keys[i].State < keys[j].State
		}
		if keys[i].Symbol != keys[j].Symbol {
			return keys[i].Symbol < keys[j].Symbol
		}
		return keys[i].Top < keys[j].Top
	})
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s → %s", k, p.table[k]))
	}
	return out
}

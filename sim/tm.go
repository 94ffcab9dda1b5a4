package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/automata-sim/automata-sim/sim/trace"
)

// TMKey is the lookup key of a TM transition.
type TMKey struct {
	State  string
	Symbol string // tape symbol or Wildcard
}

func (k TMKey) String() string {
	return fmt.Sprintf("δ(%s, %s)", k.State, quoteSymbol(k.Symbol))
}

// TMAction writes a symbol, changes state and moves the head.
type TMAction struct {
	Next  string
	Write string
	Move  Move
}

func (a TMAction) String() string {
	return fmt.Sprintf("(%s, '%s', %s)", a.Next, a.Write, a.Move)
}

// TM is a deterministic single-tape Turing machine.
type TM struct {
	automaton
	blank string
	table map[TMKey]TMAction
	opts  options
}

// NewTM validates a definition whose transitions map "(state, symbol)" keys
// to [next, write, move] triples.
func NewTM(cfg *MachineConfig, opts ...Option) (*TM, error) {
	a, err := newAutomaton(cfg)
	if err != nil {
		return nil, err
	}
	o, err := resolveOptions(ModeTM, cfg, opts)
	if err != nil {
		return nil, err
	}
	m := &TM{automaton: a, blank: cfg.blank(), table: make(map[TMKey]TMAction), opts: o}
	for _, raw := range sortedRawKeys(cfg.Transitions) {
		parts, err := parseTupleKey(raw, 2)
		if err != nil {
			return nil, configErrorf("transiciones", "%v", err)
		}
		key := TMKey{State: parts[0], Symbol: parts[1]}
		if err := m.checkSource(raw, key.State); err != nil {
			return nil, err
		}
		vals, ok := scalarList(cfg.Transitions[raw])
		if !ok || len(vals) != 3 {
			return nil, configErrorf("transiciones", "rule %s must map to [next_state, write, move]", raw)
		}
		move, err := parseMove(vals[2])
		if err != nil {
			return nil, configErrorf("transiciones", "rule %s: %v", raw, err)
		}
		action := TMAction{Next: vals[0], Write: vals[1], Move: move}
		if err := m.checkDestination(raw, action.Next); err != nil {
			return nil, err
		}
		if _, dup := m.table[key]; dup {
			return nil, configErrorf("transiciones", "rule %s duplicates %s", raw, key)
		}
		m.table[key] = action
	}
	return m, nil
}

func (m *TM) Mode() Mode { return ModeTM }

// Find looks up the exact symbol first, then the wildcard.
func (m *TM) Find(state, symbol string) (TMKey, TMAction, bool) {
	for _, k := range [...]TMKey{{state, symbol}, {state, Wildcard}} {
		if a, ok := m.table[k]; ok {
			return k, a, true
		}
	}
	return TMKey{}, TMAction{}, false
}

func tmSnapshot(state string, tape *Tape) trace.Snapshot {
	return trace.Snapshot{State: state, Tape: tape.Visible(), Head: tape.Head()}
}

// Run steps the machine until it enters a final state, finds no rule, or
// spends its step budget.
func (m *TM) Run(input string) *Result {
	tape := NewTape(input, m.blank)
	state := m.initial
	rt := trace.NewRunTrace(string(ModeTM), input, m.opts.traceLevel)
	rt.Initial = tmSnapshot(state, tape)
	res := &Result{
		Mode:        ModeTM,
		Input:       input,
		Trace:       rt,
		Diagnostics: alphabetDiagnostics(m.alphabet, input),
	}

	halted := false
	for res.Steps < m.opts.maxSteps {
		sym := tape.Read()
		key, action, ok := m.Find(state, sym)
		if !ok {
			halted = true
			res.Detail = fmt.Sprintf("halted: no transition for (%s, '%s')", state, sym)
			logrus.Debugf("[step %04d] %s", res.Steps+1, res.Detail)
			break
		}
		tape.Write(action.Write)
		state = action.Next
		tape.Move(action.Move)
		res.Steps++
		logrus.Debugf("[step %04d] %s -> %s head=%d", res.Steps, key, action, tape.Head())
		rt.Record(trace.RuleRecord{
			Key:      key.String(),
			Action:   action.String(),
			Wildcard: key.Symbol == Wildcard && sym != Wildcard,
		}, tmSnapshot(state, tape))
		if m.isFinal(state) {
			halted = true
			res.Detail = fmt.Sprintf("final state %s reached", state)
			break
		}
	}

	if !halted {
		if _, _, more := m.Find(state, tape.Read()); more {
			res.BudgetExceeded = true
			logrus.Warnf("TM stopped after reaching the limit of %d steps", m.opts.maxSteps)
		} else {
			res.Detail = fmt.Sprintf("halted: no transition for (%s, '%s')", state, tape.Read())
		}
	}

	res.Final = tmSnapshot(state, tape)
	res.Output = tape.String()
	res.Verdict = verdictFor(m.isFinal(state))
	if res.Verdict == Rejected {
		if res.BudgetExceeded {
			res.Reason = ReasonStepBudget
			res.Detail = fmt.Sprintf("state %s is not final after %d steps", state, res.Steps)
		} else {
			res.Reason = ReasonNotFinal
		}
	}
	return res.finish()
}

// Rules lists the transitions in a stable order.
func (m *TM) Rules() []string {
	keys := make([]TMKey, 0, len(m.table))
	for k := range m.table {
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
		out = append(out, fmt.Sprintf("%s → %s", k, m.table[k]))
	}
	return out
}

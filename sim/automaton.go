package sim

import (
	"fmt"
	"sort"
	"strings"
)

// StateSet is a set of state identifiers.
type StateSet map[string]struct{}

// NewStateSet builds a set from a list of state names.
func NewStateSet(states []string) StateSet {
	set := make(StateSet, len(states))
	for _, s := range states {
		set[s] = struct{}{}
	}
	return set
}

// Contains reports whether q is in the set.
func (s StateSet) Contains(q string) bool {
	_, ok := s[q]
	return ok
}

// Sorted returns the members in lexical order.
func (s StateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for q := range s {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}

// automaton carries the parts shared by the DFA, PDA and TM variants.
type automaton struct {
	states   StateSet
	initial  string
	finals   StateSet
	alphabet []string
}

// newAutomaton validates the state declarations of a definition.
func newAutomaton(cfg *MachineConfig) (automaton, error) {
	if cfg.InitialState == "" {
		return automaton{}, configErrorf("estado_inicial", "initial state is not defined")
	}
	states := NewStateSet(cfg.States)
	if !states.Contains(cfg.InitialState) {
		return automaton{}, configErrorf("estado_inicial", "initial state %q is not in the state list", cfg.InitialState)
	}
	for _, f := range cfg.FinalStates {
		if !states.Contains(f) {
			return automaton{}, configErrorf("estados_finales", "final state %q is not in the state list", f)
		}
	}
	return automaton{
		states:   states,
		initial:  cfg.InitialState,
		finals:   NewStateSet(cfg.FinalStates),
		alphabet: cfg.Alphabet,
	}, nil
}

func (a automaton) isFinal(q string) bool {
	return a.finals.Contains(q)
}

// checkSource and checkDestination report undeclared states referenced by a rule.
func (a automaton) checkSource(rawKey, q string) error {
	if !a.states.Contains(q) {
		return configErrorf("transiciones", "state %q in rule %s is not defined", q, rawKey)
	}
	return nil
}

func (a automaton) checkDestination(rawKey, q string) error {
	if !a.states.Contains(q) {
		return configErrorf("transiciones", "destination state %q in rule %s is not defined", q, rawKey)
	}
	return nil
}

// sortedRawKeys iterates a transitions block in a stable order so that the
// first reported error does not depend on map iteration.
func sortedRawKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// remaining renders the unread part of the input, or ε when it is exhausted.
func remaining(symbols []string, pos int) string {
	if pos >= len(symbols) {
		return "ε"
	}
	return strings.Join(symbols[pos:], "")
}

// quoteSymbol formats a symbol the way rule keys are written.
func quoteSymbol(s string) string {
	return fmt.Sprintf("'%s'", DisplaySymbol(s))
}

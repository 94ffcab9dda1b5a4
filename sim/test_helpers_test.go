package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

// pair and triple build rule values the way the decoders produce them.
func pair(a, b string) []any      { return []any{a, b} }
func triple(a, b, c string) []any { return []any{a, b, c} }

// aPlusDFA accepts a+ over {a}: δ(q0,a)=q1, δ(q1,a)=q1, final {q1}.
func aPlusDFA() *MachineConfig {
	return &MachineConfig{
		Mode:         string(ModeDFA),
		Alphabet:     []string{"a"},
		States:       []string{"q0", "q1"},
		InitialState: "q0",
		FinalStates:  []string{"q1"},
		Transitions: map[string]any{
			"q0": map[string]any{"a": "q1"},
			"q1": map[string]any{"a": "q1"},
		},
	}
}

// parenthesesPDA is the balanced-parentheses PDA that moves to the accepting
// state q1 on an epsilon move once only the bottom marker is left.
func parenthesesPDA() *MachineConfig {
	return &MachineConfig{
		Mode:         string(ModePDA),
		Alphabet:     []string{"(", ")"},
		States:       []string{"q0", "q1"},
		InitialState: "q0",
		FinalStates:  []string{"q1"},
		StackBottom:  "Z",
		Transitions: map[string]any{
			"(q0, '(', 'Z')": pair("q0", "(Z"),
			"(q0, '(', '(')": pair("q0", "(("),
			"(q0, ')', '(')": pair("q0", "pop"),
			"(q0, 'ε', 'Z')": pair("q1", "Z"),
		},
	}
}

// incrementTM adds one to a binary number: scan right, then carry leftwards.
func incrementTM() *MachineConfig {
	return &MachineConfig{
		Mode:         string(ModeTM),
		Alphabet:     []string{"0", "1"},
		States:       []string{"q0", "q1", "q2"},
		InitialState: "q0",
		FinalStates:  []string{"q2"},
		Transitions: map[string]any{
			"(q0, '0')": triple("q0", "0", "R"),
			"(q0, '1')": triple("q0", "1", "R"),
			"(q0, '_')": triple("q1", "_", "L"),
			"(q1, '1')": triple("q1", "0", "L"),
			"(q1, '0')": triple("q2", "1", "S"),
			"(q1, '_')": triple("q2", "1", "S"),
		},
	}
}

// grammarConfig builds a grammar definition from head → alternatives.
func grammarConfig(mode Mode, start string, prods map[string][]string) *MachineConfig {
	p := make(map[string]any, len(prods))
	for head, alts := range prods {
		list := make([]any, len(alts))
		for i, a := range alts {
			list[i] = a
		}
		p[head] = list
	}
	return &MachineConfig{Mode: string(mode), StartSymbol: start, Productions: p}
}

// mustMachine builds cfg and fails the test on a configuration error.
func mustMachine(t *testing.T, cfg *MachineConfig, opts ...Option) Machine {
	t.Helper()
	m, err := NewMachine(cfg, opts...)
	require.NoError(t, err)
	return m
}

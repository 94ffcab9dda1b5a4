package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDFA_APlus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		verdict Verdict
		reason  Reason
	}{
		{"two a's accepted", "aa", Accepted, ReasonNone},
		{"unknown symbol rejected", "b", Rejected, ReasonNoTransition},
		{"empty input rejected", "", Rejected, ReasonNotFinal},
	}
	m := mustMachine(t, aPlusDFA())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Run(tt.input)
			assert.Equal(t, tt.verdict, res.Verdict)
			assert.Equal(t, tt.reason, res.Reason)
			assert.False(t, res.BudgetExceeded)
		})
	}
}

func TestDFA_NoTransition_ReportsSymbolAndState(t *testing.T) {
	// GIVEN the a+ DFA
	m := mustMachine(t, aPlusDFA())

	// WHEN the input contains a symbol with no rule
	res := m.Run("ab")

	// THEN the run stops at that symbol and names it with the current state
	assert.Equal(t, Rejected, res.Verdict)
	assert.Equal(t, "no transition for 'b' from state q1", res.Detail)
	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, 1, res.Final.Position)
	assert.Equal(t, "b", res.Final.Remaining)
}

func TestDFA_EmptyInput_AcceptedIffInitialIsFinal(t *testing.T) {
	for _, finals := range [][]string{{"q0"}, {"q1"}, {"q0", "q1"}, nil} {
		// GIVEN the a+ DFA with a varying final set
		cfg := aPlusDFA()
		cfg.FinalStates = finals
		m := mustMachine(t, cfg)

		// WHEN run on the empty input
		res := m.Run("")

		// THEN it is accepted exactly when the initial state is final
		want := NewStateSet(finals).Contains("q0")
		assert.Equal(t, want, res.Accepted(), "finals=%v", finals)
		assert.Equal(t, 0, res.Steps)
	}
}

func TestDFA_Wildcard_UsedOnlyWithoutExactMatch(t *testing.T) {
	// GIVEN a DFA accepting strings that end in 'a'
	cfg := aPlusDFA()
	cfg.Alphabet = []string{"a", "b"}
	cfg.Transitions = map[string]any{
		"q0": map[string]any{"a": "q1", "*": "q0"},
		"q1": map[string]any{"a": "q1", "*": "q0"},
	}
	m := mustMachine(t, cfg)

	// WHEN runs end in 'a' and in 'b'
	accepted := m.Run("abba")
	rejected := m.Run("abab")

	// THEN the wildcard absorbs the b's and the exact rule wins for a's
	assert.True(t, accepted.Accepted())
	assert.False(t, rejected.Accepted())
	require.Len(t, accepted.Trace.Steps, 4)
	assert.False(t, accepted.Trace.Steps[0].Rule.Wildcard)
	assert.True(t, accepted.Trace.Steps[1].Rule.Wildcard)
	assert.Equal(t, "δ(q1, '*')", accepted.Trace.Steps[1].Rule.Key)
}

func TestDFA_ExplicitBudget_FlagsExceeded(t *testing.T) {
	// GIVEN the a+ DFA with a budget smaller than the input
	m := mustMachine(t, aPlusDFA(), WithMaxSteps(2))

	// WHEN a longer input is run
	res := m.Run("aaaa")

	// THEN the run stops at the budget and says so
	assert.True(t, res.BudgetExceeded)
	assert.Equal(t, ReasonStepBudget, res.Reason)
	assert.Equal(t, 2, res.Steps)
}

func TestNewDFA_UndeclaredDestination_ConfigurationError(t *testing.T) {
	// GIVEN a rule pointing at a state that is not declared
	cfg := aPlusDFA()
	cfg.Transitions["q1"] = map[string]any{"a": "q9"}

	// WHEN the machine is built
	_, err := NewMachine(cfg)

	// THEN a ConfigurationError names the missing state
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "transiciones", cerr.Field)
	assert.Contains(t, cerr.Msg, "q9")
}

func TestNewDFA_MalformedRow_ConfigurationError(t *testing.T) {
	cfg := aPlusDFA()
	cfg.Transitions["q0"] = []any{"q1"}

	_, err := NewMachine(cfg)

	var cerr *ConfigurationError
	assert.True(t, errors.As(err, &cerr))
}

func TestDFA_Rules_SortedByStateThenSymbol(t *testing.T) {
	m := mustMachine(t, aPlusDFA())
	assert.Equal(t, []string{"δ(q0, 'a') → q1", "δ(q1, 'a') → q1"}, m.Rules())
}

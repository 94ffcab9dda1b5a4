package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aStarB(mode Mode) *MachineConfig {
	return grammarConfig(mode, "S", map[string][]string{"S": {"aS", "b"}})
}

func TestGrammar_RightLinear_DerivationPath(t *testing.T) {
	for _, strategy := range []Strategy{StrategyAuto, StrategyBFS, StrategyDFS} {
		t.Run(string(strategy), func(t *testing.T) {
			// GIVEN S → aS | b
			m := mustMachine(t, aStarB(ModeRegularGrammar), WithStrategy(strategy))

			// WHEN "aab" is derived
			res := m.Run("aab")

			// THEN the left-most derivation is reported with one step per production
			require.True(t, res.Accepted())
			assert.Equal(t, []string{"S", "aS", "aaS", "aab"}, res.Derivation)
			assert.Equal(t, 3, res.Steps)
			require.Len(t, res.Trace.Steps, 3)
			assert.Equal(t, "S → aS", res.Trace.Steps[0].Rule.Key)
			assert.Equal(t, "S → b", res.Trace.Steps[2].Rule.Key)
			assert.Equal(t, "aab", res.Final.Form)
		})
	}
}

func TestGrammar_UnreachableTarget_NoDerivationWithinBudget(t *testing.T) {
	// GIVEN S → aS | b
	m := mustMachine(t, aStarB(ModeRegularGrammar))

	// WHEN a string over a foreign symbol is searched
	res := m.Run("c")

	// THEN the search fails without spending its budget
	assert.Equal(t, Rejected, res.Verdict)
	assert.Equal(t, ReasonNoDerivation, res.Reason)
	assert.False(t, res.BudgetExceeded)
	assert.Empty(t, res.Derivation)
	assert.Less(t, res.Explored, ModeRegularGrammar.DefaultMaxSteps())
}

func TestGrammar_Deterministic(t *testing.T) {
	// GIVEN a context-free grammar with several derivations to choose from
	cfg := grammarConfig(ModeCFG, "E", map[string][]string{
		"E": {"E+T", "T"},
		"T": {"T*F", "F"},
		"F": {"(E)", "i"},
	})
	m := mustMachine(t, cfg)

	for _, input := range []string{"i+i*i", "i*", "(i)"} {
		// WHEN the same search runs twice
		first := m.Run(input)
		second := m.Run(input)

		// THEN verdicts, witnesses and effort are identical
		assert.Equal(t, first.Verdict, second.Verdict, input)
		assert.Equal(t, first.Derivation, second.Derivation, input)
		assert.Equal(t, first.Explored, second.Explored, input)
	}
}

func TestGrammar_CFG_EpsilonProduction(t *testing.T) {
	// GIVEN S → aSb | ε
	m := mustMachine(t, grammarConfig(ModeCFG, "S", map[string][]string{"S": {"aSb", "epsilon"}}))

	tests := []struct {
		input    string
		accepted bool
		path     []string
	}{
		{"", true, []string{"S", "ε"}},
		{"ab", true, []string{"S", "aSb", "ab"}},
		{"aabb", true, []string{"S", "aSb", "aaSbb", "aabb"}},
		{"aab", false, nil},
		{"ba", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := m.Run(tt.input)
			assert.Equal(t, tt.accepted, res.Accepted())
			assert.Equal(t, tt.path, res.Derivation)
		})
	}
}

func TestGrammar_Epsilon_TraceFlag(t *testing.T) {
	m := mustMachine(t, grammarConfig(ModeCFG, "S", map[string][]string{"S": {"aSb", "ε"}}))

	res := m.Run("ab")

	require.Len(t, res.Trace.Steps, 2)
	assert.False(t, res.Trace.Steps[0].Rule.Epsilon)
	assert.True(t, res.Trace.Steps[1].Rule.Epsilon)
	assert.Equal(t, "S → ε", res.Trace.Steps[1].Rule.Key)
}

func TestGrammar_LeftRecursion_FlagsBudgetExceeded(t *testing.T) {
	for _, strategy := range []Strategy{StrategyAuto, StrategyBFS, StrategyDFS} {
		t.Run(string(strategy), func(t *testing.T) {
			// GIVEN S → Sa | b with a budget too small to reach the target
			cfg := grammarConfig(ModeCFG, "S", map[string][]string{"S": {"Sa", "b"}})
			cfg.MaxSteps = intPtr(2)
			m := mustMachine(t, cfg, WithStrategy(strategy))

			// WHEN "baaa" is searched
			res := m.Run("baaa")

			// THEN the search stops at the budget and reports it as inconclusive
			assert.Equal(t, Rejected, res.Verdict)
			assert.Equal(t, ReasonNoDerivation, res.Reason)
			assert.True(t, res.BudgetExceeded)
		})
	}
}

func TestGrammar_LeftRecursion_FoundWithDefaultBudget(t *testing.T) {
	m := mustMachine(t, grammarConfig(ModeCFG, "S", map[string][]string{"S": {"Sa", "b"}}))

	res := m.Run("baaa")

	require.True(t, res.Accepted())
	assert.Equal(t, []string{"S", "Sa", "Saa", "Saaa", "baaa"}, res.Derivation)
}

func TestGrammar_Auto_FallsBackToDFSAfterBFSBudget(t *testing.T) {
	// GIVEN a grammar whose breadth-first frontier doubles at every level
	cfg := grammarConfig(ModeCFG, "S", map[string][]string{"S": {"Sa", "Sb", "c"}})
	cfg.MaxSteps = intPtr(6)
	m := mustMachine(t, cfg)

	// WHEN a target down the first alternative is searched
	res := m.Run("caaa")

	// THEN breadth-first search gives up and the depth-first pass finds it
	require.True(t, res.Accepted(), res.Detail)
	assert.Contains(t, res.Detail, "dfs")
	assert.Equal(t, []string{"S", "Sa", "Saa", "Saaa", "caaa"}, res.Derivation)
	assert.Equal(t, 12, res.Explored)
}

func TestGrammar_TightPruning_CanMissDerivation(t *testing.T) {
	// GIVEN S → AAb, A → ε, whose first form is longer than a tight bound allows
	cfg := grammarConfig(ModeCFG, "S", map[string][]string{"S": {"AAb"}, "A": {"ε"}})

	// WHEN searched with the default and with a tight length bound
	loose := mustMachine(t, cfg).Run("b")
	tight := mustMachine(t, cfg, WithPruning(Pruning{LengthFactor: 1})).Run("b")

	// THEN only the loose bound keeps the long intermediate form alive
	assert.True(t, loose.Accepted())
	assert.False(t, tight.Accepted())
	assert.False(t, tight.BudgetExceeded)
}

func TestGrammar_RegularDiagnostics_FlagsNonRightLinear(t *testing.T) {
	// GIVEN a "regular" grammar with an alternative that is not right-linear
	cfg := grammarConfig(ModeRegularGrammar, "S", map[string][]string{"S": {"aS", "Sb", "c"}})
	m := mustMachine(t, cfg)

	// WHEN it runs
	res := m.Run("ac")

	// THEN the run still completes, carrying a diagnostic
	assert.True(t, res.Accepted())
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], "S → Sb")
}

func TestGrammar_Rules_StartSymbolFirst(t *testing.T) {
	cfg := grammarConfig(ModeCFG, "S", map[string][]string{"A": {"a"}, "S": {"AS", "ε"}})
	m := mustMachine(t, cfg)
	assert.Equal(t, []string{"S → AS", "S → ε", "A → a"}, m.Rules())
}

func TestNewGrammar_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		cfg  *MachineConfig
	}{
		{"start symbol without productions", grammarConfig(ModeCFG, "X", map[string][]string{"S": {"a"}})},
		{"multi-symbol start", grammarConfig(ModeCFG, "SS", map[string][]string{"S": {"a"}})},
		{"multi-symbol head", grammarConfig(ModeCFG, "S", map[string][]string{"S": {"a"}, "AB": {"b"}})},
		{"alternatives not a list", &MachineConfig{Mode: "GLC", Productions: map[string]any{"S": "a"}}},
		{"unknown strategy", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, opts := tt.cfg, []Option(nil)
			if cfg == nil {
				cfg, opts = aStarB(ModeCFG), []Option{WithStrategy("greedy")}
			}
			_, err := NewMachine(cfg, opts...)
			var cerr *ConfigurationError
			assert.True(t, errors.As(err, &cerr), "got %v", err)
		})
	}
}

package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automata-sim/automata-sim/sim/trace"
)

func TestResolveOptions_BudgetPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		cfgSteps *int
		opts     []Option
		want     int
	}{
		{"pda default", ModePDA, nil, nil, 500},
		{"tm default", ModeTM, nil, nil, 1000},
		{"regular grammar default", ModeRegularGrammar, nil, nil, 200},
		{"cfg default", ModeCFG, nil, nil, 1000},
		{"dfa unbounded", ModeDFA, nil, nil, 0},
		{"definition overrides default", ModePDA, intPtr(42), nil, 42},
		{"option overrides definition", ModePDA, intPtr(42), []Option{WithMaxSteps(7)}, 7},
		{"zero option keeps definition", ModeTM, intPtr(42), []Option{WithMaxSteps(0)}, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := resolveOptions(tt.mode, &MachineConfig{MaxSteps: tt.cfgSteps}, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, o.maxSteps)
			assert.Equal(t, StrategyAuto, o.strategy)
			assert.Equal(t, DefaultPruning, o.pruning)
		})
	}
}

func TestResolveOptions_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *MachineConfig
		opts  []Option
		field string
	}{
		{"negative option", &MachineConfig{}, []Option{WithMaxSteps(-1)}, "max_pasos"},
		{"negative definition", &MachineConfig{MaxSteps: intPtr(-3)}, nil, "max_pasos"},
		{"unknown strategy", &MachineConfig{}, []Option{WithStrategy("best-first")}, "strategy"},
		{"zero length factor", &MachineConfig{}, []Option{WithPruning(Pruning{})}, "pruning"},
		{"unknown trace level", &MachineConfig{}, []Option{WithTraceLevel("verbose")}, "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveOptions(ModeCFG, tt.cfg, tt.opts)
			var cerr *ConfigurationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestWithTraceLevelNone_KeepsVerdictDropsSteps(t *testing.T) {
	// GIVEN the increment machine without step recording
	m := mustMachine(t, incrementTM(), WithTraceLevel(trace.TraceLevelNone))

	// WHEN it runs
	res := m.Run("101")

	// THEN the verdict and step count survive but no step records are kept
	assert.True(t, res.Accepted())
	assert.Equal(t, 6, res.Steps)
	assert.Empty(t, res.Trace.Steps)
	require.NotNil(t, res.Trace.Verdict)
	assert.Equal(t, "ACCEPTED", res.Trace.Verdict.Verdict)
}

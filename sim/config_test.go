package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automata-sim/automata-sim/sim/internal/testutil"
)

const parenthesesJSON = `{
  "modo": "AP",
  "estados": ["q0", "q1"],
  "estado_inicial": "q0",
  "estados_finales": ["q1"],
  "transiciones": {
    "(q0, '(', 'Z')": ["q0", "(Z"],
    "(q0, '(', '(')": ["q0", "(("],
    "(q0, ')', '(')": ["q0", "pop"],
    "(q0, 'ε', 'Z')": ["q1", "Z"]
  },
  "entrada": "(())",
  "max_pasos": 50
}`

const incrementYAML = `
modo: mt
estados: [q0, q1, q2]
estado_inicial: q0
estados_finales: [q2]
transiciones:
  "(q0, '0')": [q0, 0, R]
  "(q0, '1')": [q0, "1", R]
  "(q0, '_')": [q1, _, L]
  "(q1, '1')": [q1, 0, L]
  "(q1, '0')": [q2, "1", S]
  "(q1, '_')": [q2, "1", S]
entrada: "101"
`

func TestLoadMachineConfig_JSON(t *testing.T) {
	// GIVEN a JSON definition on disk
	path := testutil.WriteDefinition(t, "ap.json", parenthesesJSON)

	// WHEN it is loaded and built
	cfg, err := LoadMachineConfig(path)
	require.NoError(t, err)
	m, err := NewMachine(cfg)
	require.NoError(t, err)

	// THEN the fields are decoded and the machine runs its own input
	assert.Equal(t, "AP", cfg.Mode)
	require.NotNil(t, cfg.MaxSteps)
	assert.Equal(t, 50, *cfg.MaxSteps)
	assert.True(t, m.Run(cfg.Input).Accepted())
}

func TestLoadMachineConfig_YAML_NumericSymbols(t *testing.T) {
	// GIVEN a YAML definition with unquoted digits and a lowercase mode
	path := testutil.WriteDefinition(t, "mt.yaml", incrementYAML)

	// WHEN it is loaded and run
	cfg, err := LoadMachineConfig(path)
	require.NoError(t, err)
	m, err := NewMachine(cfg)
	require.NoError(t, err)
	res := m.Run(cfg.Input)

	// THEN the mode is normalized and the increment works
	assert.Equal(t, ModeTM, m.Mode())
	assert.Nil(t, cfg.MaxSteps)
	assert.Equal(t, "110", res.Output)
}

func TestParseMachineConfig_UnknownField_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"json", FormatJSON, `{"modo": "AFD", "estado_incial": "q0"}`},
		{"yaml", FormatYAML, "modo: AFD\nestado_incial: q0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMachineConfig([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestLoadMachineConfig_MissingFile_Wrapped(t *testing.T) {
	_, err := LoadMachineConfig("does-not-exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading machine definition")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("a.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("a.YML"))
	assert.Equal(t, FormatJSON, DetectFormat("a.json"))
	assert.Equal(t, FormatJSON, DetectFormat("a"))
}

func TestMachineConfig_Validate_UnknownMode(t *testing.T) {
	cfg := &MachineConfig{Mode: "AFN"}

	err := cfg.Validate()

	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "modo", cerr.Field)
}

func TestExamples_AllAcceptTheirOwnInput(t *testing.T) {
	for _, name := range testutil.ExampleFiles(t) {
		t.Run(name, func(t *testing.T) {
			// GIVEN a bundled definition
			cfg, err := LoadMachineConfig(testutil.ExamplePath(t, name))
			require.NoError(t, err)

			// WHEN it is built and run on its own input
			m, err := NewMachine(cfg)
			require.NoError(t, err)
			res := m.Run(cfg.Input)

			// THEN it is accepted without hitting the budget
			assert.True(t, res.Accepted(), "%s: %s %s", name, res.Reason, res.Detail)
			assert.False(t, res.BudgetExceeded)
			assert.Empty(t, res.Diagnostics)
		})
	}
}

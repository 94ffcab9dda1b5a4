package sim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MachineConfig is a machine definition as written in a definition file.
// Field names follow the external format; the shape of Transitions and
// Productions depends on the mode and is checked by the mode constructor.
type MachineConfig struct {
	Mode         string         `json:"modo" yaml:"modo"`
	Description  string         `json:"descripcion,omitempty" yaml:"descripcion,omitempty"`
	Alphabet     []string       `json:"alfabeto,omitempty" yaml:"alfabeto,omitempty"`
	States       []string       `json:"estados,omitempty" yaml:"estados,omitempty"`
	InitialState string         `json:"estado_inicial,omitempty" yaml:"estado_inicial,omitempty"`
	FinalStates  []string       `json:"estados_finales,omitempty" yaml:"estados_finales,omitempty"`
	Transitions  map[string]any `json:"transiciones,omitempty" yaml:"transiciones,omitempty"`
	Productions  map[string]any `json:"producciones,omitempty" yaml:"producciones,omitempty"`
	StartSymbol  string         `json:"simbolo_inicial,omitempty" yaml:"simbolo_inicial,omitempty"`
	Input        string         `json:"entrada" yaml:"entrada"`
	MaxSteps     *int           `json:"max_pasos,omitempty" yaml:"max_pasos,omitempty"` // nil = mode default
	StackBottom  string         `json:"pila_inicial,omitempty" yaml:"pila_inicial,omitempty"`
	Blank        string         `json:"simbolo_blanco,omitempty" yaml:"simbolo_blanco,omitempty"`
}

// Format is the encoding of a definition file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the decoder from the file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadMachineConfig reads and parses a definition file.
func LoadMachineConfig(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading machine definition: %w", err)
	}
	cfg, err := ParseMachineConfig(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseMachineConfig decodes a definition with strict field checking: unknown
// fields are errors so that typos do not silently fall back to defaults.
func ParseMachineConfig(data []byte, format Format) (*MachineConfig, error) {
	var cfg MachineConfig
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing machine definition: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing machine definition: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown definition format %q", format)
	}
	return &cfg, nil
}

// Validate builds the machine once and reports any ConfigurationError.
func (c *MachineConfig) Validate() error {
	_, err := NewMachine(c)
	return err
}

// stackBottom returns the configured bottom marker or the default.
func (c *MachineConfig) stackBottom() string {
	if c.StackBottom == "" {
		return DefaultStackBottom
	}
	return c.StackBottom
}

// blank returns the configured blank symbol or the default.
func (c *MachineConfig) blank() string {
	if c.Blank == "" {
		return DefaultBlank
	}
	return c.Blank
}

// startSymbol returns the configured start symbol or the default.
func (c *MachineConfig) startSymbol() string {
	if c.StartSymbol == "" {
		return DefaultStartSymbol
	}
	return c.StartSymbol
}

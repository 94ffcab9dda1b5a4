package sim

import "strings"

// Mode selects the model of computation a definition describes.
type Mode string

const (
	ModeDFA            Mode = "AFD"
	ModeRegularGrammar Mode = "GRAMATICA_REGULAR"
	ModeCFG            Mode = "GLC"
	ModePDA            Mode = "AP"
	ModeTM             Mode = "MT"
)

// ValidModes is the set of recognized mode names.
var ValidModes = map[Mode]bool{
	ModeDFA:            true,
	ModeRegularGrammar: true,
	ModeCFG:            true,
	ModePDA:            true,
	ModeTM:             true,
}

// ParseMode normalizes a mode name (case-insensitive) and checks it against ValidModes.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToUpper(strings.TrimSpace(s)))
	if !ValidModes[m] {
		return "", configErrorf("modo", "unknown mode %q; valid modes: AFD, GRAMATICA_REGULAR, GLC, AP, MT", s)
	}
	return m, nil
}

// DefaultMaxSteps returns the step budget used when a definition sets no max_pasos.
// DFA runs are bounded by the input length and return 0.
func (m Mode) DefaultMaxSteps() int {
	switch m {
	case ModePDA:
		return 500
	case ModeTM:
		return 1000
	case ModeRegularGrammar:
		return 200
	case ModeCFG:
		return 1000
	default:
		return 0
	}
}

// IsGrammar reports whether the mode runs a derivation search instead of a stepper.
func (m Mode) IsGrammar() bool {
	return m == ModeRegularGrammar || m == ModeCFG
}

// Title returns the human-readable name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeDFA:
		return "deterministic finite automaton"
	case ModeRegularGrammar:
		return "regular grammar"
	case ModeCFG:
		return "context-free grammar"
	case ModePDA:
		return "pushdown automaton"
	case ModeTM:
		return "Turing machine"
	default:
		return string(m)
	}
}

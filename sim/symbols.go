package sim

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	// Epsilon is the canonical empty symbol. Every synonym is normalized to it
	// when a definition is loaded, and it doubles as the top of an empty stack.
	Epsilon = ""
	// Wildcard matches any symbol (or stack top) not matched by an exact entry.
	Wildcard = "*"
	// PopAction is the PDA write that pushes nothing after the pop.
	PopAction = "pop"

	DefaultBlank       = "_"
	DefaultStackBottom = "Z"
	DefaultStartSymbol = "S"
)

var epsilonSynonyms = map[string]bool{
	"epsilon": true,
	"eps":     true,
	"e":       true,
	"":        true,
	"ε":       true,
}

// IsEpsilon reports whether s is one of the textual spellings of epsilon.
func IsEpsilon(s string) bool {
	return epsilonSynonyms[s]
}

// isEpsilonKeySymbol is IsEpsilon without the one-letter "e", which inside a
// transition key must stay readable as the input symbol e.
func isEpsilonKeySymbol(s string) bool {
	return s != "e" && IsEpsilon(s)
}

// DisplaySymbol renders epsilon as ε and everything else verbatim.
func DisplaySymbol(s string) string {
	if s == Epsilon {
		return "ε"
	}
	return s
}

// splitSymbols breaks an input string into one symbol per rune.
func splitSymbols(input string) []string {
	out := make([]string, 0, len(input))
	for _, r := range input {
		out = append(out, string(r))
	}
	return out
}

// parseTupleKey splits a tuple-shaped rule key such as "(q0, '(', 'Z')" into
// its elements. Elements may be quoted with ' or " so that commas and spaces
// can be used as symbols. This runs once per rule at load time; lookups use
// typed keys.
func parseTupleKey(raw string, arity int) ([]string, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	rs := []rune(s)
	var parts []string
	i := 0
	for {
		for i < len(rs) && unicode.IsSpace(rs[i]) {
			i++
		}
		var tok string
		if i < len(rs) && (rs[i] == '\'' || rs[i] == '"') {
			quote := rs[i]
			j := i + 1
			for j < len(rs) && rs[j] != quote {
				j++
			}
			if j >= len(rs) {
				return nil, fmt.Errorf("unterminated quote in key %q", raw)
			}
			tok = string(rs[i+1 : j])
			i = j + 1
			for i < len(rs) && unicode.IsSpace(rs[i]) {
				i++
			}
			if i < len(rs) && rs[i] != ',' {
				return nil, fmt.Errorf("unexpected %q after quoted element in key %q", rs[i], raw)
			}
		} else {
			j := i
			for j < len(rs) && rs[j] != ',' {
				j++
			}
			tok = strings.TrimSpace(string(rs[i:j]))
			i = j
		}
		parts = append(parts, tok)
		if i >= len(rs) {
			break
		}
		i++ // skip the comma
	}
	if len(parts) != arity {
		return nil, fmt.Errorf("key %q has %d elements, expected %d", raw, len(parts), arity)
	}
	return parts, nil
}

// scalarString converts a decoded scalar (string or number) into its text form.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}

// scalarList converts a decoded sequence of scalars.
func scalarList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := scalarString(it)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// stringMap accepts both map shapes the decoders produce for a mapping.
func stringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := scalarString(k)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

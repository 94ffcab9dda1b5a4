package sim

import "fmt"

// CheckAlphabet returns the distinct input symbols that are not in the
// alphabet, in order of first appearance. An empty alphabet, or one that
// contains the wildcard, admits every symbol. The check is advisory: nothing
// is rejected or added because of it.
func CheckAlphabet(alphabet []string, input string) []string {
	if len(alphabet) == 0 {
		return nil
	}
	known := make(map[string]bool, len(alphabet))
	for _, a := range alphabet {
		if a == Wildcard {
			return nil
		}
		known[a] = true
	}
	var unknown []string
	seen := make(map[string]bool)
	for _, sym := range splitSymbols(input) {
		if known[sym] || seen[sym] {
			continue
		}
		seen[sym] = true
		unknown = append(unknown, sym)
	}
	return unknown
}

// alphabetDiagnostics turns CheckAlphabet output into result messages.
func alphabetDiagnostics(alphabet []string, input string) []string {
	var out []string
	for _, sym := range CheckAlphabet(alphabet, input) {
		out = append(out, fmt.Sprintf("symbol '%s' is not in the declared alphabet", sym))
	}
	return out
}

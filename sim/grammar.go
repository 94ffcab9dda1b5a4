package sim

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/automata-sim/automata-sim/sim/trace"
)

// Production is one alternative A → body. An empty Body is an epsilon production.
type Production struct {
	Head rune
	Body string
}

func (p Production) String() string {
	return fmt.Sprintf("%c → %s", p.Head, DisplaySymbol(p.Body))
}

// Grammar is a regular or context-free grammar. Every symbol that heads a
// production is a non-terminal; every other symbol is a terminal.
type Grammar struct {
	mode        Mode
	start       rune
	productions map[rune][]string // alternatives in declared order
	alphabet    []string
	diagnostics []string
	opts        options
}

// NewGrammar validates the production mapping of a GRAMATICA_REGULAR or GLC
// definition.
func NewGrammar(mode Mode, cfg *MachineConfig, opts ...Option) (*Grammar, error) {
	if !mode.IsGrammar() {
		return nil, configErrorf("modo", "mode %s is not a grammar mode", mode)
	}
	o, err := resolveOptions(mode, cfg, opts)
	if err != nil {
		return nil, err
	}
	startSym := cfg.startSymbol()
	if utf8.RuneCountInString(startSym) != 1 {
		return nil, configErrorf("simbolo_inicial", "start symbol %q must be a single symbol", startSym)
	}
	start, _ := utf8.DecodeRuneInString(startSym)

	g := &Grammar{
		mode:        mode,
		start:       start,
		productions: make(map[rune][]string, len(cfg.Productions)),
		alphabet:    cfg.Alphabet,
		opts:        o,
	}
	for _, head := range sortedRawKeys(cfg.Productions) {
		if utf8.RuneCountInString(head) != 1 {
			return nil, configErrorf("producciones", "malformed production list: non-terminal %q must be a single symbol", head)
		}
		alts, ok := scalarList(cfg.Productions[head])
		if !ok {
			return nil, configErrorf("producciones", "malformed production list: alternatives of %q must be a list of strings", head)
		}
		r, _ := utf8.DecodeRuneInString(head)
		bodies := make([]string, 0, len(alts))
		for _, alt := range alts {
			if IsEpsilon(alt) {
				alt = Epsilon
			}
			bodies = append(bodies, alt)
		}
		g.productions[r] = bodies
	}
	if len(g.productions[start]) == 0 {
		return nil, configErrorf("simbolo_inicial", "start symbol %q has no productions", startSym)
	}
	if mode == ModeRegularGrammar {
		g.diagnostics = g.rightLinearDiagnostics()
	}
	return g, nil
}

func (g *Grammar) Mode() Mode { return g.mode }

// IsNonTerminal reports whether r heads at least one production.
func (g *Grammar) IsNonTerminal(r rune) bool {
	_, ok := g.productions[r]
	return ok
}

// heads returns the non-terminals with the start symbol first and the rest in
// rune order.
func (g *Grammar) heads() []rune {
	out := make([]rune, 0, len(g.productions))
	for r := range g.productions {
		if r != g.start {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return append([]rune{g.start}, out...)
}

// Productions lists every alternative in display order.
func (g *Grammar) Productions() []Production {
	var out []Production
	for _, h := range g.heads() {
		for _, body := range g.productions[h] {
			out = append(out, Production{Head: h, Body: body})
		}
	}
	return out
}

// Rules lists the productions in display form.
func (g *Grammar) Rules() []string {
	prods := g.Productions()
	out := make([]string, 0, len(prods))
	for _, p := range prods {
		out = append(out, p.String())
	}
	return out
}

// rightLinearDiagnostics flags alternatives that are not of the form w or wB,
// with w a terminal string and B a single trailing non-terminal.
func (g *Grammar) rightLinearDiagnostics() []string {
	var out []string
	for _, p := range g.Productions() {
		body := []rune(p.Body)
		for i, r := range body {
			if g.IsNonTerminal(r) && i != len(body)-1 {
				out = append(out, fmt.Sprintf("production %s is not right-linear", p))
				break
			}
		}
	}
	return out
}

// Run searches for a left-most derivation of input from the start symbol.
func (g *Grammar) Run(input string) *Result {
	rt := trace.NewRunTrace(string(g.mode), input, g.opts.traceLevel)
	rt.Initial = trace.Snapshot{Form: string(g.start)}
	res := &Result{
		Mode:        g.mode,
		Input:       input,
		Trace:       rt,
		Diagnostics: append(append([]string(nil), g.diagnostics...), alphabetDiagnostics(g.alphabet, input)...),
	}

	found, stats := g.derive(input)
	res.Explored = stats.Explored
	if found == nil {
		res.Verdict = Rejected
		res.Reason = ReasonNoDerivation
		res.BudgetExceeded = stats.BudgetExceeded
		if stats.BudgetExceeded {
			logrus.Warnf("%s search stopped after reaching the limit of %d expansions", stats.Strategy, g.opts.maxSteps)
			res.Detail = fmt.Sprintf("%s search ran out of budget after %d expansions", stats.Strategy, stats.Explored)
		} else {
			res.Detail = fmt.Sprintf("%s search exhausted its frontier after %d expansions", stats.Strategy, stats.Explored)
		}
		res.Final = trace.Snapshot{Form: string(g.start)}
		return res.finish()
	}

	path := found.path()
	for _, n := range path {
		res.Derivation = append(res.Derivation, DisplaySymbol(n.form))
	}
	for _, n := range path[1:] {
		rt.Record(trace.RuleRecord{
			Key:     n.rule.String(),
			Action:  DisplaySymbol(n.form),
			Epsilon: n.rule.Body == Epsilon,
		}, trace.Snapshot{Form: DisplaySymbol(n.form)})
	}
	res.Steps = len(path) - 1
	res.Verdict = Accepted
	res.Detail = fmt.Sprintf("derivation found by %s search in %d steps", stats.Strategy, res.Steps)
	res.Final = trace.Snapshot{Form: DisplaySymbol(found.form)}
	return res.finish()
}

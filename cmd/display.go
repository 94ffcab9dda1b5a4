package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	sim "github.com/automata-sim/automata-sim/sim"
	"github.com/automata-sim/automata-sim/sim/trace"
)

// Report formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var validFormats = map[string]bool{formatText: true, formatJSON: true, formatYAML: true}

// tapeMargin is the number of cells shown on each side of the head.
const tapeMargin = 10

// Report is the machine-readable form of one run.
type Report struct {
	RunID          string          `json:"run_id" yaml:"run_id"`
	Source         string          `json:"source,omitempty" yaml:"source,omitempty"`
	Mode           string          `json:"mode" yaml:"mode"`
	Input          string          `json:"input" yaml:"input"`
	Verdict        string          `json:"verdict" yaml:"verdict"`
	Reason         string          `json:"reason,omitempty" yaml:"reason,omitempty"`
	Detail         string          `json:"detail,omitempty" yaml:"detail,omitempty"`
	BudgetExceeded bool            `json:"budget_exceeded" yaml:"budget_exceeded"`
	Steps          int             `json:"steps" yaml:"steps"`
	Explored       int             `json:"explored,omitempty" yaml:"explored,omitempty"`
	Output         string          `json:"output,omitempty" yaml:"output,omitempty"`
	Derivation     []string        `json:"derivation,omitempty" yaml:"derivation,omitempty"`
	Diagnostics    []string        `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Rules          []string        `json:"rules,omitempty" yaml:"rules,omitempty"`
	Final          trace.Snapshot  `json:"final" yaml:"final"`
	Trace          *trace.RunTrace `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// newReport flattens a result; rules are included only when requested.
func newReport(source string, m sim.Machine, res *sim.Result, showRules bool) Report {
	r := Report{
		Source:         source,
		Mode:           string(res.Mode),
		Input:          res.Input,
		Verdict:        string(res.Verdict),
		Reason:         string(res.Reason),
		Detail:         res.Detail,
		BudgetExceeded: res.BudgetExceeded,
		Steps:          res.Steps,
		Explored:       res.Explored,
		Output:         res.Output,
		Derivation:     res.Derivation,
		Diagnostics:    res.Diagnostics,
		Final:          res.Final,
		Trace:          res.Trace,
	}
	if res.Trace != nil {
		r.RunID = res.Trace.RunID
	}
	if showRules {
		r.Rules = m.Rules()
	}
	return r
}

// writeReport renders one run in the requested format.
func writeReport(w io.Writer, format, source string, cfg *sim.MachineConfig, m sim.Machine, res *sim.Result, showRules bool) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(newReport(source, m, res, showRules), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReport(source, m, res, showRules)); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	case formatText, "":
		writeText(w, cfg, m, res, showRules)
		return nil
	default:
		return fmt.Errorf("unknown report format %q (expected text, json or yaml)", format)
	}
}

// writeText prints the human-readable report.
func writeText(w io.Writer, cfg *sim.MachineConfig, m sim.Machine, res *sim.Result, showRules bool) {
	fmt.Fprintf(w, "Mode:        %s (%s)\n", res.Mode, res.Mode.Title())
	if cfg.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", cfg.Description)
	}
	if res.Mode.IsGrammar() {
		start := cfg.StartSymbol
		if start == "" {
			start = sim.DefaultStartSymbol
		}
		fmt.Fprintf(w, "Start:       %s\n", start)
	} else {
		fmt.Fprintf(w, "States:      %s (initial %s, final %s)\n",
			strings.Join(cfg.States, ", "), cfg.InitialState, orNone(cfg.FinalStates))
	}
	fmt.Fprintf(w, "Input:       '%s' (length %d)\n", res.Input, len([]rune(res.Input)))

	if showRules {
		fmt.Fprintln(w, "\nRules:")
		for _, r := range m.Rules() {
			fmt.Fprintf(w, "  %s\n", r)
		}
	}

	if res.Trace != nil && len(res.Trace.Steps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %4d  %-32s %s\n", 0, "(start)", describeSnapshot(res.Mode, res.Trace.Initial))
		for _, s := range res.Trace.Steps {
			rule := s.Rule.Key
			if !res.Mode.IsGrammar() {
				rule += " → " + s.Rule.Action
			}
			fmt.Fprintf(w, "  %4d  %-32s %s\n", s.Index, rule, describeSnapshot(res.Mode, s.Snapshot))
		}
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintf(w, "\nNote: %s", d)
	}
	if len(res.Diagnostics) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	switch res.Mode {
	case sim.ModeTM:
		cells, caret := sim.TapeWindow(res.Final.Tape, res.Final.Head, tapeMargin)
		fmt.Fprintf(w, "Tape:        %s\n", res.Output)
		fmt.Fprintf(w, "Head:        %s\n             %s\n", cells, caret)
	case sim.ModePDA:
		fmt.Fprintf(w, "Stack:       %s\n", strings.Join(res.Final.Stack, " "))
	case sim.ModeRegularGrammar, sim.ModeCFG:
		if len(res.Derivation) > 0 {
			fmt.Fprintf(w, "Derivation:  %s\n", strings.Join(res.Derivation, " ⇒ "))
		}
		fmt.Fprintf(w, "Explored:    %d sentential forms\n", res.Explored)
	}

	sum := trace.Summarize(res.Trace)
	if sum.EpsilonSteps > 0 || sum.WildcardSteps > 0 {
		fmt.Fprintf(w, "Steps:       %d (%d epsilon, %d wildcard)\n", sum.TotalSteps, sum.EpsilonSteps, sum.WildcardSteps)
	} else {
		fmt.Fprintf(w, "Steps:       %d\n", res.Steps)
	}

	verdict := string(res.Verdict)
	if res.Reason != sim.ReasonNone {
		verdict += ": " + string(res.Reason)
	}
	fmt.Fprintf(w, "Verdict:     %s\n", verdict)
	if res.Detail != "" {
		fmt.Fprintf(w, "             %s\n", res.Detail)
	}
	if res.BudgetExceeded {
		fmt.Fprintln(w, "Warning:     the step budget ran out; the verdict is inconclusive")
	}
}

// describeSnapshot renders the mode-relevant part of a configuration.
func describeSnapshot(mode sim.Mode, s trace.Snapshot) string {
	switch mode {
	case sim.ModeDFA:
		return fmt.Sprintf("state=%s remaining=%s", s.State, s.Remaining)
	case sim.ModePDA:
		return fmt.Sprintf("state=%s remaining=%s stack=[%s]", s.State, s.Remaining, strings.Join(s.Stack, " "))
	case sim.ModeTM:
		return fmt.Sprintf("state=%s head=%d tape=%s", s.State, s.Head, strings.Join(s.Tape, ""))
	default:
		return s.Form
	}
}

func orNone(states []string) string {
	if len(states) == 0 {
		return "none"
	}
	return strings.Join(states, ", ")
}

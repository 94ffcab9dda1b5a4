package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sim "github.com/automata-sim/automata-sim/sim"
	"github.com/automata-sim/automata-sim/sim/trace"
)

var (
	// CLI flags for run
	runInput        string // Input overriding the definition's entrada
	runMaxSteps     int    // Step budget override (0 = definition or mode default)
	runStrategy     string // Grammar search strategy
	runLengthFactor int    // Grammar pruning length factor
	runTraceLevel   string // Trace level: steps or none
	runShowRules    bool   // Print the rule table before the trace
	runRecord       bool   // Store the run in the history database
)

// runOptions collects everything a run needs besides the definition file.
type runOptions struct {
	input        *string // nil keeps the definition's entrada
	maxSteps     int
	strategy     sim.Strategy
	lengthFactor int
	traceLevel   trace.TraceLevel
	showRules    bool
	format       string
	historyDB    string // empty disables recording
}

// machineOptions translates run options into constructor options.
func (o runOptions) machineOptions() []sim.Option {
	opts := []sim.Option{
		sim.WithMaxSteps(o.maxSteps),
		sim.WithStrategy(o.strategy),
		sim.WithTraceLevel(o.traceLevel),
	}
	if o.lengthFactor != 0 {
		opts = append(opts, sim.WithPruning(sim.Pruning{LengthFactor: o.lengthFactor}))
	}
	return opts
}

// simulate loads a definition, builds its machine and runs it once.
func simulate(path string, o runOptions) (*sim.MachineConfig, sim.Machine, *sim.Result, error) {
	cfg, err := sim.LoadMachineConfig(path)
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := sim.NewMachine(cfg, o.machineOptions()...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	input := cfg.Input
	if o.input != nil {
		input = *o.input
	}
	logrus.Infof("Running %s (%s) on '%s'", path, m.Mode(), input)
	res := m.Run(input)
	for _, d := range res.Diagnostics {
		logrus.Warn(d)
	}
	return cfg, m, res, nil
}

// runDefinition simulates one definition, writes its report and, when a
// history database is configured, records the run.
func runDefinition(w io.Writer, path string, o runOptions) (*sim.Result, error) {
	if !validFormats[o.format] {
		return nil, fmt.Errorf("unknown report format %q (expected text, json or yaml)", o.format)
	}
	cfg, m, res, err := simulate(path, o)
	if err != nil {
		return nil, err
	}
	if err := writeReport(w, o.format, path, cfg, m, res, o.showRules); err != nil {
		return nil, err
	}
	if o.historyDB != "" {
		rec, err := recordRun(o.historyDB, path, res)
		if err != nil {
			return res, err
		}
		logrus.Infof("Recorded run %s in %s", rec.RunID, o.historyDB)
	}
	return res, nil
}

// runOptionsFromFlags builds runOptions from the run flags and settings.
func runOptionsFromFlags(cmd *cobra.Command) runOptions {
	o := runOptions{
		maxSteps:     runMaxSteps,
		strategy:     sim.Strategy(runStrategy),
		lengthFactor: runLengthFactor,
		traceLevel:   trace.TraceLevel(runTraceLevel),
		showRules:    runShowRules,
		format:       viper.GetString("format"),
	}
	if cmd.Flags().Changed("input") {
		o.input = &runInput
	}
	if runRecord {
		o.historyDB = viper.GetString("history_db")
	}
	return o
}

// runCmd simulates one machine definition
var runCmd = &cobra.Command{
	Use:   "run <definition>",
	Short: "Run a machine definition on its input",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := runDefinition(cmd.OutOrStdout(), args[0], runOptionsFromFlags(cmd)); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// addRunFlags registers the simulation flags shared by run and menu.
func addRunFlags(c *cobra.Command) {
	c.Flags().IntVar(&runMaxSteps, "max-steps", 0, "Step budget (overrides max_pasos; 0 keeps the definition or mode default)")
	c.Flags().StringVar(&runStrategy, "strategy", string(sim.StrategyAuto), "Grammar search strategy (auto, bfs, dfs)")
	c.Flags().IntVar(&runLengthFactor, "length-factor", sim.DefaultPruning.LengthFactor, "Grammar pruning: maximum form length as a multiple of the target length")
	c.Flags().StringVar(&runTraceLevel, "trace", string(trace.TraceLevelSteps), "Trace level (steps, none)")
	c.Flags().BoolVar(&runShowRules, "show-rules", false, "Print the transition table or productions before the trace")
	c.Flags().BoolVar(&runRecord, "history", false, "Record the run in the history database")
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "Input string (overrides the definition's entrada)")
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

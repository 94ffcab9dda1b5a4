package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/automata-sim/automata-sim/sim"
)

// validateDefinitions checks each file without running it and reports one
// line per file. It returns an error if any file is invalid.
func validateDefinitions(w io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		cfg, err := sim.LoadMachineConfig(path)
		if err == nil {
			var m sim.Machine
			if m, err = sim.NewMachine(cfg); err == nil {
				fmt.Fprintf(w, "OK    %s (%s, %d rules)\n", path, m.Mode(), len(m.Rules()))
				continue
			}
		}
		failed++
		var cerr *sim.ConfigurationError
		if errors.As(err, &cerr) {
			fmt.Fprintf(w, "FAIL  %s: %s: %s\n", path, cerr.Field, cerr.Msg)
		} else {
			fmt.Fprintf(w, "FAIL  %s: %v\n", path, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d definitions are invalid", failed, len(paths))
	}
	return nil
}

// validateCmd checks definitions without running them
var validateCmd = &cobra.Command{
	Use:   "validate <definition>...",
	Short: "Check machine definitions for configuration errors",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := validateDefinitions(cmd.OutOrStdout(), args); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

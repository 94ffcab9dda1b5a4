package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sim "github.com/automata-sim/automata-sim/sim"
	"github.com/automata-sim/automata-sim/sim/history"
)

var (
	// CLI flags for history
	historyLimit   int  // Number of runs listed
	historySummary bool // Print per-mode totals instead of runs
)

// recordRun stores one result, keyed by its trace run ID.
func recordRun(dbPath, source string, res *sim.Result) (history.RunRecord, error) {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return history.RunRecord{}, fmt.Errorf("opening history %s: %w", dbPath, err)
	}
	defer store.Close()

	rec := history.RunRecord{
		Mode:           string(res.Mode),
		Source:         source,
		Input:          res.Input,
		Verdict:        string(res.Verdict),
		Reason:         string(res.Reason),
		Detail:         res.Detail,
		Steps:          res.Steps,
		BudgetExceeded: res.BudgetExceeded,
	}
	if res.Trace != nil {
		rec.RunID = res.Trace.RunID
		data, err := json.Marshal(res.Trace)
		if err != nil {
			return history.RunRecord{}, fmt.Errorf("encoding trace: %w", err)
		}
		rec.TraceJSON = string(data)
	}
	return store.Record(rec)
}

// writeHistory lists recent runs, or per-mode totals when summary is set.
func writeHistory(w io.Writer, dbPath string, limit int, summary bool) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening history %s: %w", dbPath, err)
	}
	defer store.Close()

	if summary {
		rows, err := store.Summary()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-18s %6s %9s %7s\n", "MODE", "RUNS", "ACCEPTED", "BUDGET")
		for _, r := range rows {
			fmt.Fprintf(w, "%-18s %6d %9d %7d\n", r.Mode, r.Runs, r.Accepted, r.BudgetExceeded)
		}
		return nil
	}

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		flag := ""
		if r.BudgetExceeded {
			flag = " (budget exceeded)"
		}
		fmt.Fprintf(w, "%s  %s  %-18s %-8s '%s' %s%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.RunID, r.Mode, r.Verdict, r.Input, r.Source, flag)
	}
	return nil
}

// writeStoredTrace prints the recorded trace of one run as indented JSON.
func writeStoredTrace(w io.Writer, dbPath, runID string) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening history %s: %w", dbPath, err)
	}
	defer store.Close()

	rec, err := store.Get(runID)
	if err != nil {
		return err
	}
	if rec.TraceJSON == "" {
		fmt.Fprintf(w, "%s %s '%s': %s %s\n", rec.RunID, rec.Mode, rec.Input, rec.Verdict, rec.Reason)
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(rec.TraceJSON), &v); err != nil {
		return fmt.Errorf("decoding stored trace: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// historyCmd lists recorded runs
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List runs recorded with run --history",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeHistory(cmd.OutOrStdout(), viper.GetString("history_db"), historyLimit, historySummary); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// historyShowCmd prints the stored trace of one run
var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the stored trace of a recorded run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeStoredTrace(cmd.OutOrStdout(), viper.GetString("history_db"), args[0]); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to list")
	historyCmd.Flags().BoolVar(&historySummary, "summary", false, "Print per-mode totals")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sim "github.com/automata-sim/automata-sim/sim"
)

// definitionEntry describes one definition file found in a directory.
type definitionEntry struct {
	Name        string
	Path        string
	Mode        string
	Description string
	Err         error // load error; the entry is still listed
}

// isDefinitionFile reports whether name has a definition extension.
func isDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// listDefinitions loads every definition in dir, sorted by file name.
func listDefinitions(dir string) ([]definitionEntry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading definitions directory: %w", err)
	}
	var out []definitionEntry
	for _, f := range files {
		if f.IsDir() || !isDefinitionFile(f.Name()) {
			continue
		}
		e := definitionEntry{Name: f.Name(), Path: filepath.Join(dir, f.Name())}
		cfg, err := sim.LoadMachineConfig(e.Path)
		if err != nil {
			e.Err = err
		} else {
			e.Mode = strings.ToUpper(cfg.Mode)
			e.Description = cfg.Description
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// writeList prints a numbered listing; numbers start at 1.
func writeList(w io.Writer, entries []definitionEntry) {
	for i, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(w, "  %2d. %-28s (unreadable: %v)\n", i+1, e.Name, e.Err)
			continue
		}
		fmt.Fprintf(w, "  %2d. %-28s %-18s %s\n", i+1, e.Name, e.Mode, e.Description)
	}
}

// listCmd prints the definitions in the examples directory
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List machine definitions in the examples directory",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := listDefinitions(viper.GetString("examples_dir"))
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		writeList(cmd.OutOrStdout(), entries)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// selectEntry resolves a 1-based index, a file name, or a file name without
// its extension.
func selectEntry(entries []definitionEntry, choice string) (definitionEntry, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(entries) {
			return entries[n-1], true
		}
		return definitionEntry{}, false
	}
	for _, e := range entries {
		if e.Name == choice || strings.TrimSuffix(e.Name, filepath.Ext(e.Name)) == choice {
			return e, true
		}
	}
	return definitionEntry{}, false
}

// runMenu is the interactive loop: list the definitions, read a choice, run
// it, and ask whether to continue. It returns when the input ends or the
// user quits.
func runMenu(in io.Reader, out io.Writer, dir string, o runOptions) error {
	entries, err := listDefinitions(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no machine definitions in %s", dir)
	}

	scanner := bufio.NewScanner(in)
	prompt := func(msg string) (string, bool) {
		fmt.Fprint(out, msg)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		fmt.Fprintln(out, "\n=== AUTOMATA SIMULATOR ===")
		fmt.Fprintln(out, "\nAvailable definitions:")
		writeList(out, entries)

		choice, ok := prompt("\nSelect a definition (number or name, q to quit): ")
		if !ok {
			return scanner.Err()
		}
		if choice == "q" || choice == "quit" {
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		entry, found := selectEntry(entries, choice)
		if !found {
			fmt.Fprintf(out, "No definition matches %q.\n", choice)
			continue
		}

		fmt.Fprintf(out, "\nRunning %s\n\n", entry.Name)
		if _, err := runDefinition(out, entry.Path, o); err != nil {
			logrus.Errorf("%v", err)
			fmt.Fprintf(out, "Error: %v\n", err)
		}

		again, ok := prompt("\nRun another definition? [y/N]: ")
		if !ok {
			return scanner.Err()
		}
		if a := strings.ToLower(again); a != "y" && a != "yes" && a != "1" {
			fmt.Fprintln(out, "Bye.")
			return nil
		}
	}
}

// menuCmd starts the interactive selection loop
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick and run definitions from the examples directory interactively",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMenu(cmd.InOrStdin(), cmd.OutOrStdout(), viper.GetString("examples_dir"), runOptionsFromFlags(cmd)); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	addRunFlags(menuCmd)
	rootCmd.AddCommand(menuCmd)
}

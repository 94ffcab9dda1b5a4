package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Persistent CLI flags, also settable through the config file or
	// AUTOMATA_SIM_* environment variables
	configFile   string // Optional settings file (YAML, JSON or TOML)
	logLevel     string // Log verbosity level
	examplesDir  string // Directory scanned by list and menu
	historyDB    string // SQLite file for run history
	reportFormat string // Report format: text, json or yaml
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "automata-sim",
	Short: "Simulator for finite automata, grammars, pushdown automata and Turing machines",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := loadSettings(); err != nil {
			logrus.Fatalf("%v", err)
		}
		level, err := logrus.ParseLevel(viper.GetString("log"))
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", viper.GetString("log"))
		}
		logrus.SetLevel(level)
	},
}

// loadSettings reads the optional settings file and enables environment overrides.
func loadSettings() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	viper.SetEnvPrefix("AUTOMATA_SIM")
	viper.AutomaticEnv()
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up persistent flags and binds them to settings keys
func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file (keys: log, examples_dir, history_db, format)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&examplesDir, "examples-dir", "examples", "Directory holding machine definitions")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", "automata-sim.db", "SQLite file for run history")
	rootCmd.PersistentFlags().StringVar(&reportFormat, "format", "text", "Report format (text, json, yaml)")

	viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))
	viper.BindPFlag("examples_dir", rootCmd.PersistentFlags().Lookup("examples-dir"))
	viper.BindPFlag("history_db", rootCmd.PersistentFlags().Lookup("history-db"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

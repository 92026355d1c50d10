package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile     string
	logLevel    string
	logFormat   string
	computation string
	queryBudget string
)

var rootCmd = &cobra.Command{
	Use:   "goinsight",
	Short: "Feature extraction and comparison for MySQL data",
	Long: `A CLI tool that extracts a statistical feature vector from an analyzable
model (a column, a table, a saved question, a filtered segment) and compares
two such vectors to rank which fields explain their difference.

Features:
  - Uniform x-ray output across model types
  - Cost-budgeted row sampling with a fixed cap
  - Column alignment for saved question results
  - Two-stage significance ranking of explanatory features`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "insight.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Budget overrides
	rootCmd.PersistentFlags().StringVar(&computation, "computation", "",
		"Override computation budget (linear, unbounded, yolo)")
	rootCmd.PersistentFlags().StringVar(&queryBudget, "query-budget", "",
		"Override query budget (dont-touch, sample, full-scan, joins)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel    string
	LogFormat   string
	Computation string
	QueryBudget string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		Computation: computation,
		QueryBudget: queryBudget,
	}
}

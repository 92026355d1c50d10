package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinsight/internal/config"
	"github.com/dbsmedya/goinsight/internal/database"
	"github.com/dbsmedya/goinsight/internal/logger"
)

var validateConnect bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate checks the configuration file for required fields and valid
values, and optionally verifies database connectivity.

Example:
  goinsight validate --config insight.yaml
  goinsight validate --config insight.yaml --connect`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateConnect, "connect", false,
		"Also verify database connectivity")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Computation, overrides.QueryBudget)

	if err := cfg.Validate(); err != nil {
		return err
	}
	cmd.Printf("Configuration %s is valid\n", configFile)

	if !validateConnect {
		return nil
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	dbManager := database.NewManager(cfg)
	if err := dbManager.Connect(ctx); err != nil {
		return fmt.Errorf("database connectivity check failed: %w", err)
	}
	defer dbManager.Close()

	log.Info("Database connection verified")
	cmd.Println("Database connection OK")
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinsight/internal/config"
	"github.com/dbsmedya/goinsight/internal/database"
	"github.com/dbsmedya/goinsight/internal/extract"
	"github.com/dbsmedya/goinsight/internal/logger"
	"github.com/dbsmedya/goinsight/internal/present"
	"github.com/dbsmedya/goinsight/internal/render"
	"github.com/dbsmedya/goinsight/internal/retrieval"
	"github.com/dbsmedya/goinsight/internal/stats"
)

var xrayModel string

var xrayCmd = &cobra.Command{
	Use:   "xray",
	Short: "Extract and display a model's feature vector",
	Long: `X-ray fetches a model's data, computes its statistical feature vector
and prints it in display form (rounded, with descriptions).

Example:
  goinsight xray --config insight.yaml --model field:orders.total
  goinsight xray --model table:orders
  goinsight xray --model card:daily_revenue`,
	RunE: runXray,
}

func init() {
	xrayCmd.Flags().StringVarP(&xrayModel, "model", "m", "",
		"Model to analyze, e.g. field:orders.total (required)")
	xrayCmd.MarkFlagRequired("model")

	rootCmd.AddCommand(xrayCmd)
}

func runXray(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	m, err := parseModelSpec(cfg, xrayModel)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	dbManager := database.NewManager(cfg)
	if err := dbManager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbManager.Close()

	source := retrieval.NewSQLSource(dbManager.Source, log)
	extractor := extract.New(source, stats.Calculator{}, log)

	log.WithModel(m.Kind(), fmt.Sprint(m)).Info("Extracting features")
	result, err := extractor.Extract(ctx, cfg.Options(), m)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	presented := present.New(present.StaticDescriber{}).Present(result)
	cmd.Println(render.XRay(presented))
	return nil
}

// loadConfigAndLogger loads the config file, applies CLI overrides and
// builds the logger. Shared by the commands that hit the database.
func loadConfigAndLogger() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Computation, overrides.QueryBudget)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

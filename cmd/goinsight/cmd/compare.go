package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinsight/internal/breaks"
	"github.com/dbsmedya/goinsight/internal/compare"
	"github.com/dbsmedya/goinsight/internal/database"
	"github.com/dbsmedya/goinsight/internal/extract"
	"github.com/dbsmedya/goinsight/internal/present"
	"github.com/dbsmedya/goinsight/internal/render"
	"github.com/dbsmedya/goinsight/internal/retrieval"
	"github.com/dbsmedya/goinsight/internal/stats"
)

var (
	compareA string
	compareB string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two models and rank explanatory features",
	Long: `Compare extracts the feature vectors of two models and ranks which
fields and features best explain their difference.

Example:
  goinsight compare --a table:orders --b segment:recent_orders
  goinsight compare --a field:orders.total --b field:refunds.amount`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareA, "a", "",
		"First model, e.g. table:orders (required)")
	compareCmd.Flags().StringVar(&compareB, "b", "",
		"Second model, e.g. segment:recent_orders (required)")
	compareCmd.MarkFlagRequired("a")
	compareCmd.MarkFlagRequired("b")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	a, err := parseModelSpec(cfg, compareA)
	if err != nil {
		return err
	}
	b, err := parseModelSpec(cfg, compareB)
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
	comparator := compare.New(extractor, stats.Distance{}, breaks.HeadTails{}, log)

	log.WithCompare(compareA, compareB).Info("Comparing models")
	result, err := comparator.Compare(ctx, cfg.Options(), a, b)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	presented := present.New(present.StaticDescriber{}).PresentCompare(result)
	cmd.Println(render.Compare(presented))
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/eurogenius/internal/domain"
)

var (
	generateStrategy string
	generateCount    int
	generateSeed     uint64
)

// generateCmd produces combinations for a strategy
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Produce combinations for a strategy",
	Long: `Produce combinations for a strategy.

Ensemble strategies (balanced, conservative, risky) evolve a
population and blend it with the predictor. Heuristic strategies (statistical,
hot, cold, rare) rank symbols from the draw history.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateStrategy, "strategy", "s", "", "strategy name (defaults to DEFAULT_STRATEGY)")
	generateCmd.Flags().IntVarP(&generateCount, "n", "n", 5, "number of combinations")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "random seed (0 = random)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	strategy := a.cfg.DefaultStrategy
	if generateStrategy != "" {
		strategy, err = domain.ParseStrategy(generateStrategy)
		if err != nil {
			return err
		}
	}

	if err := a.container.PredictionService.Init(ctx); err != nil {
		return err
	}

	result, err := a.container.PredictionService.Predict(ctx, strategy, generateCount, generateSeed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Strategy: %s  Seed: %d  Predictor: %t\n", result.Strategy, result.Seed, result.PredictorUsed)
	renderCombinations(out, result.Combinations)
	return nil
}

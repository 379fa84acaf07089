package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/aristath/eurogenius/internal/modules/prediction"
)

var (
	runCount       int
	runSeed        uint64
	runGenerations int
	runPopulation  int
	runVerbose     bool
)

// runCmd runs the optimizer once without the predictor
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the optimizer once and show its best combinations",
	Args:  cobra.NoArgs,
	RunE:  runOptimizer,
}

func init() {
	runCmd.Flags().IntVarP(&runCount, "n", "n", 5, "number of combinations")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "random seed (0 = random)")
	runCmd.Flags().IntVar(&runGenerations, "generations", 0, "generations (0 = configured value)")
	runCmd.Flags().IntVar(&runPopulation, "population", 0, "population size (0 = configured value)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "print every generation")
}

func runOptimizer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.container.PredictionService.Init(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := prediction.RunOptions{N: runCount, Seed: runSeed}
	if runGenerations > 0 {
		opts.Generations = &runGenerations
	}
	if runPopulation > 0 {
		opts.PopulationSize = &runPopulation
	}
	if runVerbose {
		opts.Observer = func(g genetic.GenerationStats) {
			fmt.Fprintf(out, "generation %3d  max %.4f  mean %.4f  std %.4f\n", g.Generation, g.Max, g.Mean, g.StdDev)
		}
	}

	result, err := a.container.PredictionService.RunOptimizer(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Run: %s  Seed: %d  Generations: %d\n", result.RunID, result.Seed, len(result.History)-1)
	renderCombinations(out, result.Combinations)
	return nil
}

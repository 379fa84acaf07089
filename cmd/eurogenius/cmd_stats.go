package main

import (
	"github.com/spf13/cobra"
)

// statsCmd prints per-symbol statistics
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-symbol statistics of the draw history",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.container.PredictionService.Statistics(ctx)
	if err != nil {
		return err
	}

	renderReport(cmd.OutOrStdout(), report)
	return nil
}

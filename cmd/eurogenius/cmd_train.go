package main

import (
	"github.com/spf13/cobra"
)

// trainCmd rebuilds the optimizer snapshot
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Rebuild the optimizer snapshot from the stored draws",
	Args:  cobra.NoArgs,
	RunE:  runTrain,
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.container.PredictionService.Train(ctx)
	if err != nil {
		return err
	}

	renderSnapshot(cmd.OutOrStdout(), snap)
	return nil
}

package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var importTrain bool

// importCmd loads draws from a CSV file
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Load draws from a CSV file",
	Long: `Load draws from a CSV file with one draw per row:

  date,n1,n2,n3,n4,n5,s1,s2

The header row is optional. Dates may be empty, YYYY-MM-DD, DD/MM/YYYY or
YYYY/MM/DD. Invalid rows are skipped and draws already stored are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importTrain, "train", false, "retrain the optimizer after importing")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.container.Importer.ImportFile(ctx, args[0])
	if err != nil {
		return err
	}

	total, err := a.container.DrawRepo.Count(ctx)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ROWS", "IMPORTED", "SKIPPED", "DUPLICATES", "TOTAL DRAWS"})
	t.AppendRow(table.Row{result.Rows, result.Imported, result.Skipped, result.Duplicates, total})
	t.Render()

	if importTrain {
		snap, err := a.container.PredictionService.Train(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Trained on %d draws\n", snap.DrawCount)
	}

	return nil
}

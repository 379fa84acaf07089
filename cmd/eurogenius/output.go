package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/aristath/eurogenius/internal/modules/statistics"
)

func renderCombinations(w io.Writer, combos []domain.Combination) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "NUMBERS", "STARS", "CONFIDENCE", "SOURCE"})
	for i, c := range combos {
		t.AppendRow(table.Row{
			i + 1,
			joinSymbols(c.Primary),
			joinSymbols(c.Secondary),
			fmt.Sprintf("%.2f", c.Confidence),
			c.Source,
		})
	}
	t.Render()
}

func renderSnapshot(w io.Writer, snap *genetic.Snapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"TRAINED AT", "DRAWS", "POPULATION", "GENERATIONS", "CROSSOVER", "MUTATION"})
	t.AppendRow(table.Row{
		snap.TrainedAt.Format("2006-01-02 15:04:05"),
		snap.DrawCount,
		snap.PopulationSize,
		snap.Generations,
		snap.CrossoverProb,
		snap.MutationProb,
	})
	t.Render()
}

func renderReport(w io.Writer, r statistics.Report) {
	fmt.Fprintf(w, "Draws: %d  Recent window: %d\n", r.DrawCount, r.Window)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"", "HOT", "COLD"})
	t.AppendRows([]table.Row{
		{"Numbers", joinSymbols(r.HotPrimary), joinSymbols(r.ColdPrimary)},
		{"Stars", joinSymbols(r.HotSecondary), joinSymbols(r.ColdSecondary)},
	})
	t.Render()

	renderSymbolStats(w, "NUMBER", r.Primary)
	renderSymbolStats(w, "STAR", r.Secondary)
}

func renderSymbolStats(w io.Writer, label string, stats []statistics.SymbolStat) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{label, "COUNT", "FREQUENCY", "GAP", "RECENT"})
	for _, s := range stats {
		t.AppendRow(table.Row{s.Symbol, s.Count, fmt.Sprintf("%.4f", s.Frequency), s.Gap, s.RecentCount})
	}
	t.Render()
}

func joinSymbols(symbols []int) string {
	if len(symbols) == 0 {
		return "-"
	}
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}

package statistics

import (
	"math"

	"github.com/aristath/eurogenius/internal/domain"
)

// HistoricalStatistics holds the read-only tables derived from a draw history.
// Draws are expected oldest first.
type HistoricalStatistics struct {
	game                 domain.GameConfig
	drawCount            int
	draws                []domain.Draw
	primaryFrequencies   FrequencyTable
	secondaryFrequencies FrequencyTable
	pairFrequencies      PairFrequencyTable
	primaryLastSeen      []int // draw index of last appearance, -1 if never seen
	secondaryLastSeen    []int
}

// Build scans draws once, counting each symbol and each unordered primary pair.
// Symbol counts are normalized by the number of draws and pair counts by the
// largest pair count. An empty history yields empty tables.
func Build(game domain.GameConfig, draws []domain.Draw) *HistoricalStatistics {
	h := &HistoricalStatistics{
		game:              game,
		drawCount:         len(draws),
		draws:             draws,
		primaryLastSeen:   newLastSeen(game.PrimaryRange),
		secondaryLastSeen: newLastSeen(game.SecondaryRange),
	}
	if len(draws) == 0 {
		return h
	}

	primaryCounts := make([]int, game.PrimaryRange+1)
	secondaryCounts := make([]int, game.SecondaryRange+1)
	pairCounts := make(map[Pair]int)

	for i, d := range draws {
		for j, a := range d.Primary {
			if a >= 1 && a <= game.PrimaryRange {
				primaryCounts[a]++
				h.primaryLastSeen[a] = i
			}
			for _, b := range d.Primary[j+1:] {
				pairCounts[NewPair(a, b)]++
			}
		}
		for _, s := range d.Secondary {
			if s >= 1 && s <= game.SecondaryRange {
				secondaryCounts[s]++
				h.secondaryLastSeen[s] = i
			}
		}
	}

	total := float64(len(draws))
	h.primaryFrequencies = normalize(primaryCounts, total)
	h.secondaryFrequencies = normalize(secondaryCounts, total)

	maxPair := 0
	for _, c := range pairCounts {
		if c > maxPair {
			maxPair = c
		}
	}
	if maxPair == 0 {
		maxPair = 1
	}
	h.pairFrequencies = make(PairFrequencyTable, len(pairCounts))
	for p, c := range pairCounts {
		h.pairFrequencies[p] = float64(c) / float64(maxPair)
	}

	return h
}

// FromTables restores statistics from previously computed tables without
// re-scanning history. Recency information is unavailable until WithDraws is called.
func FromTables(game domain.GameConfig, primary, secondary FrequencyTable, pairs PairFrequencyTable, drawCount int) *HistoricalStatistics {
	return &HistoricalStatistics{
		game:                 game,
		drawCount:            drawCount,
		primaryFrequencies:   primary,
		secondaryFrequencies: secondary,
		pairFrequencies:      pairs,
		primaryLastSeen:      newLastSeen(game.PrimaryRange),
		secondaryLastSeen:    newLastSeen(game.SecondaryRange),
	}
}

// WithDraws returns a copy that keeps the frequency tables but uses draws for
// originality scoring and recency. Used after restoring from a snapshot.
func (h *HistoricalStatistics) WithDraws(draws []domain.Draw) *HistoricalStatistics {
	fresh := Build(h.game, draws)
	return &HistoricalStatistics{
		game:                 h.game,
		drawCount:            h.drawCount,
		draws:                draws,
		primaryFrequencies:   h.primaryFrequencies,
		secondaryFrequencies: h.secondaryFrequencies,
		pairFrequencies:      h.pairFrequencies,
		primaryLastSeen:      fresh.primaryLastSeen,
		secondaryLastSeen:    fresh.secondaryLastSeen,
	}
}

func newLastSeen(size int) []int {
	last := make([]int, size+1)
	for i := range last {
		last[i] = -1
	}
	return last
}

func normalize(counts []int, total float64) FrequencyTable {
	table := make(FrequencyTable, len(counts))
	for s, c := range counts {
		table[s] = float64(c) / total
	}
	return table
}

// Game returns the game layout the tables were built for
func (h *HistoricalStatistics) Game() domain.GameConfig { return h.game }

// DrawCount returns the number of draws the frequencies were computed from
func (h *HistoricalStatistics) DrawCount() int { return h.drawCount }

// Draws returns the history used for originality scoring (may be empty after a restore)
func (h *HistoricalStatistics) Draws() []domain.Draw { return h.draws }

// PrimaryFrequencies returns the primary symbol table
func (h *HistoricalStatistics) PrimaryFrequencies() FrequencyTable { return h.primaryFrequencies }

// SecondaryFrequencies returns the secondary symbol table
func (h *HistoricalStatistics) SecondaryFrequencies() FrequencyTable { return h.secondaryFrequencies }

// PairFrequencies returns the primary pair table
func (h *HistoricalStatistics) PairFrequencies() PairFrequencyTable { return h.pairFrequencies }

// Empty reports whether no frequency data is available
func (h *HistoricalStatistics) Empty() bool {
	return h.primaryFrequencies.Empty() && h.secondaryFrequencies.Empty() && h.pairFrequencies.Empty()
}

// PrimaryCount returns how many draws contained the primary symbol
func (h *HistoricalStatistics) PrimaryCount(symbol int) int {
	return int(math.Round(h.primaryFrequencies.Get(symbol) * float64(h.drawCount)))
}

// SecondaryCount returns how many draws contained the secondary symbol
func (h *HistoricalStatistics) SecondaryCount(symbol int) int {
	return int(math.Round(h.secondaryFrequencies.Get(symbol) * float64(h.drawCount)))
}

// PrimaryGap returns the number of draws since the primary symbol last appeared.
// Symbols never seen (or without recency data) report the full history length.
func (h *HistoricalStatistics) PrimaryGap(symbol int) int {
	return gap(h.primaryLastSeen, symbol, len(h.draws))
}

// SecondaryGap is PrimaryGap for the secondary segment
func (h *HistoricalStatistics) SecondaryGap(symbol int) int {
	return gap(h.secondaryLastSeen, symbol, len(h.draws))
}

func gap(lastSeen []int, symbol, total int) int {
	if symbol <= 0 || symbol >= len(lastSeen) || lastSeen[symbol] < 0 {
		return total
	}
	return total - 1 - lastSeen[symbol]
}

// Recent returns the last n draws, oldest first
func (h *HistoricalStatistics) Recent(n int) []domain.Draw {
	if n <= 0 {
		return nil
	}
	if n >= len(h.draws) {
		return h.draws
	}
	return h.draws[len(h.draws)-n:]
}

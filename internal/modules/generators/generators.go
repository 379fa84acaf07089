// Package generators implements the heuristic prediction strategies that work
// from historical statistics alone: statistical, hot, cold and rare, plus the
// random fallback.
package generators

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/statistics"
	"github.com/aristath/eurogenius/pkg/formulas"
	"github.com/rs/zerolog"
)

const (
	// primaryWindowSpread and secondaryWindowSpread bound how far the selection
	// window slides down the ranking between consecutive combinations
	primaryWindowSpread   = 10
	secondaryWindowSpread = 5

	confidenceStep = 0.05

	// rareReplaceProb is the chance per segment that a rare pick gets one random symbol
	rareReplaceProb = 0.3

	// hotEMAPeriod smooths the per-symbol appearance series of the recent window
	hotEMAPeriod = 5
)

// Generator produces heuristic combinations from read-only statistics
type Generator struct {
	game  domain.GameConfig
	stats *statistics.HistoricalStatistics
	log   zerolog.Logger
}

// NewGenerator creates a generator over stats
func NewGenerator(game domain.GameConfig, stats *statistics.HistoricalStatistics, log zerolog.Logger) *Generator {
	if stats == nil {
		stats = statistics.Build(game, nil)
	}
	return &Generator{
		game:  game,
		stats: stats,
		log:   log.With().Str("component", "generators").Logger(),
	}
}

// Probabilities are optional predictor vectors (index = symbol). When both are
// valid they adjust confidences and drive the rare strategy.
type Probabilities struct {
	Primary   []float64
	Secondary []float64
}

func (p Probabilities) valid(game domain.GameConfig) bool {
	return len(p.Primary) == game.PrimaryRange+1 && formulas.IsProbabilityVector(p.Primary) &&
		len(p.Secondary) == game.SecondaryRange+1 && formulas.IsProbabilityVector(p.Secondary)
}

// Generate returns n combinations for a heuristic strategy
func (g *Generator) Generate(strategy domain.Strategy, n int, probs Probabilities, rng *rand.Rand) ([]domain.Combination, error) {
	if n <= 0 {
		return []domain.Combination{}, nil
	}

	noHistory := len(g.stats.Draws()) == 0
	if noHistory && (strategy != domain.StrategyRare || !probs.valid(g.game)) {
		g.log.Warn().Str("strategy", string(strategy)).Msg("No draw history available, generating random combinations")
		return g.adjust(g.Random(n, rng), probs), nil
	}

	var combos []domain.Combination
	switch strategy {
	case domain.StrategyStatistical:
		combos = g.Statistical(n)
	case domain.StrategyHot:
		combos = g.Hot(n)
	case domain.StrategyCold:
		combos = g.Cold(n)
	case domain.StrategyRare:
		combos = g.Rare(n, probs, rng)
	default:
		return nil, fmt.Errorf("%w: %q is not a heuristic strategy", domain.ErrInvalidConfig, strategy)
	}

	return g.adjust(combos, probs), nil
}

// Statistical takes sliding windows over symbols ranked by overall frequency
func (g *Generator) Statistical(n int) []domain.Combination {
	primary := rankSymbols(g.game.PrimaryRange, g.stats.PrimaryFrequencies().Get)
	secondary := rankSymbols(g.game.SecondaryRange, g.stats.SecondaryFrequencies().Get)
	return g.windows(primary, secondary, n, 0.7, domain.SourceStatistical)
}

// Hot ranks symbols by an exponential moving average of their appearances over
// the recent window, so the latest draws weigh most
func (g *Generator) Hot(n int) []domain.Combination {
	recent := g.stats.Recent(statistics.DefaultRecentWindow)

	primaryHeat := hotness(recent, g.game.PrimaryRange, func(d domain.Draw) []int { return d.Primary })
	secondaryHeat := hotness(recent, g.game.SecondaryRange, func(d domain.Draw) []int { return d.Secondary })

	primary := rankSymbols(g.game.PrimaryRange, func(s int) float64 { return primaryHeat[s] })
	secondary := rankSymbols(g.game.SecondaryRange, func(s int) float64 { return secondaryHeat[s] })
	return g.windows(primary, secondary, n, 0.7, domain.SourceHot)
}

// Cold ranks symbols by the number of draws since they last appeared
func (g *Generator) Cold(n int) []domain.Combination {
	primary := rankSymbols(g.game.PrimaryRange, func(s int) float64 { return float64(g.stats.PrimaryGap(s)) })
	secondary := rankSymbols(g.game.SecondaryRange, func(s int) float64 { return float64(g.stats.SecondaryGap(s)) })
	return g.windows(primary, secondary, n, 0.6, domain.SourceCold)
}

// Rare picks the least likely symbols (by predictor probability, or by historical
// frequency when no prediction is available) and randomly swaps one symbol per
// segment with probability 0.3
func (g *Generator) Rare(n int, probs Probabilities, rng *rand.Rand) []domain.Combination {
	primaryScore := g.stats.PrimaryFrequencies().Get
	secondaryScore := g.stats.SecondaryFrequencies().Get
	if probs.valid(g.game) {
		primaryScore = func(s int) float64 { return probs.Primary[s] }
		secondaryScore = func(s int) float64 { return probs.Secondary[s] }
	}

	primaryRank := rankSymbols(g.game.PrimaryRange, func(s int) float64 { return -primaryScore(s) })
	secondaryRank := rankSymbols(g.game.SecondaryRange, func(s int) float64 { return -secondaryScore(s) })

	combos := make([]domain.Combination, 0, n)
	for i := 0; i < n; i++ {
		primary := append([]int(nil), primaryRank[:g.game.PrimaryCount]...)
		secondary := append([]int(nil), secondaryRank[:g.game.SecondaryCount]...)

		if rng.Float64() < rareReplaceProb {
			replaceOne(primary, g.game.PrimaryRange, rng)
		}
		if rng.Float64() < rareReplaceProb {
			replaceOne(secondary, g.game.SecondaryRange, rng)
		}
		sort.Ints(primary)
		sort.Ints(secondary)

		combos = append(combos, domain.Combination{
			Primary:    primary,
			Secondary:  secondary,
			Confidence: formulas.Round(0.2+0.3*rng.Float64(), 2),
			Source:     domain.SourceRare,
		})
	}
	return combos
}

// Random draws n uniformly random combinations
func (g *Generator) Random(n int, rng *rand.Rand) []domain.Combination {
	combos := make([]domain.Combination, 0, n)
	for i := 0; i < n; i++ {
		combos = append(combos, domain.Combination{
			Primary:    sample(g.game.PrimaryRange, g.game.PrimaryCount, rng),
			Secondary:  sample(g.game.SecondaryRange, g.game.SecondaryCount, rng),
			Confidence: formulas.Round(0.1+0.8*rng.Float64(), 2),
			Source:     domain.SourceRandom,
		})
	}
	return combos
}

// windows slides a k-wide window down each ranking, one step per combination,
// with confidence decreasing from base
func (g *Generator) windows(primary, secondary []int, n int, base float64, source domain.Source) []domain.Combination {
	primarySpread := min(primaryWindowSpread, len(primary)-g.game.PrimaryCount+1)
	secondarySpread := min(secondaryWindowSpread, len(secondary)-g.game.SecondaryCount+1)

	combos := make([]domain.Combination, 0, n)
	for i := 0; i < n; i++ {
		ps := i % primarySpread
		ss := i % secondarySpread
		combos = append(combos, domain.Combination{
			Primary:    domain.SortedCopy(primary[ps : ps+g.game.PrimaryCount]),
			Secondary:  domain.SortedCopy(secondary[ss : ss+g.game.SecondaryCount]),
			Confidence: formulas.Round(formulas.Clamp(base-float64(i)*confidenceStep, 0, 1), 2),
			Source:     source,
		})
	}
	return combos
}

// adjust blends each confidence with the predictor support of its symbols:
// (confidence + 0.7*mean primary probability + 0.3*mean secondary probability) / 2
func (g *Generator) adjust(combos []domain.Combination, probs Probabilities) []domain.Combination {
	if !probs.valid(g.game) {
		return combos
	}
	for i := range combos {
		var p, s float64
		for _, n := range combos[i].Primary {
			p += probs.Primary[n]
		}
		for _, n := range combos[i].Secondary {
			s += probs.Secondary[n]
		}
		p /= float64(len(combos[i].Primary))
		s /= float64(len(combos[i].Secondary))
		combos[i].Confidence = formulas.Round((combos[i].Confidence+0.7*p+0.3*s)/2, 2)
	}
	return combos
}

// rankSymbols orders symbols 1..size by score descending; ties keep the lower symbol first
func rankSymbols(size int, score func(int) float64) []int {
	symbols := make([]int, size)
	for i := range symbols {
		symbols[i] = i + 1
	}
	sort.SliceStable(symbols, func(i, j int) bool {
		return score(symbols[i]) > score(symbols[j])
	})
	return symbols
}

// hotness returns, per symbol, the EMA of its 0/1 appearance series over draws
func hotness(draws []domain.Draw, size int, segment func(domain.Draw) []int) []float64 {
	heat := make([]float64, size+1)
	if len(draws) == 0 {
		return heat
	}

	series := make([][]float64, size+1)
	for s := 1; s <= size; s++ {
		series[s] = make([]float64, len(draws))
	}
	for i, d := range draws {
		for _, s := range segment(d) {
			if s >= 1 && s <= size {
				series[s][i] = 1
			}
		}
	}

	for s := 1; s <= size; s++ {
		if ema := formulas.CalculateEMA(series[s], hotEMAPeriod); ema != nil {
			heat[s] = *ema
		}
	}
	return heat
}

func replaceOne(segment []int, max int, rng *rand.Rand) {
	present := make(map[int]bool, len(segment))
	for _, v := range segment {
		present[v] = true
	}
	if len(present) >= max {
		return
	}
	unused := make([]int, 0, max-len(present))
	for v := 1; v <= max; v++ {
		if !present[v] {
			unused = append(unused, v)
		}
	}
	segment[rng.IntN(len(segment))] = unused[rng.IntN(len(unused))]
}

func sample(n, k int, rng *rand.Rand) []int {
	perm := rng.Perm(n)[:k]
	for i := range perm {
		perm[i]++
	}
	sort.Ints(perm)
	return perm
}

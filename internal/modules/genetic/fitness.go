package genetic

import (
	"math/rand/v2"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/statistics"
	"github.com/aristath/eurogenius/pkg/formulas"
)

// Term weights of the fitness function (sum to 1.0)
const (
	RarityWeight      = 0.3
	BalanceWeight     = 0.2
	OriginalityWeight = 0.3
	PairWeight        = 0.2

	// UnseenPairScore is the floor for primary pairs never observed together
	UnseenPairScore = 0.1
)

// FitnessBreakdown exposes the four terms behind a fitness value
type FitnessBreakdown struct {
	Rarity           float64 `json:"rarity"`
	Balance          float64 `json:"balance"`
	Originality      float64 `json:"originality"`
	PairPlausibility float64 `json:"pair_plausibility"`
	Total            float64 `json:"total"`
}

// FitnessEvaluator scores candidates against read-only historical statistics.
// Terms whose tables are unavailable are replaced by a uniform placeholder drawn
// from the stream passed to Evaluate.
type FitnessEvaluator struct {
	game  domain.GameConfig
	stats *statistics.HistoricalStatistics
}

// NewFitnessEvaluator creates an evaluator over stats. A nil stats behaves like an empty history.
func NewFitnessEvaluator(game domain.GameConfig, stats *statistics.HistoricalStatistics) *FitnessEvaluator {
	if stats == nil {
		stats = statistics.Build(game, nil)
	}
	return &FitnessEvaluator{game: game, stats: stats}
}

// Evaluate returns the weighted fitness in [0,1]
func (e *FitnessEvaluator) Evaluate(c *Candidate, rng *rand.Rand) float64 {
	return e.Breakdown(c, rng).Total
}

// Breakdown computes every term and the clamped weighted total.
// Placeholders are drawn in term order: rarity, originality, pair plausibility.
func (e *FitnessEvaluator) Breakdown(c *Candidate, rng *rand.Rand) FitnessBreakdown {
	b := FitnessBreakdown{
		Rarity:           e.rarity(c, rng),
		Balance:          e.balance(c),
		Originality:      e.originality(c, rng),
		PairPlausibility: e.pairPlausibility(c, rng),
	}
	b.Total = formulas.Clamp(
		RarityWeight*b.Rarity+
			BalanceWeight*b.Balance+
			OriginalityWeight*b.Originality+
			PairWeight*b.PairPlausibility,
		0, 1)
	return b
}

// rarity is the mean of 1-frequency per segment, averaged across both segments
func (e *FitnessEvaluator) rarity(c *Candidate, rng *rand.Rand) float64 {
	primary := e.stats.PrimaryFrequencies()
	secondary := e.stats.SecondaryFrequencies()
	if primary.Empty() || secondary.Empty() {
		return rng.Float64()
	}

	var p, s float64
	for _, n := range c.Primary {
		p += 1 - primary.Get(n)
	}
	for _, n := range c.Secondary {
		s += 1 - secondary.Get(n)
	}
	p /= float64(len(c.Primary))
	s /= float64(len(c.Secondary))

	return (p + s) / 2
}

// balance rewards an even split between the lower and upper half of the primary range
func (e *FitnessEvaluator) balance(c *Candidate) float64 {
	half := e.game.PrimaryRange / 2
	low := 0
	for _, n := range c.Primary {
		if n <= half {
			low++
		}
	}
	lowFraction := float64(low) / float64(len(c.Primary))
	diff := lowFraction - 0.5
	if diff < 0 {
		diff = -diff
	}
	return 1 - diff*2
}

// originality is one minus the mean similarity to every historical draw
func (e *FitnessEvaluator) originality(c *Candidate, rng *rand.Rand) float64 {
	draws := e.stats.Draws()
	if len(draws) == 0 {
		return rng.Float64()
	}

	inPrimary := make([]bool, e.game.PrimaryRange+1)
	for _, n := range c.Primary {
		inPrimary[n] = true
	}
	inSecondary := make([]bool, e.game.SecondaryRange+1)
	for _, n := range c.Secondary {
		inSecondary[n] = true
	}

	k1 := float64(e.game.PrimaryCount)
	k2 := float64(e.game.SecondaryCount)
	var total float64
	for _, d := range draws {
		sharedPrimary, sharedSecondary := 0, 0
		for _, n := range d.Primary {
			if n < len(inPrimary) && inPrimary[n] {
				sharedPrimary++
			}
		}
		for _, n := range d.Secondary {
			if n < len(inSecondary) && inSecondary[n] {
				sharedSecondary++
			}
		}
		total += (float64(sharedPrimary)/k1 + float64(sharedSecondary)/k2) / 2
	}

	return 1 - total/float64(len(draws))
}

// pairPlausibility is the mean pair score over all primary pairs of the candidate
func (e *FitnessEvaluator) pairPlausibility(c *Candidate, rng *rand.Rand) float64 {
	pairs := e.stats.PairFrequencies()
	if pairs.Empty() {
		return rng.Float64()
	}

	var sum float64
	count := 0
	for i, a := range c.Primary {
		for _, b := range c.Primary[i+1:] {
			score, ok := pairs.Lookup(a, b)
			if !ok {
				score = UnseenPairScore
			}
			sum += score
			count++
		}
	}
	// A single primary symbol has no pairs to judge
	if count == 0 {
		return UnseenPairScore
	}
	return sum / float64(count)
}

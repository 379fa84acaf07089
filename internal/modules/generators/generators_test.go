package generators

import (
	"errors"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/statistics"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func assertValid(t *testing.T, game domain.GameConfig, combos []domain.Combination, source domain.Source) {
	t.Helper()
	for _, c := range combos {
		assert.NoError(t, game.CheckCombination(c.Primary, c.Secondary))
		assert.True(t, sort.IntsAreSorted(c.Primary))
		assert.True(t, sort.IntsAreSorted(c.Secondary))
		assert.Equal(t, source, c.Source)
		assert.GreaterOrEqual(t, c.Confidence, 0.0)
		assert.LessOrEqual(t, c.Confidence, 1.0)
	}
}

// skewedHistory makes primary 4-7 and secondary 1 the most frequent symbols;
// the last six draws only contain primary 40-44 and secondary 11-12
func skewedHistory() []domain.Draw {
	var draws []domain.Draw
	for i := 0; i < 60; i++ {
		draws = append(draws, domain.Draw{
			Primary:   []int{1 + i%3, 4, 5, 6, 7},
			Secondary: []int{1, 2 + i%2},
		})
	}
	for i := 0; i < 6; i++ {
		draws = append(draws, domain.Draw{Primary: []int{40, 41, 42, 43, 44}, Secondary: []int{11, 12}})
	}
	return draws
}

func newTestGenerator(draws []domain.Draw) *Generator {
	game := domain.DefaultGameConfig()
	return NewGenerator(game, statistics.Build(game, draws), zerolog.Nop())
}

func flatProbabilities(game domain.GameConfig, primary, secondary float64) Probabilities {
	p := Probabilities{
		Primary:   make([]float64, game.PrimaryRange+1),
		Secondary: make([]float64, game.SecondaryRange+1),
	}
	for s := 1; s <= game.PrimaryRange; s++ {
		p.Primary[s] = primary
	}
	for s := 1; s <= game.SecondaryRange; s++ {
		p.Secondary[s] = secondary
	}
	return p
}

func TestStatistical(t *testing.T) {
	g := newTestGenerator(skewedHistory())
	combos := g.Statistical(3)

	require.Len(t, combos, 3)
	assertValid(t, g.game, combos, domain.SourceStatistical)

	// Ranking: 4-7 (60 draws), 1-3 (20), 40-44 (6)
	assert.Equal(t, []int{1, 4, 5, 6, 7}, combos[0].Primary)
	assert.Equal(t, []int{1, 2, 5, 6, 7}, combos[1].Primary)
	assert.Equal(t, []int{1, 2}, combos[0].Secondary)
	assert.Equal(t, []int{2, 3}, combos[1].Secondary)
	assert.Equal(t, []int{3, 11}, combos[2].Secondary)

	assert.Equal(t, 0.7, combos[0].Confidence)
	assert.Equal(t, 0.65, combos[1].Confidence)
	assert.Equal(t, 0.6, combos[2].Confidence)
}

func TestStatistical_WindowWraps(t *testing.T) {
	g := newTestGenerator(skewedHistory())
	combos := g.Statistical(12)

	require.Len(t, combos, 12)
	assertValid(t, g.game, combos, domain.SourceStatistical)
	assert.Equal(t, combos[0].Primary, combos[10].Primary)
	assert.Equal(t, combos[1].Secondary, combos[6].Secondary)
}

func TestHot_FavorsLatestDraws(t *testing.T) {
	g := newTestGenerator(skewedHistory())
	combos := g.Hot(2)

	require.Len(t, combos, 2)
	assertValid(t, g.game, combos, domain.SourceHot)
	assert.Equal(t, []int{40, 41, 42, 43, 44}, combos[0].Primary)
	assert.Equal(t, []int{11, 12}, combos[0].Secondary)
}

func TestCold_FavorsLongestGaps(t *testing.T) {
	g := newTestGenerator(skewedHistory())
	combos := g.Cold(2)

	require.Len(t, combos, 2)
	assertValid(t, g.game, combos, domain.SourceCold)
	// Never-drawn symbols have the longest gap; ties keep the lower symbol
	assert.Equal(t, []int{8, 9, 10, 11, 12}, combos[0].Primary)
	assert.Equal(t, []int{4, 5}, combos[0].Secondary)
	assert.Equal(t, 0.6, combos[0].Confidence)
	assert.Equal(t, 0.55, combos[1].Confidence)
}

func TestRare_UsesProbabilities(t *testing.T) {
	g := newTestGenerator(skewedHistory())
	probs := flatProbabilities(g.game, 0.5, 0.5)
	for s := 46; s <= 50; s++ {
		probs.Primary[s] = 0.01
	}
	probs.Secondary[11], probs.Secondary[12] = 0.01, 0.01

	combos := g.Rare(50, probs, testRand(4))
	require.Len(t, combos, 50)
	assertValid(t, g.game, combos, domain.SourceRare)

	for _, c := range combos {
		rare := 0
		for _, s := range c.Primary {
			if s >= 46 {
				rare++
			}
		}
		// At most one symbol per segment is swapped
		assert.GreaterOrEqual(t, rare, 4)
		assert.GreaterOrEqual(t, c.Confidence, 0.2)
		assert.LessOrEqual(t, c.Confidence, 0.5)
	}
}

func TestRare_FallsBackToFrequencies(t *testing.T) {
	g := newTestGenerator(skewedHistory())
	combos := g.Rare(200, Probabilities{}, testRand(9))

	unchanged := 0
	for _, c := range combos {
		if assert.ObjectsAreEqual([]int{8, 9, 10, 11, 12}, c.Primary) {
			unchanged++
		}
	}
	// Roughly 70% of the picks keep the untouched least-frequent symbols
	assert.Greater(t, unchanged, 100)
}

func TestGenerate(t *testing.T) {
	game := domain.DefaultGameConfig()

	t.Run("heuristic strategies", func(t *testing.T) {
		g := newTestGenerator(skewedHistory())
		for strategy, source := range map[domain.Strategy]domain.Source{
			domain.StrategyStatistical: domain.SourceStatistical,
			domain.StrategyHot:         domain.SourceHot,
			domain.StrategyCold:        domain.SourceCold,
			domain.StrategyRare:        domain.SourceRare,
		} {
			combos, err := g.Generate(strategy, 5, Probabilities{}, testRand(1))
			require.NoError(t, err)
			require.Len(t, combos, 5)
			assertValid(t, game, combos, source)
		}
	})

	t.Run("ensemble strategy rejected", func(t *testing.T) {
		g := newTestGenerator(skewedHistory())
		_, err := g.Generate(domain.StrategyBalanced, 5, Probabilities{}, testRand(1))
		assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
	})

	t.Run("no history falls back to random", func(t *testing.T) {
		g := newTestGenerator(nil)
		combos, err := g.Generate(domain.StrategyHot, 4, Probabilities{}, testRand(1))
		require.NoError(t, err)
		require.Len(t, combos, 4)
		assertValid(t, game, combos, domain.SourceRandom)
	})

	t.Run("probabilities adjust confidence", func(t *testing.T) {
		g := newTestGenerator(skewedHistory())
		combos, err := g.Generate(domain.StrategyStatistical, 1, flatProbabilities(game, 0.4, 0.2), testRand(1))
		require.NoError(t, err)
		// (0.7 + 0.7*0.4 + 0.3*0.2) / 2
		assert.Equal(t, 0.52, combos[0].Confidence)
	})

	t.Run("zero count", func(t *testing.T) {
		g := newTestGenerator(skewedHistory())
		combos, err := g.Generate(domain.StrategyCold, 0, Probabilities{}, testRand(1))
		require.NoError(t, err)
		assert.Empty(t, combos)
	})
}

func TestRandom(t *testing.T) {
	g := newTestGenerator(nil)
	combos := g.Random(100, testRand(3))
	require.Len(t, combos, 100)
	assertValid(t, g.game, combos, domain.SourceRandom)
	for _, c := range combos {
		assert.GreaterOrEqual(t, c.Confidence, 0.1)
		assert.LessOrEqual(t, c.Confidence, 0.9)
	}
}

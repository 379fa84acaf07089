package ensemble

import (
	"errors"
	"math"
	"testing"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// favoredPrediction puts 0.9 on primary 1-5 and secondary 1-2, zero elsewhere
func favoredPrediction(game domain.GameConfig) *Prediction {
	p := &Prediction{
		Primary:   make([]float64, game.PrimaryRange+1),
		Secondary: make([]float64, game.SecondaryRange+1),
	}
	for s := 1; s <= 5; s++ {
		p.Primary[s] = 0.9
	}
	p.Secondary[1], p.Secondary[2] = 0.9, 0.9
	return p
}

// fitButImprobable has high fitness and zero predictor support;
// probableButUnfit is the opposite
func disagreeingCandidates() genetic.Population {
	return genetic.Population{
		{Primary: []int{10, 20, 30, 40, 50}, Secondary: []int{5, 6}, Fitness: 0.9, Evaluated: true},
		{Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}, Fitness: 0.2, Evaluated: true},
	}
}

func TestAggregate_StrategiesRankDifferently(t *testing.T) {
	game := domain.DefaultGameConfig()
	agg := NewAggregator(game, nil, zerolog.Nop())

	balanced, err := agg.Aggregate(Input{
		Candidates: disagreeingCandidates(),
		Prediction: favoredPrediction(game),
		Strategy:   domain.StrategyBalanced,
	})
	require.NoError(t, err)
	risky, err := agg.Aggregate(Input{
		Candidates: disagreeingCandidates(),
		Prediction: favoredPrediction(game),
		Strategy:   domain.StrategyRisky,
	})
	require.NoError(t, err)

	require.Len(t, balanced, 2)
	require.Len(t, risky, 2)

	// balanced: (0.4*4.5 + 0.4*4.5 + 0.2*1.0) / 1.0 = 3.8 vs 0.2*4.5 = 0.9
	assert.Equal(t, []int{1, 2, 3, 4, 5}, balanced[0].Primary)
	assert.InDelta(t, 3.8, balanced[0].Confidence, 1e-9)
	assert.InDelta(t, 0.9, balanced[1].Confidence, 1e-9)

	// risky: 0.7*4.5 / 1.1 = 2.9 vs (0.2*4.5 + 0.2*4.5 + 0.7*1.0) / 1.1 = 2.3
	assert.Equal(t, []int{10, 20, 30, 40, 50}, risky[0].Primary)
	assert.InDelta(t, 2.9, risky[0].Confidence, 1e-9)
	assert.InDelta(t, 2.3, risky[1].Confidence, 1e-9)

	for _, c := range append(balanced, risky...) {
		assert.Equal(t, domain.SourceEnsemble, c.Source)
	}
}

func TestAggregate_DirectFirstAndTruncated(t *testing.T) {
	game := domain.DefaultGameConfig()
	agg := NewAggregator(game, nil, zerolog.Nop())
	pred := favoredPrediction(game)

	results, err := agg.Aggregate(Input{
		Direct:     DirectCombination(game, pred),
		Candidates: disagreeingCandidates(),
		Prediction: pred,
		Strategy:   domain.StrategyConservative,
		Count:      2,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, domain.SourceDirect, results[0].Source)
	assert.Equal(t, DirectConfidence, results[0].Confidence)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, results[0].Primary)
	assert.Equal(t, []int{1, 2}, results[0].Secondary)
	assert.Equal(t, domain.SourceEnsemble, results[1].Source)
}

func TestAggregate_MalformedVectorsDegradeToGenetic(t *testing.T) {
	game := domain.DefaultGameConfig()
	agg := NewAggregator(game, nil, zerolog.Nop())

	nanPrimary := favoredPrediction(game)
	nanPrimary.Primary[3] = math.NaN()
	negativeSecondary := favoredPrediction(game)
	negativeSecondary.Secondary[1] = -0.5

	tests := []struct {
		name string
		pred *Prediction
	}{
		{"no prediction", nil},
		{"short vectors", &Prediction{Primary: []float64{0, 0.5}, Secondary: []float64{0, 0.5}}},
		{"nan primary", nanPrimary},
		{"negative secondary", negativeSecondary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := agg.Aggregate(Input{
				Candidates: disagreeingCandidates(),
				Prediction: tt.pred,
				Strategy:   domain.StrategyBalanced,
			})
			require.NoError(t, err)
			require.Len(t, results, 2)
			for i := 1; i < len(results); i++ {
				assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
			}
		})
	}

	// Without any probabilities only the genetic sub-score remains: 0.2*4.5/1.0
	results, err := agg.Aggregate(Input{Candidates: disagreeingCandidates(), Strategy: domain.StrategyBalanced})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, results[0].Confidence, 1e-9)
	assert.InDelta(t, 0.2, results[1].Confidence, 1e-9)
}

func TestAggregate_RankingIsNonIncreasing(t *testing.T) {
	game := domain.DefaultGameConfig()
	agg := NewAggregator(game, nil, zerolog.Nop())

	pop := make(genetic.Population, 0, 30)
	for i := 0; i < 30; i++ {
		pop = append(pop, &genetic.Candidate{
			Primary:   []int{1 + i%10, 11 + i%10, 21 + i%10, 31 + i%10, 41 + i%10},
			Secondary: []int{1 + i%6, 7 + i%6},
			Fitness:   float64(i%7) / 7,
			Evaluated: true,
		})
	}

	for _, strategy := range []domain.Strategy{domain.StrategyBalanced, domain.StrategyConservative, domain.StrategyRisky} {
		results, err := agg.Aggregate(Input{Candidates: pop, Prediction: favoredPrediction(game), Strategy: strategy})
		require.NoError(t, err)
		require.Len(t, results, 30)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
		}
		for _, r := range results {
			assert.GreaterOrEqual(t, r.Confidence, 0.0)
			assert.LessOrEqual(t, r.Confidence, 5.0)
		}
	}
}

func TestAggregate_UnknownStrategy(t *testing.T) {
	agg := NewAggregator(domain.DefaultGameConfig(), nil, zerolog.Nop())
	_, err := agg.Aggregate(Input{Strategy: domain.StrategyHot})
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

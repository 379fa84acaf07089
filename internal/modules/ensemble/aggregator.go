package ensemble

import (
	"math"
	"sort"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/aristath/eurogenius/pkg/formulas"
	"github.com/rs/zerolog"
)

// maxSubScore is the top of the 0-5 confidence scale
const maxSubScore = 5.0

// Input is everything one aggregation consumes
type Input struct {
	Direct     *domain.Combination // Optional predictor pick, emitted first
	Candidates genetic.Population  // Evolved top-K with fitness
	Prediction *Prediction         // Optional probability vectors
	Strategy   domain.Strategy
	Count      int // Maximum number of results; <= 0 keeps everything
}

// Aggregator merges optimizer output and predictor probabilities
type Aggregator struct {
	game    domain.GameConfig
	weights WeightSet
	log     zerolog.Logger
}

// NewAggregator creates an aggregator. A nil weight set uses the defaults.
func NewAggregator(game domain.GameConfig, weights WeightSet, log zerolog.Logger) *Aggregator {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Aggregator{
		game:    game,
		weights: weights,
		log:     log.With().Str("component", "ensemble").Logger(),
	}
}

// Weights returns the strategy weights in use
func (a *Aggregator) Weights() WeightSet {
	return a.weights
}

// Aggregate scores every candidate on the 0-5 scale and returns the list sorted by
// confidence descending (stable) and truncated to in.Count. An unusable probability
// vector contributes a zero sub-score; only an unknown strategy is an error.
func (a *Aggregator) Aggregate(in Input) ([]domain.Combination, error) {
	w, err := a.weights.For(in.Strategy)
	if err != nil {
		return nil, err
	}

	var primaryProbs, secondaryProbs []float64
	if in.Prediction != nil {
		primaryProbs, secondaryProbs = in.Prediction.Primary, in.Prediction.Secondary
	}
	primaryOK := validVector(primaryProbs, a.game.PrimaryRange)
	secondaryOK := validVector(secondaryProbs, a.game.SecondaryRange)
	if !primaryOK {
		a.log.Warn().Int("length", len(primaryProbs)).Msg("Primary probability vector missing or malformed, using zero sub-score")
	}
	if !secondaryOK {
		a.log.Warn().Int("length", len(secondaryProbs)).Msg("Secondary probability vector missing or malformed, using zero sub-score")
	}

	results := make([]domain.Combination, 0, len(in.Candidates)+1)
	if in.Direct != nil {
		direct := *in.Direct
		direct.Confidence = DirectConfidence
		direct.Source = domain.SourceDirect
		results = append(results, direct)
	}

	for _, c := range in.Candidates {
		geneticScore := math.Min(maxSubScore, c.Fitness*maxSubScore)

		var primaryScore, secondaryScore float64
		if primaryOK {
			primaryScore = segmentScore(c.Primary, primaryProbs, a.game.PrimaryCount)
		}
		if secondaryOK {
			secondaryScore = segmentScore(c.Secondary, secondaryProbs, a.game.SecondaryCount)
		}

		confidence := (w.Numbers*primaryScore + w.Stars*secondaryScore + w.Genetic*geneticScore) / w.Sum()

		results = append(results, domain.Combination{
			Primary:    domain.SortedCopy(c.Primary),
			Secondary:  domain.SortedCopy(c.Secondary),
			Confidence: formulas.Round(confidence, 1),
			Source:     domain.SourceEnsemble,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	if in.Count > 0 && len(results) > in.Count {
		results = results[:in.Count]
	}
	return results, nil
}

// segmentScore is min(5, sum of probabilities * 5 / k)
func segmentScore(symbols []int, probs []float64, k int) float64 {
	var sum float64
	for _, s := range symbols {
		if s > 0 && s < len(probs) {
			sum += probs[s]
		}
	}
	return math.Min(maxSubScore, sum*maxSubScore/float64(k))
}

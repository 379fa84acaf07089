package ensemble

import (
	"sort"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/pkg/formulas"
)

// DirectConfidence marks the predictor's own pick as the top of the 0-5 scale
const DirectConfidence = 5.0

// validVector reports whether v is a usable probability vector for symbols [1, size]
func validVector(v []float64, size int) bool {
	return len(v) == size+1 && formulas.IsProbabilityVector(v)
}

// DirectCombination picks the most probable symbols of each segment (ties go to
// the lower symbol). Returns nil unless both vectors are valid.
func DirectCombination(game domain.GameConfig, pred *Prediction) *domain.Combination {
	if pred == nil ||
		!validVector(pred.Primary, game.PrimaryRange) ||
		!validVector(pred.Secondary, game.SecondaryRange) {
		return nil
	}

	return &domain.Combination{
		Primary:    TopSymbols(pred.Primary, game.PrimaryCount),
		Secondary:  TopSymbols(pred.Secondary, game.SecondaryCount),
		Confidence: DirectConfidence,
		Source:     domain.SourceDirect,
	}
}

// TopSymbols returns the k symbols with the highest probability, sorted ascending.
// Index 0 of probs is ignored.
func TopSymbols(probs []float64, k int) []int {
	if len(probs) <= 1 {
		return []int{}
	}
	symbols := make([]int, 0, len(probs)-1)
	for s := 1; s < len(probs); s++ {
		symbols = append(symbols, s)
	}
	sort.SliceStable(symbols, func(i, j int) bool {
		return probs[symbols[i]] > probs[symbols[j]]
	})
	if k > len(symbols) {
		k = len(symbols)
	}
	top := symbols[:k]
	sort.Ints(top)
	return top
}

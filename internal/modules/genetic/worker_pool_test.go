package genetic

import (
	"testing"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/statistics"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestWorkerPool_PreservesOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	game := domain.DefaultGameConfig()
	evaluator := NewFitnessEvaluator(game, statistics.Build(game, historicalDraws(40, 1)))
	rng := newTestRand(12)

	batch := make([]evaluationJob, 25)
	want := make([]float64, len(batch))
	for i := range batch {
		c := RandomCandidate(game, rng)
		batch[i] = evaluationJob{candidate: c, rng: newTestRand(uint64(i + 1))}
		want[i] = evaluator.Evaluate(c, newTestRand(uint64(i+1)))
	}

	got := NewWorkerPool(4).EvaluateBatch(evaluator, batch)
	assert.Equal(t, want, got)
}

func TestWorkerPool_EmptyBatch(t *testing.T) {
	defer goleak.VerifyNone(t)
	assert.Empty(t, NewWorkerPool(3).EvaluateBatch(NewFitnessEvaluator(domain.DefaultGameConfig(), nil), nil))
}

func TestNewWorkerPool_DefaultsToCPUCount(t *testing.T) {
	assert.Positive(t, NewWorkerPool(0).Workers())
	assert.Equal(t, 2, NewWorkerPool(2).Workers())
}

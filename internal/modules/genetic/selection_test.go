package genetic

import (
	"testing"

	"github.com/aristath/eurogenius/pkg/formulas"
	"github.com/stretchr/testify/assert"
)

func TestTournamentSelect_PoolSizeAndClones(t *testing.T) {
	pop := Population{
		{Primary: []int{1}, Fitness: 0.1, Evaluated: true},
		{Primary: []int{2}, Fitness: 0.2, Evaluated: true},
	}

	pool := TournamentSelect(pop, 7, newTestRand(1))
	assert.Len(t, pool, 7)
	for _, c := range pool {
		assert.NotSame(t, pop[0], c)
		assert.NotSame(t, pop[1], c)
	}
}

func TestTournamentSelect_FavorsFitterCandidates(t *testing.T) {
	pop := make(Population, 10)
	for i := range pop {
		pop[i] = &Candidate{Primary: []int{i + 1}, Fitness: float64(i), Evaluated: true}
	}

	pool := TournamentSelect(pop, 1000, newTestRand(3))
	// Best of three uniform picks over 0..9 averages about 7; the population mean is 4.5
	assert.Greater(t, formulas.Mean(pool.Fitnesses()), 5.5)
}

func TestTournamentSelect_SingleCandidate(t *testing.T) {
	pop := Population{{Primary: []int{4}, Fitness: 0.3, Evaluated: true}}
	pool := TournamentSelect(pop, 3, newTestRand(1))
	for _, c := range pool {
		assert.Equal(t, []int{4}, c.Primary)
	}
	assert.Empty(t, TournamentSelect(nil, 3, newTestRand(1)))
}

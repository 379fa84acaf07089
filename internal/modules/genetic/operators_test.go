package genetic

import (
	"testing"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossover_AlwaysAppliedKeepsInvariants(t *testing.T) {
	game := domain.DefaultGameConfig()
	ops := NewOperators(game, 1.0, 0.0)
	rng := newTestRand(99)

	for i := 0; i < 500; i++ {
		p1 := RandomCandidate(game, rng)
		p2 := RandomCandidate(game, rng)
		p1Before, p2Before := p1.Clone(), p2.Clone()

		c1, c2, err := ops.Crossover(p1, p2, rng)
		require.NoError(t, err)

		assertValidCandidate(t, game, c1)
		assertValidCandidate(t, game, c2)
		assert.False(t, c1.Evaluated)
		assert.False(t, c2.Evaluated)
		assert.Equal(t, p1Before, p1, "parent modified")
		assert.Equal(t, p2Before, p2, "parent modified")
	}
}

func TestCrossover_OverlappingParents(t *testing.T) {
	game := domain.DefaultGameConfig()
	ops := NewOperators(game, 1.0, 0.0)
	rng := newTestRand(5)

	// Prefix swaps between these parents always create duplicates that repair must fix
	p1 := &Candidate{Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}}
	p2 := &Candidate{Primary: []int{2, 3, 4, 5, 6}, Secondary: []int{2, 3}}

	for i := 0; i < 200; i++ {
		c1, c2, err := ops.Crossover(p1, p2, rng)
		require.NoError(t, err)
		assertValidCandidate(t, game, c1)
		assertValidCandidate(t, game, c2)
	}
}

func TestCrossover_NeverAppliedKeepsFitness(t *testing.T) {
	game := domain.DefaultGameConfig()
	ops := NewOperators(game, 0.0, 0.0)

	p1 := &Candidate{Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}, Fitness: 0.4, Evaluated: true}
	p2 := &Candidate{Primary: []int{6, 7, 8, 9, 10}, Secondary: []int{3, 4}, Fitness: 0.6, Evaluated: true}

	c1, c2, err := ops.Crossover(p1, p2, newTestRand(1))
	require.NoError(t, err)
	assert.Equal(t, p1, c1)
	assert.Equal(t, p2, c2)
	assert.NotSame(t, p1, c1)
}

func TestMutate(t *testing.T) {
	game := domain.DefaultGameConfig()
	rng := newTestRand(17)

	t.Run("probability one keeps invariants", func(t *testing.T) {
		ops := NewOperators(game, 0.0, 1.0)
		for i := 0; i < 500; i++ {
			c := RandomCandidate(game, rng)
			ops.Mutate(c, rng)
			assertValidCandidate(t, game, c)
		}
	})

	t.Run("probability zero is a no-op", func(t *testing.T) {
		ops := NewOperators(game, 0.0, 0.0)
		c := &Candidate{Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}, Fitness: 0.7, Evaluated: true}
		changed := ops.Mutate(c, rng)
		assert.False(t, changed)
		assert.True(t, c.Evaluated)
		assert.Equal(t, 0.7, c.Fitness)
	})

	t.Run("full secondary range", func(t *testing.T) {
		tight := domain.GameConfig{PrimaryRange: 50, PrimaryCount: 5, SecondaryRange: 2, SecondaryCount: 2}
		ops := NewOperators(tight, 0.0, 1.0)
		for i := 0; i < 100; i++ {
			c := RandomCandidate(tight, rng)
			ops.Mutate(c, rng)
			assertValidCandidate(t, tight, c)
			assert.Equal(t, []int{1, 2}, c.Secondary)
		}
	})
}

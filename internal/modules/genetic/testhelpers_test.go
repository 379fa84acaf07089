package genetic

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/stretchr/testify/assert"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// assertValidCandidate checks size, range, uniqueness and ascending order of both segments
func assertValidCandidate(t *testing.T, game domain.GameConfig, c *Candidate) {
	t.Helper()
	assert.NoError(t, game.CheckCombination(c.Primary, c.Secondary))
	assert.True(t, sort.IntsAreSorted(c.Primary), "primary not sorted: %v", c.Primary)
	assert.True(t, sort.IntsAreSorted(c.Secondary), "secondary not sorted: %v", c.Secondary)
}

func historicalDraws(n int, seed uint64) []domain.Draw {
	game := domain.DefaultGameConfig()
	rng := newTestRand(seed)
	draws := make([]domain.Draw, n)
	for i := range draws {
		c := RandomCandidate(game, rng)
		draws[i] = domain.Draw{Primary: c.Primary, Secondary: c.Secondary}
	}
	return draws
}

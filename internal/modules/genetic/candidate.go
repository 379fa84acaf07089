// Package genetic implements the evolutionary combination optimizer: candidate
// population, fitness scoring, crossover/mutation/repair operators, tournament
// selection and the generational loop, plus persistence of the trained state.
package genetic

import (
	"math/rand/v2"
	"sort"

	"github.com/aristath/eurogenius/internal/domain"
)

// Candidate is the mutable working form of a combination under optimization.
// Fitness is meaningful only while Evaluated is true.
type Candidate struct {
	Primary   []int
	Secondary []int
	Fitness   float64
	Evaluated bool
}

// RandomCandidate builds a valid candidate by taking a prefix of a random
// permutation of each range.
func RandomCandidate(game domain.GameConfig, rng *rand.Rand) *Candidate {
	return &Candidate{
		Primary:   sample(game.PrimaryRange, game.PrimaryCount, rng),
		Secondary: sample(game.SecondaryRange, game.SecondaryCount, rng),
	}
}

// sample returns k distinct sorted values from [1, n]
func sample(n, k int, rng *rand.Rand) []int {
	perm := rng.Perm(n)[:k]
	for i := range perm {
		perm[i]++
	}
	sort.Ints(perm)
	return perm
}

// Clone returns a deep copy
func (c *Candidate) Clone() *Candidate {
	clone := &Candidate{
		Primary:   make([]int, len(c.Primary)),
		Secondary: make([]int, len(c.Secondary)),
		Fitness:   c.Fitness,
		Evaluated: c.Evaluated,
	}
	copy(clone.Primary, c.Primary)
	copy(clone.Secondary, c.Secondary)
	return clone
}

// Invalidate marks the fitness as stale after the genes changed
func (c *Candidate) Invalidate() {
	c.Fitness = 0
	c.Evaluated = false
}

// Normalize sorts both segments ascending
func (c *Candidate) Normalize() {
	sort.Ints(c.Primary)
	sort.Ints(c.Secondary)
}

// Combination converts the candidate into an optimizer-only output record
func (c *Candidate) Combination() domain.Combination {
	return domain.Combination{
		Primary:    domain.SortedCopy(c.Primary),
		Secondary:  domain.SortedCopy(c.Secondary),
		Confidence: c.Fitness,
		Source:     domain.SourceGenetic,
	}
}

// Population is an ordered set of candidates owned by one engine
type Population []*Candidate

// NewPopulation builds size independent random candidates
func NewPopulation(size int, game domain.GameConfig, rng *rand.Rand) Population {
	pop := make(Population, size)
	for i := range pop {
		pop[i] = RandomCandidate(game, rng)
	}
	return pop
}

// Sorted returns a copy ordered by fitness descending. Ties keep insertion order.
func (p Population) Sorted() Population {
	sorted := make(Population, len(p))
	copy(sorted, p)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fitness > sorted[j].Fitness
	})
	return sorted
}

// Top returns the n best candidates, fewer if the population is smaller
func (p Population) Top(n int) Population {
	sorted := p.Sorted()
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Fitnesses returns the fitness of every evaluated candidate
func (p Population) Fitnesses() []float64 {
	values := make([]float64, 0, len(p))
	for _, c := range p {
		if c.Evaluated {
			values = append(values, c.Fitness)
		}
	}
	return values
}

// Unevaluated returns the indices of candidates lacking a fitness value
func (p Population) Unevaluated() []int {
	var idx []int
	for i, c := range p {
		if !c.Evaluated {
			idx = append(idx, i)
		}
	}
	return idx
}

// Combinations converts every candidate into an output record, keeping order
func (p Population) Combinations() []domain.Combination {
	out := make([]domain.Combination, len(p))
	for i, c := range p {
		out[i] = c.Combination()
	}
	return out
}

package genetic

import (
	"fmt"
	"math/rand/v2"

	"github.com/aristath/eurogenius/internal/domain"
)

// Operators holds the crossover and mutation operators for one game layout
type Operators struct {
	game          domain.GameConfig
	crossoverProb float64
	mutationProb  float64
}

// NewOperators creates the operator set
func NewOperators(game domain.GameConfig, crossoverProb, mutationProb float64) *Operators {
	return &Operators{
		game:          game,
		crossoverProb: crossoverProb,
		mutationProb:  mutationProb,
	}
}

// Crossover produces two children from copies of the parents. The primary
// segment gets a one-point prefix swap and the secondary segment a per-position
// swap with probability 0.5; each segment is gated by the crossover probability
// independently. Children are repaired and re-sorted. Parents are not modified.
func (o *Operators) Crossover(p1, p2 *Candidate, rng *rand.Rand) (*Candidate, *Candidate, error) {
	c1, c2 := p1.Clone(), p2.Clone()
	changed := false

	if o.game.PrimaryCount > 1 && rng.Float64() < o.crossoverProb {
		cut := 1 + rng.IntN(o.game.PrimaryCount-1)
		for i := 0; i < cut; i++ {
			c1.Primary[i], c2.Primary[i] = c2.Primary[i], c1.Primary[i]
		}
		if err := repairSegment(c1.Primary, o.game.PrimaryRange, rng); err != nil {
			return nil, nil, fmt.Errorf("failed to repair primary segment: %w", err)
		}
		if err := repairSegment(c2.Primary, o.game.PrimaryRange, rng); err != nil {
			return nil, nil, fmt.Errorf("failed to repair primary segment: %w", err)
		}
		changed = true
	}

	if rng.Float64() < o.crossoverProb {
		for i := 0; i < o.game.SecondaryCount; i++ {
			if rng.Float64() < 0.5 {
				c1.Secondary[i], c2.Secondary[i] = c2.Secondary[i], c1.Secondary[i]
			}
		}
		if err := repairSegment(c1.Secondary, o.game.SecondaryRange, rng); err != nil {
			return nil, nil, fmt.Errorf("failed to repair secondary segment: %w", err)
		}
		if err := repairSegment(c2.Secondary, o.game.SecondaryRange, rng); err != nil {
			return nil, nil, fmt.Errorf("failed to repair secondary segment: %w", err)
		}
		changed = true
	}

	c1.Normalize()
	c2.Normalize()
	if changed {
		c1.Invalidate()
		c2.Invalidate()
	}
	return c1, c2, nil
}

// Mutate resamples each gene with the mutation probability, rejecting values
// present elsewhere in the same segment, then re-sorts. Returns whether any gene changed.
func (o *Operators) Mutate(c *Candidate, rng *rand.Rand) bool {
	changed := mutateSegment(c.Primary, o.game.PrimaryRange, o.mutationProb, rng)
	if mutateSegment(c.Secondary, o.game.SecondaryRange, o.mutationProb, rng) {
		changed = true
	}
	c.Normalize()
	if changed {
		c.Invalidate()
	}
	return changed
}

func mutateSegment(segment []int, max int, prob float64, rng *rand.Rand) bool {
	present := make([]bool, max+1)
	for _, v := range segment {
		present[v] = true
	}

	changed := false
	for i, old := range segment {
		if rng.Float64() >= prob {
			continue
		}
		// The gene's own value is allowed to come back
		present[old] = false
		v := drawUnused(present, max, rng)
		present[v] = true
		if v != old {
			segment[i] = v
			changed = true
		}
	}
	return changed
}

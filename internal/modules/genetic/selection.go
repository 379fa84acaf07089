package genetic

import "math/rand/v2"

// TournamentSize is the number of contestants per tournament
const TournamentSize = 3

// TournamentSelect builds a breeding pool of n clones. Each slot samples
// TournamentSize candidates uniformly with replacement and keeps the fittest;
// ties go to the contestant drawn first.
func TournamentSelect(pop Population, n int, rng *rand.Rand) Population {
	pool := make(Population, 0, n)
	if len(pop) == 0 {
		return pool
	}

	for len(pool) < n {
		best := pop[rng.IntN(len(pop))]
		for i := 1; i < TournamentSize; i++ {
			contender := pop[rng.IntN(len(pop))]
			if contender.Fitness > best.Fitness {
				best = contender
			}
		}
		pool = append(pool, best.Clone())
	}
	return pool
}

package utils

import "math/rand/v2"

// NewRand returns a PCG-backed stream for seed. A zero seed picks a random one;
// the effective seed is returned so runs can be reproduced from logs.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = rand.Uint64()
		// Zero is reserved for "random"
		if seed == 0 {
			seed = 1
		}
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}

// ChildRand derives an independent stream from parent. Consuming parent in a fixed
// order keeps derived streams reproducible regardless of which goroutine uses them.
func ChildRand(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(parent.Uint64(), parent.Uint64()))
}

package genetic

import (
	"fmt"
	"math/rand/v2"
)

// maxRepairAttempts bounds rejection sampling per slot before falling back to
// an exhaustive search of the unused values.
const maxRepairAttempts = 64

// repairSegment restores uniqueness in place. The first occurrence of each value
// is kept; later duplicates (and out-of-range values) are replaced by values
// drawn uniformly from [1, max] that are not present in the segment.
func repairSegment(segment []int, max int, rng *rand.Rand) error {
	if len(segment) > max {
		return fmt.Errorf("cannot repair segment of %d values within range [1,%d]", len(segment), max)
	}

	present := make([]bool, max+1)
	var slots []int
	for i, v := range segment {
		if v < 1 || v > max || present[v] {
			slots = append(slots, i)
			continue
		}
		present[v] = true
	}

	for _, i := range slots {
		v := drawUnused(present, max, rng)
		segment[i] = v
		present[v] = true
	}
	return nil
}

// drawUnused picks a value in [1, max] with present[v] == false. At least one
// such value must exist.
func drawUnused(present []bool, max int, rng *rand.Rand) int {
	for attempt := 0; attempt < maxRepairAttempts; attempt++ {
		v := rng.IntN(max) + 1
		if !present[v] {
			return v
		}
	}

	unused := make([]int, 0, max)
	for v := 1; v <= max; v++ {
		if !present[v] {
			unused = append(unused, v)
		}
	}
	return unused[rng.IntN(len(unused))]
}

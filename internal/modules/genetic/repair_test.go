package genetic

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertUniqueInRange(t *testing.T, segment []int, max int) {
	t.Helper()
	seen := make(map[int]bool, len(segment))
	for _, v := range segment {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, max)
		assert.False(t, seen[v], "duplicate %d in %v", v, segment)
		seen[v] = true
	}
}

func TestRepairSegment(t *testing.T) {
	tests := []struct {
		name    string
		segment []int
		max     int
	}{
		{"already unique", []int{1, 7, 9, 20, 33}, 50},
		{"one duplicate", []int{4, 4, 9, 20, 33}, 50},
		{"all equal", []int{5, 5, 5, 5, 5}, 50},
		{"secondary duplicate", []int{3, 3}, 12},
		{"out of range values", []int{0, 51, 3, 4, 5}, 50},
		{"range plus one", []int{2, 2, 2, 2, 2}, 6},
	}

	rng := newTestRand(42)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				segment := append([]int(nil), tt.segment...)
				require.NoError(t, repairSegment(segment, tt.max, rng))
				assert.Len(t, segment, len(tt.segment))
				assertUniqueInRange(t, segment, tt.max)
			}
		})
	}
}

func TestRepairSegment_KeepsFirstOccurrence(t *testing.T) {
	segment := []int{8, 3, 8, 11, 3}
	require.NoError(t, repairSegment(segment, 50, newTestRand(1)))

	assert.Equal(t, 8, segment[0])
	assert.Equal(t, 3, segment[1])
	assert.Equal(t, 11, segment[3])
	assertUniqueInRange(t, segment, 50)
}

func TestRepairSegment_FullRangeUsesComplement(t *testing.T) {
	// Segment length equals range size: rejection sampling alone can stall,
	// the complement fallback must still fill every slot.
	rng := newTestRand(7)
	for i := 0; i < 200; i++ {
		segment := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
		require.NoError(t, repairSegment(segment, 10, rng))
		sorted := append([]int(nil), segment...)
		sort.Ints(sorted)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, sorted)
	}
}

func TestRepairSegment_TooLong(t *testing.T) {
	err := repairSegment([]int{1, 1, 1}, 2, newTestRand(1))
	assert.Error(t, err)
}

// Package domain provides core domain models and types.
package domain

import (
	"fmt"
	"sort"
	"time"
)

// GameConfig describes the shape of a combination: PrimaryCount distinct symbols
// from [1, PrimaryRange] plus SecondaryCount distinct symbols from [1, SecondaryRange].
type GameConfig struct {
	PrimaryRange   int `json:"primary_range" msgpack:"primary_range"`
	PrimaryCount   int `json:"primary_count" msgpack:"primary_count"`
	SecondaryRange int `json:"secondary_range" msgpack:"secondary_range"`
	SecondaryCount int `json:"secondary_count" msgpack:"secondary_count"`
}

// DefaultGameConfig returns the EuroMillions layout (5 of 50, 2 of 12)
func DefaultGameConfig() GameConfig {
	return GameConfig{
		PrimaryRange:   50,
		PrimaryCount:   5,
		SecondaryRange: 12,
		SecondaryCount: 2,
	}
}

// Validate rejects non-positive sizes and counts larger than their range
func (g GameConfig) Validate() error {
	if g.PrimaryRange <= 0 || g.PrimaryCount <= 0 {
		return fmt.Errorf("%w: primary range and count must be positive (range=%d, count=%d)",
			ErrInvalidConfig, g.PrimaryRange, g.PrimaryCount)
	}
	if g.SecondaryRange <= 0 || g.SecondaryCount <= 0 {
		return fmt.Errorf("%w: secondary range and count must be positive (range=%d, count=%d)",
			ErrInvalidConfig, g.SecondaryRange, g.SecondaryCount)
	}
	if g.PrimaryCount > g.PrimaryRange {
		return fmt.Errorf("%w: primary count %d exceeds range %d", ErrInvalidConfig, g.PrimaryCount, g.PrimaryRange)
	}
	if g.SecondaryCount > g.SecondaryRange {
		return fmt.Errorf("%w: secondary count %d exceeds range %d", ErrInvalidConfig, g.SecondaryCount, g.SecondaryRange)
	}
	return nil
}

// CheckSegment verifies that values holds exactly count distinct symbols in [1, max]
func CheckSegment(values []int, count, max int) error {
	if len(values) != count {
		return fmt.Errorf("%w: expected %d symbols, got %d", ErrInvalidDraw, count, len(values))
	}
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if v < 1 || v > max {
			return fmt.Errorf("%w: symbol %d outside [1,%d]", ErrInvalidDraw, v, max)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: duplicate symbol %d", ErrInvalidDraw, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// CheckCombination validates both segments of a combination against the game
func (g GameConfig) CheckCombination(primary, secondary []int) error {
	if err := CheckSegment(primary, g.PrimaryCount, g.PrimaryRange); err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	if err := CheckSegment(secondary, g.SecondaryCount, g.SecondaryRange); err != nil {
		return fmt.Errorf("secondary: %w", err)
	}
	return nil
}

// Draw is one historical result. Both segments are sorted ascending.
type Draw struct {
	Date      *time.Time `json:"date,omitempty"`
	Primary   []int      `json:"numbers"`
	Secondary []int      `json:"stars"`
	ID        int64      `json:"id,omitempty"`
}

// NewDraw validates and normalizes a draw. The input slices are copied.
func NewDraw(game GameConfig, primary, secondary []int, date *time.Time) (Draw, error) {
	if err := game.CheckCombination(primary, secondary); err != nil {
		return Draw{}, err
	}
	return Draw{
		Date:      date,
		Primary:   SortedCopy(primary),
		Secondary: SortedCopy(secondary),
	}, nil
}

// SortedCopy returns an ascending copy of values
func SortedCopy(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Ints(out)
	return out
}

// Source identifies which generator produced a combination
type Source string

const (
	SourceDirect      Source = "direct"
	SourceEnsemble    Source = "ensemble"
	SourceGenetic     Source = "genetic"
	SourceStatistical Source = "statistical"
	SourceHot         Source = "hot"
	SourceCold        Source = "cold"
	SourceRare        Source = "rare"
	SourceRandom      Source = "random"
)

// Combination is one ranked output record. Confidence is on a 0-5 scale for
// ensemble output and 0-1 for optimizer-only output.
type Combination struct {
	Primary    []int   `json:"numbers"`
	Secondary  []int   `json:"stars"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

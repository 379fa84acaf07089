// Package statistics derives frequency, pair co-occurrence and recency tables from historical draws.
package statistics

// FrequencyTable maps symbol to normalized occurrence frequency in [0,1].
// Index 0 is unused; an empty table means no history is available.
type FrequencyTable []float64

// Get returns the frequency of symbol, or 0 for symbols outside the table
func (f FrequencyTable) Get(symbol int) float64 {
	if symbol <= 0 || symbol >= len(f) {
		return 0
	}
	return f[symbol]
}

// Empty reports whether the table carries no data
func (f FrequencyTable) Empty() bool {
	return len(f) == 0
}

// Pair is an unordered pair of primary symbols stored with A < B
type Pair struct {
	A int `msgpack:"a" json:"a"`
	B int `msgpack:"b" json:"b"`
}

// NewPair orders the two symbols
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// PairFrequencyTable maps a primary pair to its count normalized by the most frequent pair
type PairFrequencyTable map[Pair]float64

// Lookup returns the normalized score of the pair and whether it was ever observed
func (p PairFrequencyTable) Lookup(a, b int) (float64, bool) {
	score, ok := p[NewPair(a, b)]
	return score, ok
}

// Empty reports whether the table carries no data
func (p PairFrequencyTable) Empty() bool {
	return len(p) == 0
}

// Package formulas holds small numeric helpers on top of gonum and go-talib.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Min returns the smallest value, or 0 for an empty slice
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Min(data)
}

// Max returns the largest value, or 0 for an empty slice
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Max(data)
}

// Sum returns the sum of all values
func Sum(data []float64) float64 {
	return floats.Sum(data)
}

// Round rounds value to the given number of decimal places
func Round(value float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(value*p) / p
}

// Clamp limits value to [lo, hi]
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

// IsProbabilityVector reports whether every value is a finite, non-negative number
func IsProbabilityVector(data []float64) bool {
	if len(data) == 0 || floats.HasNaN(data) {
		return false
	}
	for _, v := range data {
		if v < 0 || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Summary aggregates the descriptive statistics of a sample
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes mean, standard deviation, min and max in one call
func Summarize(data []float64) Summary {
	return Summary{
		Mean:   Mean(data),
		StdDev: StdDev(data),
		Min:    Min(data),
		Max:    Max(data),
	}
}

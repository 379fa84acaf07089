// Package ensemble blends optimizer candidates with predictor probability
// vectors into a single confidence-ranked list.
package ensemble

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aristath/eurogenius/internal/domain"
	"gopkg.in/yaml.v3"
)

// Weights are the relative trust placed in each sub-score. They are divided by
// their sum at aggregation time, so they need not sum to 1.
type Weights struct {
	Numbers float64 `yaml:"numbers" json:"numbers"`
	Stars   float64 `yaml:"stars" json:"stars"`
	Genetic float64 `yaml:"genetic" json:"genetic"`
}

// Sum returns the normalization denominator
func (w Weights) Sum() float64 {
	return w.Numbers + w.Stars + w.Genetic
}

func (w Weights) validate() error {
	if w.Numbers < 0 || w.Stars < 0 || w.Genetic < 0 {
		return fmt.Errorf("%w: ensemble weights must not be negative", domain.ErrInvalidConfig)
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("%w: ensemble weights must not all be zero", domain.ErrInvalidConfig)
	}
	return nil
}

// WeightSet maps each ensemble strategy to its weights
type WeightSet map[domain.Strategy]Weights

// DefaultWeights returns the built-in strategy weights
func DefaultWeights() WeightSet {
	return WeightSet{
		domain.StrategyBalanced:     {Numbers: 0.4, Stars: 0.4, Genetic: 0.2},
		domain.StrategyConservative: {Numbers: 0.6, Stars: 0.6, Genetic: 0.1},
		domain.StrategyRisky:        {Numbers: 0.2, Stars: 0.2, Genetic: 0.7},
	}
}

// For returns the weights of an ensemble strategy
func (ws WeightSet) For(strategy domain.Strategy) (Weights, error) {
	w, ok := ws[strategy]
	if !ok {
		return Weights{}, fmt.Errorf("%w: strategy %q has no ensemble weights", domain.ErrInvalidConfig, strategy)
	}
	return w, nil
}

// weightsFile is the YAML layout of an override file:
//
//	strategies:
//	  balanced: {numbers: 0.5, stars: 0.3, genetic: 0.2}
type weightsFile struct {
	Strategies map[string]Weights `yaml:"strategies"`
}

// LoadWeights returns the default weights overlaid with the strategies listed in
// the YAML file at path. An empty path or a missing file yields the defaults.
func LoadWeights(path string) (WeightSet, error) {
	set := DefaultWeights()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return set, nil
		}
		return nil, fmt.Errorf("failed to read ensemble weights: %w", err)
	}

	var file weightsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse ensemble weights %s: %v", domain.ErrInvalidConfig, path, err)
	}

	for label, w := range file.Strategies {
		strategy, err := domain.ParseStrategy(label)
		if err != nil {
			return nil, fmt.Errorf("ensemble weights %s: %w", path, err)
		}
		if !strategy.IsEnsemble() {
			return nil, fmt.Errorf("%w: ensemble weights %s: %q is not an ensemble strategy", domain.ErrInvalidConfig, path, label)
		}
		if err := w.validate(); err != nil {
			return nil, fmt.Errorf("ensemble weights %s (%s): %w", path, label, err)
		}
		set[strategy] = w
	}

	return set, nil
}

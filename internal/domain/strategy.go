package domain

import "fmt"

// Strategy selects how predictions are generated and weighted
type Strategy string

const (
	// Ensemble strategies blend optimizer output with predictor probabilities
	StrategyBalanced     Strategy = "balanced"
	StrategyConservative Strategy = "conservative"
	StrategyRisky        Strategy = "risky"

	// Heuristic strategies work from historical statistics only
	StrategyStatistical Strategy = "statistical"
	StrategyHot         Strategy = "hot"
	StrategyCold        Strategy = "cold"
	StrategyRare        Strategy = "rare"
)

// AllStrategies lists every accepted strategy label in display order
var AllStrategies = []Strategy{
	StrategyBalanced,
	StrategyConservative,
	StrategyRisky,
	StrategyStatistical,
	StrategyHot,
	StrategyCold,
	StrategyRare,
}

// ParseStrategy validates a strategy label
func ParseStrategy(label string) (Strategy, error) {
	for _, s := range AllStrategies {
		if string(s) == label {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, label)
}

// IsEnsemble reports whether the strategy runs the optimizer and aggregator
func (s Strategy) IsEnsemble() bool {
	switch s {
	case StrategyBalanced, StrategyConservative, StrategyRisky:
		return true
	}
	return false
}

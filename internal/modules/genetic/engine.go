package genetic

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/utils"
	"github.com/aristath/eurogenius/pkg/formulas"
	"github.com/rs/zerolog"
)

// EngineConfig holds the parameters of one optimizer run
type EngineConfig struct {
	Game           domain.GameConfig
	PopulationSize int
	Generations    int
	CrossoverProb  float64
	MutationProb   float64
	EliteCount     int    // Best candidates copied unchanged into the next generation (0 = none)
	Workers        int    // Fitness evaluation workers (1 = sequential)
	Seed           uint64 // 0 = random seed
}

// DefaultEngineConfig returns the standard optimizer parameters
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Game:           domain.DefaultGameConfig(),
		PopulationSize: 100,
		Generations:    50,
		CrossoverProb:  0.7,
		MutationProb:   0.2,
		EliteCount:     0,
		Workers:        1,
	}
}

// Validate rejects configurations the loop cannot run with
func (c EngineConfig) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if c.PopulationSize <= 0 {
		return fmt.Errorf("%w: population size must be positive, got %d", domain.ErrInvalidConfig, c.PopulationSize)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must not be negative, got %d", domain.ErrInvalidConfig, c.Generations)
	}
	if c.CrossoverProb < 0 || c.CrossoverProb > 1 {
		return fmt.Errorf("%w: crossover probability must be in [0,1], got %v", domain.ErrInvalidConfig, c.CrossoverProb)
	}
	if c.MutationProb < 0 || c.MutationProb > 1 {
		return fmt.Errorf("%w: mutation probability must be in [0,1], got %v", domain.ErrInvalidConfig, c.MutationProb)
	}
	if c.EliteCount < 0 || c.EliteCount > c.PopulationSize {
		return fmt.Errorf("%w: elite count must be in [0,%d], got %d", domain.ErrInvalidConfig, c.PopulationSize, c.EliteCount)
	}
	return nil
}

// State is the position of the engine in its generational loop
type State int

const (
	StateInitialized State = iota
	StateEvaluated
	StateSelected
	StateBred
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateEvaluated:
		return "evaluated"
	case StateSelected:
		return "selected"
	case StateBred:
		return "bred"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// GenerationStats is one logbook row
type GenerationStats struct {
	Generation  int `json:"generation"`
	Evaluations int `json:"evaluations"`
	formulas.Summary
}

// Observer receives the logbook row of every generation as soon as it is recorded
type Observer func(GenerationStats)

// Engine runs the generational loop: evaluate, select, breed, replace
type Engine struct {
	cfg        EngineConfig
	evaluator  *FitnessEvaluator
	operators  *Operators
	pool       *WorkerPool
	rng        *rand.Rand
	seed       uint64
	population Population
	state      State
	history    []GenerationStats
	observer   Observer
	log        zerolog.Logger
}

// NewEngine validates cfg and builds the initial random population
func NewEngine(cfg EngineConfig, evaluator *FitnessEvaluator, log zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	if evaluator == nil {
		evaluator = NewFitnessEvaluator(cfg.Game, nil)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	rng, seed := utils.NewRand(cfg.Seed)

	return &Engine{
		cfg:        cfg,
		evaluator:  evaluator,
		operators:  NewOperators(cfg.Game, cfg.CrossoverProb, cfg.MutationProb),
		pool:       NewWorkerPool(cfg.Workers),
		rng:        rng,
		seed:       seed,
		population: NewPopulation(cfg.PopulationSize, cfg.Game, rng),
		state:      StateInitialized,
		log:        log.With().Str("component", "evolution_engine").Logger(),
	}, nil
}

// SetObserver registers a callback for per-generation statistics
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// State returns the current loop state
func (e *Engine) State() State {
	return e.state
}

// Seed returns the effective seed of the run
func (e *Engine) Seed() uint64 {
	return e.seed
}

// History returns the logbook recorded so far
func (e *Engine) History() []GenerationStats {
	return e.history
}

// Population returns the current population in its internal order
func (e *Engine) Population() Population {
	return e.population
}

// Run executes all generations and returns the final population sorted by
// fitness descending. Cancellation is checked between generations.
func (e *Engine) Run(ctx context.Context) (Population, error) {
	if e.state != StateInitialized {
		return nil, fmt.Errorf("engine already ran (state %s)", e.state)
	}

	e.log.Debug().
		Int("population_size", e.cfg.PopulationSize).
		Int("generations", e.cfg.Generations).
		Int("workers", e.pool.Workers()).
		Uint64("seed", e.seed).
		Msg("Starting evolution")

	e.record(0, e.evaluate())
	e.state = StateEvaluated

	for gen := 1; gen <= e.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("evolution cancelled at generation %d: %w", gen, err)
		}

		elites := e.population.Top(e.cfg.EliteCount)
		pool := TournamentSelect(e.population, e.cfg.PopulationSize-len(elites), e.rng)
		e.state = StateSelected

		offspring, err := e.breed(pool)
		if err != nil {
			return nil, fmt.Errorf("failed to breed generation %d: %w", gen, err)
		}
		next := make(Population, 0, e.cfg.PopulationSize)
		for _, c := range elites {
			next = append(next, c.Clone())
		}
		e.population = append(next, offspring...)
		e.state = StateBred

		e.record(gen, e.evaluate())
		e.state = StateEvaluated
	}

	e.state = StateTerminated

	best := e.population.Sorted()
	if len(best) > 0 {
		e.log.Debug().
			Float64("best_fitness", best[0].Fitness).
			Msg("Evolution finished")
	}
	return best, nil
}

// breed crosses consecutive pairs of the pool (each pair gated by the crossover
// probability) and mutates every offspring. An odd last candidate is only mutated.
func (e *Engine) breed(pool Population) (Population, error) {
	offspring := make(Population, len(pool))
	copy(offspring, pool)

	// Pair gate. Crossover gates each segment again, so a segment is
	// recombined with probability CrossoverProb squared.
	for i := 1; i < len(offspring); i += 2 {
		if e.rng.Float64() >= e.cfg.CrossoverProb {
			continue
		}
		c1, c2, err := e.operators.Crossover(offspring[i-1], offspring[i], e.rng)
		if err != nil {
			return nil, err
		}
		offspring[i-1], offspring[i] = c1, c2
	}

	for _, c := range offspring {
		e.operators.Mutate(c, e.rng)
	}
	return offspring, nil
}

// evaluate scores every candidate lacking fitness and returns how many were scored.
// Per-candidate streams are derived in population order before any work starts.
func (e *Engine) evaluate() int {
	idx := e.population.Unevaluated()
	batch := make([]evaluationJob, len(idx))
	for i, k := range idx {
		batch[i] = evaluationJob{candidate: e.population[k], rng: utils.ChildRand(e.rng)}
	}

	scores := e.pool.EvaluateBatch(e.evaluator, batch)
	for i, k := range idx {
		e.population[k].Fitness = scores[i]
		e.population[k].Evaluated = true
	}
	return len(idx)
}

func (e *Engine) record(gen, evaluations int) {
	stats := GenerationStats{
		Generation:  gen,
		Evaluations: evaluations,
		Summary:     formulas.Summarize(e.population.Fitnesses()),
	}
	e.history = append(e.history, stats)

	e.log.Debug().
		Int("generation", gen).
		Int("evaluations", evaluations).
		Float64("avg", stats.Mean).
		Float64("max", stats.Max).
		Msg("Generation evaluated")

	if e.observer != nil {
		e.observer(stats)
	}
}

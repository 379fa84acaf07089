// Package prediction orchestrates training, optimizer runs and strategy predictions.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/ensemble"
	"github.com/aristath/eurogenius/internal/modules/generators"
	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/aristath/eurogenius/internal/modules/statistics"
	"github.com/aristath/eurogenius/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// MaxPredictions bounds the n parameter of Predict
	MaxPredictions = 10
	// MaxPopulationSize and MaxGenerations bound per-request optimizer overrides
	MaxPopulationSize = 1000
	MaxGenerations    = 500
)

// DrawSource provides the draw history
type DrawSource interface {
	All(ctx context.Context) ([]domain.Draw, error)
	Latest(ctx context.Context, n int) ([]domain.Draw, error)
}

// SnapshotArchiver copies a saved snapshot to long-term storage
type SnapshotArchiver interface {
	ArchiveSnapshot(ctx context.Context, path string, trainedAt time.Time) error
}

// RunRecorder keeps the optimizer run log
type RunRecorder interface {
	Record(ctx context.Context, run Run) error
	Recent(ctx context.Context, n int) ([]Run, error)
}

// RunOptions controls one optimizer-only run
type RunOptions struct {
	N              int
	Seed           uint64 // 0 = the configured seed
	Generations    *int
	PopulationSize *int
	Observer       genetic.Observer
}

// RunResult is the output of RunOptimizer
type RunResult struct {
	RunID        string                    `json:"run_id"`
	Seed         uint64                    `json:"seed"`
	Combinations []domain.Combination      `json:"combinations"`
	History      []genetic.GenerationStats `json:"history"`
}

// PredictionResult is the output of Predict
type PredictionResult struct {
	RunID         string               `json:"run_id"`
	Strategy      domain.Strategy      `json:"strategy"`
	Seed          uint64               `json:"seed"`
	PredictorUsed bool                 `json:"predictor_used"`
	Combinations  []domain.Combination `json:"combinations"`
}

// Status describes the trained state
type Status struct {
	Trained    bool              `json:"trained"`
	Snapshot   *genetic.Snapshot `json:"snapshot,omitempty"`
	RecentRuns []Run             `json:"recent_runs"`
}

// Service owns the current snapshot and runs the optimizer on demand
type Service struct {
	draws           DrawSource
	store           *genetic.SnapshotStore
	runs            RunRecorder
	predictor       ensemble.Predictor
	aggregator      *ensemble.Aggregator
	archiver        SnapshotArchiver
	base            genetic.EngineConfig
	predictorWindow int

	mu       sync.RWMutex
	snapshot *genetic.Snapshot

	log zerolog.Logger
}

// NewService creates the prediction service. A nil predictor disables probability vectors;
// a nil archiver disables archiving.
func NewService(
	draws DrawSource,
	store *genetic.SnapshotStore,
	runs RunRecorder,
	predictor ensemble.Predictor,
	aggregator *ensemble.Aggregator,
	archiver SnapshotArchiver,
	base genetic.EngineConfig,
	predictorWindow int,
	log zerolog.Logger,
) *Service {
	if predictor == nil {
		predictor = ensemble.NoopPredictor{}
	}
	return &Service{
		draws:           draws,
		store:           store,
		runs:            runs,
		predictor:       predictor,
		aggregator:      aggregator,
		archiver:        archiver,
		base:            base,
		predictorWindow: predictorWindow,
		log:             log.With().Str("service", "prediction").Logger(),
	}
}

// Init loads the saved snapshot, retraining when it is missing or corrupt
func (s *Service) Init(ctx context.Context) error {
	snap, err := s.store.Load()
	switch {
	case err == nil:
		s.setSnapshot(snap)
		s.log.Info().
			Int("draw_count", snap.DrawCount).
			Time("trained_at", snap.TrainedAt).
			Msg("Snapshot loaded")
		return nil
	case errors.Is(err, domain.ErrSnapshotNotFound), errors.Is(err, domain.ErrSnapshotCorrupt):
		s.log.Warn().Err(err).Msg("No usable snapshot, retraining")
		_, err = s.Train(ctx)
		return err
	default:
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
}

// Train rebuilds the statistics from the draw store and replaces the snapshot
func (s *Service) Train(ctx context.Context) (*genetic.Snapshot, error) {
	timer := utils.NewTimer("train", s.log)

	history, err := s.draws.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draws: %w", err)
	}

	stats := statistics.Build(s.base.Game, history)
	snap := genetic.NewSnapshot(s.base, stats, time.Now())

	if err := s.store.Save(snap); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.setSnapshot(snap)

	if s.archiver != nil {
		if err := s.archiver.ArchiveSnapshot(ctx, s.store.Path(), snap.TrainedAt); err != nil {
			s.log.Warn().Err(err).Msg("Failed to archive snapshot")
		}
	}

	elapsed := timer.Stop()
	s.record(ctx, Run{
		Kind:       RunKindTrain,
		DrawCount:  stats.DrawCount(),
		DurationMs: elapsed.Milliseconds(),
	})

	s.log.Info().Int("draw_count", stats.DrawCount()).Msg("Optimizer trained")
	return snap, nil
}

// Snapshot returns the current snapshot, or nil before training
func (s *Service) Snapshot() *genetic.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Service) setSnapshot(snap *genetic.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
}

// Status reports the trained state. Before training it returns domain.ErrSnapshotNotFound.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, fmt.Errorf("%w: optimizer not trained", domain.ErrSnapshotNotFound)
	}

	status := &Status{Trained: true, Snapshot: snap, RecentRuns: []Run{}}
	if s.runs != nil {
		recent, err := s.runs.Recent(ctx, 10)
		if err != nil {
			s.log.Warn().Err(err).Msg("Failed to load recent runs")
		} else {
			status.RecentRuns = recent
		}
	}
	return status, nil
}

// Statistics builds the symbol report from the full draw history
func (s *Service) Statistics(ctx context.Context) (statistics.Report, error) {
	history, err := s.draws.All(ctx)
	if err != nil {
		return statistics.Report{}, fmt.Errorf("failed to load draws: %w", err)
	}
	stats := statistics.Build(s.base.Game, history)
	return stats.Report(statistics.DefaultRecentWindow, statistics.DefaultHotThreshold), nil
}

// historicalStatistics prefers the trained tables and attaches the current draws for
// originality; without a snapshot the tables are built from the draws directly.
func (s *Service) historicalStatistics(ctx context.Context) (*statistics.HistoricalStatistics, genetic.EngineConfig, error) {
	history, err := s.draws.All(ctx)
	if err != nil {
		return nil, genetic.EngineConfig{}, fmt.Errorf("failed to load draws: %w", err)
	}

	if snap := s.Snapshot(); snap != nil {
		return snap.Statistics().WithDraws(history), snap.ApplyTo(s.base), nil
	}
	return statistics.Build(s.base.Game, history), s.base, nil
}

// RunOptimizer evolves a population and returns the top opts.N candidates as
// optimizer-only combinations (confidence = fitness)
func (s *Service) RunOptimizer(ctx context.Context, opts RunOptions) (*RunResult, error) {
	stats, cfg, err := s.historicalStatistics(ctx)
	if err != nil {
		return nil, err
	}

	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if opts.Generations != nil {
		if *opts.Generations < 0 || *opts.Generations > MaxGenerations {
			return nil, fmt.Errorf("%w: generations must be in [0,%d], got %d", domain.ErrInvalidConfig, MaxGenerations, *opts.Generations)
		}
		cfg.Generations = *opts.Generations
	}
	if opts.PopulationSize != nil {
		if *opts.PopulationSize < 1 || *opts.PopulationSize > MaxPopulationSize {
			return nil, fmt.Errorf("%w: population size must be in [1,%d], got %d", domain.ErrInvalidConfig, MaxPopulationSize, *opts.PopulationSize)
		}
		cfg.PopulationSize = *opts.PopulationSize
		cfg.EliteCount = min(cfg.EliteCount, cfg.PopulationSize)
	}

	timer := utils.NewTimer("optimizer_run", s.log)
	best, engine, err := s.evolve(ctx, cfg, stats, opts.Observer)
	if err != nil {
		return nil, err
	}
	elapsed := timer.Stop()

	result := &RunResult{
		RunID:        uuid.New().String(),
		Seed:         engine.Seed(),
		Combinations: best.Top(opts.N).Combinations(),
		History:      engine.History(),
	}

	s.record(ctx, Run{
		ID:          result.RunID,
		Kind:        RunKindRun,
		Seed:        result.Seed,
		DrawCount:   stats.DrawCount(),
		BestFitness: bestFitness(best),
		DurationMs:  elapsed.Milliseconds(),
	})
	return result, nil
}

func (s *Service) evolve(ctx context.Context, cfg genetic.EngineConfig, stats *statistics.HistoricalStatistics, observer genetic.Observer) (genetic.Population, *genetic.Engine, error) {
	evaluator := genetic.NewFitnessEvaluator(cfg.Game, stats)
	engine, err := genetic.NewEngine(cfg, evaluator, s.log)
	if err != nil {
		return nil, nil, err
	}
	if observer != nil {
		engine.SetObserver(observer)
	}

	best, err := engine.Run(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to run optimizer: %w", err)
	}
	return best, engine, nil
}

// Predict returns n ranked combinations for strategy. Ensemble strategies run the
// optimizer and merge it with the predictor; heuristic strategies use the generators.
func (s *Service) Predict(ctx context.Context, strategy domain.Strategy, n int, seed uint64) (*PredictionResult, error) {
	if _, err := domain.ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if n < 1 || n > MaxPredictions {
		return nil, fmt.Errorf("%w: n must be in [1,%d], got %d", domain.ErrInvalidConfig, MaxPredictions, n)
	}

	timer := utils.NewTimer("predict", s.log)

	stats, cfg, err := s.historicalStatistics(ctx)
	if err != nil {
		return nil, err
	}
	prediction := s.fetchPrediction(ctx)

	result := &PredictionResult{
		RunID:         uuid.New().String(),
		Strategy:      strategy,
		PredictorUsed: prediction != nil,
	}
	var best genetic.Population

	// A zero request seed falls back to the configured seed (itself 0 = random)
	if seed == 0 {
		seed = cfg.Seed
	}

	if strategy.IsEnsemble() {
		cfg.Seed = seed
		var engine *genetic.Engine
		best, engine, err = s.evolve(ctx, cfg, stats, nil)
		if err != nil {
			return nil, err
		}
		result.Seed = engine.Seed()

		result.Combinations, err = s.aggregator.Aggregate(ensemble.Input{
			Direct:     ensemble.DirectCombination(cfg.Game, prediction),
			Candidates: best.Top(n),
			Prediction: prediction,
			Strategy:   strategy,
			Count:      n,
		})
		if err != nil {
			return nil, err
		}
	} else {
		rng, effective := utils.NewRand(seed)
		result.Seed = effective

		var probs generators.Probabilities
		if prediction != nil {
			probs = generators.Probabilities{Primary: prediction.Primary, Secondary: prediction.Secondary}
		}
		gen := generators.NewGenerator(cfg.Game, stats, s.log)
		result.Combinations, err = gen.Generate(strategy, n, probs, rng)
		if err != nil {
			return nil, err
		}
	}

	elapsed := timer.Stop()
	s.record(ctx, Run{
		ID:          result.RunID,
		Kind:        RunKindPredict,
		Strategy:    string(strategy),
		Seed:        result.Seed,
		DrawCount:   stats.DrawCount(),
		BestFitness: bestFitness(best),
		DurationMs:  elapsed.Milliseconds(),
	})

	s.log.Info().
		Str("strategy", string(strategy)).
		Int("count", len(result.Combinations)).
		Bool("predictor_used", result.PredictorUsed).
		Msg("Predictions generated")
	return result, nil
}

// fetchPrediction asks the predictor for probability vectors over the recent window.
// Failures are logged and yield nil.
func (s *Service) fetchPrediction(ctx context.Context) *ensemble.Prediction {
	latest, err := s.draws.Latest(ctx, s.predictorWindow)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load recent draws for predictor")
		return nil
	}

	// Latest is newest first; the predictor expects chronological order
	recent := make([]domain.Draw, len(latest))
	for i, d := range latest {
		recent[len(latest)-1-i] = d
	}

	prediction, err := s.predictor.Predict(ctx, recent)
	if err != nil {
		s.log.Warn().Err(err).Msg("Predictor unavailable, ranking without probabilities")
		return nil
	}
	return prediction
}

func (s *Service) record(ctx context.Context, run Run) {
	if s.runs == nil {
		return
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if err := s.runs.Record(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to record optimizer run")
	}
}

func bestFitness(pop genetic.Population) *float64 {
	if len(pop) == 0 {
		return nil
	}
	v := pop[0].Fitness
	return &v
}

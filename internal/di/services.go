package di

import (
	"context"
	"fmt"

	"github.com/aristath/eurogenius/internal/config"
	"github.com/aristath/eurogenius/internal/modules/ensemble"
	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/aristath/eurogenius/internal/modules/prediction"
	"github.com/aristath/eurogenius/internal/reliability"
	"github.com/rs/zerolog"
)

// InitializeServices creates the predictor, aggregator, archiver and prediction service
func InitializeServices(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container.DrawRepo == nil || container.RunRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	container.SnapshotStore = genetic.NewSnapshotStore(cfg.SnapshotPath(), log)

	if cfg.Predictor.URL != "" {
		container.Predictor = ensemble.NewHTTPPredictor(cfg.Predictor.URL, cfg.Predictor.Timeout, log)
		log.Info().Str("url", cfg.Predictor.URL).Msg("Remote predictor enabled")
	} else {
		container.Predictor = ensemble.NoopPredictor{}
	}

	weights, err := ensemble.LoadWeights(cfg.EnsembleWeightsFile)
	if err != nil {
		return fmt.Errorf("failed to load ensemble weights: %w", err)
	}
	container.Aggregator = ensemble.NewAggregator(cfg.Game, weights, log)

	var archiver prediction.SnapshotArchiver
	if cfg.Archive.Enabled() {
		container.Archiver, err = reliability.NewS3SnapshotArchiver(ctx, cfg.Archive, log)
		if err != nil {
			return fmt.Errorf("failed to initialize snapshot archiver: %w", err)
		}
		archiver = container.Archiver
		log.Info().Str("bucket", cfg.Archive.Bucket).Msg("Snapshot archiving enabled")
	}

	container.PredictionService = prediction.NewService(
		container.DrawRepo,
		container.SnapshotStore,
		container.RunRepo,
		container.Predictor,
		container.Aggregator,
		archiver,
		EngineConfig(cfg),
		cfg.Predictor.Window,
		log,
	)

	return nil
}

// EngineConfig maps the optimizer settings onto the engine parameters
func EngineConfig(cfg *config.Config) genetic.EngineConfig {
	return genetic.EngineConfig{
		Game:           cfg.Game,
		PopulationSize: cfg.Optimizer.PopulationSize,
		Generations:    cfg.Optimizer.Generations,
		CrossoverProb:  cfg.Optimizer.CrossoverProb,
		MutationProb:   cfg.Optimizer.MutationProb,
		EliteCount:     cfg.Optimizer.EliteCount,
		Workers:        cfg.Optimizer.Workers,
		Seed:           cfg.Optimizer.Seed,
	}
}

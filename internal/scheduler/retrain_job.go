package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/rs/zerolog"
)

// Trainer rebuilds the optimizer snapshot
type Trainer interface {
	Train(ctx context.Context) (*genetic.Snapshot, error)
}

// RetrainJob retrains the optimizer from the current draw history
type RetrainJob struct {
	trainer Trainer
	timeout time.Duration
	log     zerolog.Logger
}

// NewRetrainJob creates a retrain job bounded by timeout
func NewRetrainJob(trainer Trainer, timeout time.Duration, log zerolog.Logger) *RetrainJob {
	return &RetrainJob{
		trainer: trainer,
		timeout: timeout,
		log:     log.With().Str("job", "retrain").Logger(),
	}
}

// Name returns the job name
func (j *RetrainJob) Name() string {
	return "retrain_optimizer"
}

// Run executes the retrain job
func (j *RetrainJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	snap, err := j.trainer.Train(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrain optimizer: %w", err)
	}

	j.log.Info().
		Int("draw_count", snap.DrawCount).
		Time("trained_at", snap.TrainedAt).
		Msg("Scheduled retrain completed")
	return nil
}

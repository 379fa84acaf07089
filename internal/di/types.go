package di

import (
	"github.com/aristath/eurogenius/internal/database"
	"github.com/aristath/eurogenius/internal/modules/draws"
	"github.com/aristath/eurogenius/internal/modules/ensemble"
	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/aristath/eurogenius/internal/modules/prediction"
	"github.com/aristath/eurogenius/internal/reliability"
	"github.com/aristath/eurogenius/internal/scheduler"
)

// Container holds every wired dependency of the application
type Container struct {
	// Database
	DrawsDB *database.DB // Draw history and optimizer run log

	// Repositories
	DrawRepo *draws.Repository
	RunRepo  *prediction.RunRepository
	Importer *draws.Importer

	// Optimizer state
	SnapshotStore *genetic.SnapshotStore

	// Ensemble
	Predictor  ensemble.Predictor
	Aggregator *ensemble.Aggregator

	// Optional snapshot archive (nil when no bucket is configured)
	Archiver *reliability.SnapshotArchiver

	// Services
	PredictionService *prediction.Service

	// Background jobs
	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered jobs for manual triggering
type JobInstances struct {
	Retrain     *scheduler.RetrainJob
	Maintenance *scheduler.DatabaseMaintenanceJob
}

// Close releases the database connection
func (c *Container) Close() error {
	if c == nil || c.DrawsDB == nil {
		return nil
	}
	return c.DrawsDB.Close()
}

package di

import (
	"fmt"
	"time"

	"github.com/aristath/eurogenius/internal/config"
	"github.com/aristath/eurogenius/internal/scheduler"
	"github.com/rs/zerolog"
)

const (
	retrainTimeout      = 30 * time.Minute
	maintenanceSchedule = "0 30 4 * * SUN"
)

// RegisterJobs creates the background jobs and registers them with the scheduler.
// An empty retrain schedule leaves retraining to the API and CLI.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil || container.PredictionService == nil {
		return nil, fmt.Errorf("services must be initialized before jobs")
	}

	container.Scheduler = scheduler.New(log)
	instances := &JobInstances{
		Retrain:     scheduler.NewRetrainJob(container.PredictionService, retrainTimeout, log),
		Maintenance: scheduler.NewDatabaseMaintenanceJob(container.DrawsDB, log),
	}

	if cfg.RetrainSchedule != "" {
		if err := container.Scheduler.AddJob(cfg.RetrainSchedule, instances.Retrain); err != nil {
			return nil, err
		}
	}
	if err := container.Scheduler.AddJob(maintenanceSchedule, instances.Maintenance); err != nil {
		return nil, err
	}

	return instances, nil
}

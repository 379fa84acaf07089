// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/aristath/eurogenius/internal/config"
	"github.com/aristath/eurogenius/internal/database"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens the draw database and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// draws.db - Append-mostly draw history and the optimizer run log
	drawsDB, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileLedger,
		Name:    "draws",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize draws database: %w", err)
	}

	if err := drawsDB.Migrate(); err != nil {
		drawsDB.Close()
		return nil, fmt.Errorf("failed to migrate draws database: %w", err)
	}
	container.DrawsDB = drawsDB

	log.Info().Str("path", drawsDB.Path()).Msg("Draws database initialized")
	return container, nil
}

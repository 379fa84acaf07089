package di

import (
	"fmt"

	"github.com/aristath/eurogenius/internal/config"
	"github.com/aristath/eurogenius/internal/modules/draws"
	"github.com/aristath/eurogenius/internal/modules/prediction"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates the repositories on top of the opened database
func InitializeRepositories(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil || container.DrawsDB == nil {
		return fmt.Errorf("container has no database")
	}

	container.DrawRepo = draws.NewRepository(container.DrawsDB.Conn(), cfg.Game, log)
	container.RunRepo = prediction.NewRunRepository(container.DrawsDB.Conn(), log)
	container.Importer = draws.NewImporter(container.DrawRepo, log)

	return nil
}

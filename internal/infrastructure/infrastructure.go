// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, database, metrics) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/neurocore/internal/config"
	"github.com/JaimeStill/neurocore/internal/metrics"
	"github.com/JaimeStill/neurocore/internal/schema"
	"github.com/JaimeStill/neurocore/pkg/database"
	"github.com/JaimeStill/neurocore/pkg/lifecycle"
	"github.com/JaimeStill/neurocore/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
// Database is nil when the memory store is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Metrics   *metrics.Metrics

	cfg *config.Config
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.New(&cfg.Logging),
		Metrics:   metrics.New(),
		cfg:       cfg,
	}

	if cfg.Documents.Store == config.StorePostgres {
		db, err := database.New(&cfg.Database, infra.Logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	return infra, nil
}

// Start registers the database connection check and pending migrations as
// startup hooks, plus the shutdown hooks, with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database == nil {
		i.Logger.Info("using in-memory stores")
		return nil
	}

	migrate := func() error {
		version, err := database.Migrate(&i.cfg.Database, schema.Migrations, schema.Dir)
		if err != nil {
			return fmt.Errorf("database migration failed: %w", err)
		}
		i.Logger.Info("database migrated", "version", version)
		return nil
	}

	if err := i.Database.Start(i.Lifecycle, migrate); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}

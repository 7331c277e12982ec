// Package database manages the PostgreSQL connection pool and its lifecycle.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/neurocore/pkg/lifecycle"
)

// ErrNotReady indicates the connection has not been verified yet.
var ErrNotReady = errors.New("database not ready")

// System owns the shared *sql.DB.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator, onConnect ...func() error) error
}

type database struct {
	conn   *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens a pgx-backed pool configured from cfg. The connection is verified in Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

// Start pings the database and registers pool shutdown with lc.
// Start registers a startup hook that verifies the connection and then runs
// onConnect in order, plus a shutdown hook that closes the pool.
func (d *database) Start(lc *lifecycle.Coordinator, onConnect ...func() error) error {
	lc.OnStartup(func() error {
		ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := d.conn.PingContext(ctx); err != nil {
			d.logger.Error("database connection failed", "error", err)
			return fmt.Errorf("%w: %w", ErrNotReady, err)
		}
		d.logger.Info("database connected", "host", d.cfg.Host, "name", d.cfg.Name)

		for _, fn := range onConnect {
			if err := fn(); err != nil {
				d.logger.Error("database startup failed", "error", err)
				return err
			}
		}
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}

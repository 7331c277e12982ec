package main

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/neurocore/internal/api"
	"github.com/JaimeStill/neurocore/internal/config"
	"github.com/JaimeStill/neurocore/internal/infrastructure"
	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/server"
	"github.com/JaimeStill/neurocore/pkg/tmdb"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra *infrastructure.Infrastructure
	model llm.Model
	http  server.System

	failed chan error
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	model, err := llm.New(context.Background(), &cfg.LLM, infra.Logger)
	if err != nil {
		return nil, fmt.Errorf("llm init failed: %w", err)
	}

	runtime := &api.Runtime{
		Logger:     infra.Logger,
		Lifecycle:  infra.Lifecycle,
		Database:   infra.Database,
		Metrics:    infra.Metrics,
		Model:      model,
		Catalog:    tmdb.New(&cfg.TMDB),
		Pagination: cfg.Pagination,
	}

	handler, _, err := api.NewHandler(cfg, runtime)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"store", cfg.Documents.Store,
		"model", model.Name(),
	)

	return &Server{
		infra: infra,
		model: model,
		http:  server.New(&cfg.Server, handler, infra.Logger),

		failed: make(chan error, 1),
	}, nil
}

// Start begins all subsystems. Readiness is reached once every startup hook succeeds.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	s.infra.Lifecycle.OnShutdown(func() {
		<-s.infra.Lifecycle.Context().Done()
		if err := llm.Close(s.model); err != nil {
			s.infra.Logger.Error("llm close error", "error", err)
		}
	})

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.infra.Logger.Error("startup failed", "error", err)
			s.failed <- err
			return
		}
		s.infra.Logger.Info("all subsystems ready", "addr", s.http.Addr())
	}()

	return nil
}

// Failed delivers the startup error when a startup hook fails.
func (s *Server) Failed() <-chan error {
	return s.failed
}

// Shutdown gracefully stops all subsystems within the provided timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

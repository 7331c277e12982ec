package main

import (
	"context"
	"fmt"

	"github.com/JaimeStill/neurocore/internal/api"
	"github.com/JaimeStill/neurocore/internal/documents"
	"github.com/JaimeStill/neurocore/internal/infrastructure"
	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/supervisor"
	"github.com/JaimeStill/neurocore/pkg/tmdb"
)

// session holds the systems a command needs, opened against the configured store.
type session struct {
	infra *infrastructure.Infrastructure
	docs  documents.System
	model llm.Model
}

func openSession() (*session, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}
	infra.Logger = logger

	if err := infra.Start(); err != nil {
		return nil, err
	}

	s := &session{infra: infra}
	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		s.Close()
		return nil, err
	}

	if infra.Database != nil {
		s.docs = documents.New(infra.Database.Connection(), logger, cfg.Documents.MaxContentBytes())
	} else {
		s.docs = documents.NewMemory(logger, cfg.Documents.MaxContentBytes())
	}
	return s, nil
}

func (s *session) supervisor(ctx context.Context) (*supervisor.Supervisor, error) {
	model, err := llm.New(ctx, &cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("llm init failed: %w", err)
	}
	s.model = model

	runtime := &api.Runtime{
		Logger:     logger,
		Metrics:    s.infra.Metrics,
		Model:      model,
		Catalog:    tmdb.New(&cfg.TMDB),
		Pagination: cfg.Pagination,
	}
	return api.NewSupervisor(cfg, runtime, s.docs)
}

func (s *session) Close() {
	if s.model != nil {
		if err := llm.Close(s.model); err != nil {
			logger.Error("llm close error", "error", err)
		}
	}
	if err := s.infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

package api

import (
	"fmt"

	"github.com/JaimeStill/neurocore/internal/agents"
	"github.com/JaimeStill/neurocore/internal/config"
	"github.com/JaimeStill/neurocore/internal/documents"
	"github.com/JaimeStill/neurocore/internal/supervisor"
	"github.com/JaimeStill/neurocore/internal/threads"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents  documents.System
	Threads    threads.System
	Supervisor *supervisor.Supervisor
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	maxContent := cfg.Documents.MaxContentBytes()

	var (
		docs documents.System
		ths  threads.System
	)
	if runtime.Database != nil {
		docs = documents.New(runtime.Database.Connection(), runtime.Logger, maxContent)
		ths = threads.New(runtime.Database.Connection(), runtime.Logger)
	} else {
		docs = documents.NewMemory(runtime.Logger, maxContent)
		ths = threads.NewMemory(runtime.Logger)
	}

	sup, err := NewSupervisor(cfg, runtime, docs)
	if err != nil {
		return nil, err
	}

	return &Domain{
		Documents:  docs,
		Threads:    ths,
		Supervisor: sup,
	}, nil
}

// NewSupervisor assembles the document and movie agents under a supervisor.
func NewSupervisor(cfg *config.Config, runtime *Runtime, docs documents.System) (*supervisor.Supervisor, error) {
	opts := agents.Options{
		MaxSteps: cfg.Agents.MaxSteps,
		Logger:   runtime.Logger,
	}
	if runtime.Database != nil {
		opts.Checkpoints = agents.NewPostgresCheckpoints(runtime.Database.Connection(), runtime.Logger)
	}
	if runtime.Metrics != nil {
		opts.Recorder = runtime.Metrics
	}

	members := []*agents.Agent{
		agents.NewDocumentAgent(runtime.Model, docs, runtime.Pagination, opts),
		agents.NewMovieAgent(runtime.Model, runtime.Catalog, runtime.Pagination, opts),
	}

	supOpts := supervisor.Options{
		Logger:      runtime.Logger,
		Checkpoints: opts.Checkpoints,
	}
	if runtime.Metrics != nil {
		supOpts.Recorder = runtime.Metrics
	}

	sup, err := supervisor.New(runtime.Model, members, supOpts)
	if err != nil {
		return nil, fmt.Errorf("supervisor init failed: %w", err)
	}
	return sup, nil
}

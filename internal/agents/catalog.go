package agents

import (
	"log/slog"

	"github.com/JaimeStill/neurocore/internal/documents"
	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/movies"
	"github.com/JaimeStill/neurocore/internal/tools"
	"github.com/JaimeStill/neurocore/pkg/pagination"
)

// Agent names.
const (
	DocumentAgentName = "document_agent"
	MovieAgentName    = "movie_agent"
)

const (
	documentPrompt = "You are a helpful assistant in managing a user's documents within this app"
	moviePrompt    = "You are a helpful assistant for finding information about movies"
)

// NewDocumentAgent creates the document management agent over docs.
func NewDocumentAgent(model llm.Model, docs documents.System, limits pagination.Config, opts Options) *Agent {
	if opts.Description == "" {
		opts.Description = "Searches, lists, reads, creates, updates, and deletes the user's documents."
	}
	set := tools.NewSet(documents.Tools(docs, limits)...)
	return New(DocumentAgentName, documentPrompt, model, set, opts)
}

// NewMovieAgent creates the movie discovery agent over catalog.
func NewMovieAgent(model llm.Model, catalog movies.Catalog, limits pagination.Config, opts Options) *Agent {
	if opts.Description == "" {
		opts.Description = "Searches movies by title and looks up movie details."
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	set := tools.NewSet(movies.Tools(catalog, limits, logger)...)
	return New(MovieAgentName, moviePrompt, model, set, opts)
}

package api

import (
	"log/slog"

	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/metrics"
	"github.com/JaimeStill/neurocore/internal/movies"
	"github.com/JaimeStill/neurocore/pkg/database"
	"github.com/JaimeStill/neurocore/pkg/lifecycle"
	"github.com/JaimeStill/neurocore/pkg/pagination"
)

// Runtime carries the shared dependencies the API's domain systems are built from.
type Runtime struct {
	Logger     *slog.Logger
	Lifecycle  lifecycle.ReadinessChecker
	Database   database.System // nil selects the in-memory stores
	Metrics    *metrics.Metrics
	Model      llm.Model
	Catalog    movies.Catalog
	Pagination pagination.Config
}

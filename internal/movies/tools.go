// Package movies exposes TMDB movie discovery as LLM tools and HTTP endpoints.
package movies

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/JaimeStill/neurocore/internal/tools"
	"github.com/JaimeStill/neurocore/pkg/pagination"
	"github.com/JaimeStill/neurocore/pkg/tmdb"
)

// Tool names exposed to the movie agent.
const (
	ToolSearch = "search_movies"
	ToolDetail = "movies_detail"
)

// Catalog is the subset of the TMDB client used by the tools and handler.
type Catalog interface {
	Search(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error)
	Detail(ctx context.Context, id int64) (tmdb.Detail, error)
}

type toolset struct {
	catalog Catalog
	limits  pagination.Config
	logger  *slog.Logger
}

// Tools returns the movie discovery tools backed by catalog.
func Tools(catalog Catalog, limits pagination.Config, logger *slog.Logger) []tools.Tool {
	ts := &toolset{
		catalog: catalog,
		limits:  limits,
		logger:  logger.With("system", "movies"),
	}

	return []tools.Tool{
		{
			Name:        ToolSearch,
			Description: "Search The Movie Database for movies matching a title. Returns the top 5 matches by default, at most 25.",
			Parameters: tools.Object(map[string]any{
				"query": tools.String("movie title or keywords to look up"),
				"limit": tools.Integer("number of results to return (default 5, max 25)"),
			}, "query"),
			Handler: ts.search,
		},
		{
			Name:        ToolDetail,
			Description: "Get movie detail from The Movie Database if it exists.",
			Parameters: tools.Object(map[string]any{
				"movie_id": tools.Integer("TMDB id of the movie to retrieve details for"),
			}, "movie_id"),
			Handler: ts.detail,
		},
	}
}

// search returns an empty list for upstream failures so the model can report no results.
func (ts *toolset) search(ctx context.Context, raw json.RawMessage) (any, error) {
	caller, err := tools.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	args, err := tools.Decode[struct {
		Query string    `json:"query"`
		Limit tools.Int `json:"limit"`
	}](raw)
	if err != nil {
		return nil, err
	}

	ts.logger.Debug("searching movies", "user_id", caller.UserID, "query", args.Query)

	resp, err := ts.catalog.Search(ctx, args.Query, 1)
	if err != nil {
		ts.logger.Warn("movie search failed", "user_id", caller.UserID, "error", err)
		return []tmdb.Movie{}, nil
	}

	if resp.TotalResults == 0 || len(resp.Results) == 0 {
		return []tmdb.Movie{}, nil
	}

	limit := min(ts.limits.Clamp(int(args.Limit)), len(resp.Results))
	return resp.Results[:limit], nil
}

// detail returns nil for upstream failures, which encodes as JSON null.
func (ts *toolset) detail(ctx context.Context, raw json.RawMessage) (any, error) {
	caller, err := tools.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	args, err := tools.Decode[struct {
		MovieID tools.Int `json:"movie_id"`
	}](raw)
	if err != nil {
		return nil, err
	}

	ts.logger.Debug("fetching movie detail", "user_id", caller.UserID, "movie_id", args.MovieID)

	detail, err := ts.catalog.Detail(ctx, int64(args.MovieID))
	if err != nil {
		ts.logger.Warn("movie detail failed", "user_id", caller.UserID, "movie_id", args.MovieID, "error", err)
		return nil, nil
	}
	if len(detail) == 0 {
		return nil, nil
	}
	return detail, nil
}

package movies

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/neurocore/pkg/handlers"
	"github.com/JaimeStill/neurocore/pkg/routes"
	"github.com/JaimeStill/neurocore/pkg/tmdb"
)

var (
	errMissingQuery = errors.New("query parameter required")
	errInvalidID    = errors.New("invalid movie id")
)

// Handler provides HTTP passthrough endpoints for TMDB lookups.
type Handler struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewHandler creates a movie handler.
func NewHandler(catalog Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger.With("handler", "movies"),
	}
}

// Routes returns the movie endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/movies",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/{id}", Handler: h.Detail},
		},
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("query")
	if q == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errMissingQuery)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	resp, err := h.catalog.Search(r.Context(), q, page)
	if err != nil {
		handlers.RespondError(w, h.logger, mapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	detail, err := h.catalog.Detail(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, mapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, detail)
}

func mapHTTPStatus(err error) int {
	var se *tmdb.StatusError
	if errors.As(err, &se) && se.NotFound() {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

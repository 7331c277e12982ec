package movies_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/neurocore/internal/movies"
	"github.com/JaimeStill/neurocore/pkg/logging"
	"github.com/JaimeStill/neurocore/pkg/routes"
	"github.com/JaimeStill/neurocore/pkg/tmdb"
)

func newHandler(t *testing.T, upstream http.HandlerFunc) http.Handler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := &tmdb.Config{BaseURL: srv.URL, APIKey: "k"}
	require.NoError(t, cfg.Finalize(nil))

	h := movies.NewHandler(tmdb.New(cfg), logging.Discard())
	r := routes.New()
	r.RegisterGroup(routes.Group{Prefix: "/api", Children: []routes.Group{h.Routes()}})
	return r.Build()
}

func TestHandler_Search(t *testing.T) {
	var page string
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		page = r.URL.Query().Get("page")
		w.Write([]byte(results(2, 2)))
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/movies/search?query=dune&page=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", page)
	assert.Contains(t, w.Body.String(), `"total_results":2`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		upstream int
		status   int
	}{
		{name: "missing query", path: "/api/movies/search", upstream: http.StatusOK, status: http.StatusBadRequest},
		{name: "invalid id", path: "/api/movies/abc", upstream: http.StatusOK, status: http.StatusBadRequest},
		{name: "unknown movie", path: "/api/movies/9", upstream: http.StatusNotFound, status: http.StatusNotFound},
		{name: "upstream failure", path: "/api/movies/9", upstream: http.StatusInternalServerError, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.upstream)
				w.Write([]byte(`{"status_message":"nope"}`))
			})

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

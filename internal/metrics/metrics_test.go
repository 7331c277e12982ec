package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/neurocore/internal/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestMetrics_Observe(t *testing.T) {
	m := metrics.New()

	m.ObserveNode("document_agent", "reason", false)
	m.ObserveTool("get_document", true)
	m.ObserveRoute("")
	m.ObserveRoute("movie_agent")

	body := scrape(t, m)

	for _, want := range []string{
		`neurocore_graph_nodes_total{graph="document_agent",node="reason",outcome="ok"} 1`,
		`neurocore_tool_calls_total{outcome="error",tool="get_document"} 1`,
		`neurocore_supervisor_routes_total{agent="none"} 1`,
		`neurocore_supervisor_routes_total{agent="movie_agent"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetrics_Middleware(t *testing.T) {
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := m.Middleware()(mux)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/documents/7", nil))

	body := scrape(t, m)

	want := `neurocore_http_requests_total{method="GET",route="GET /api/documents/{id}",status="404"} 1`
	if !strings.Contains(body, want) {
		t.Errorf("metrics output missing %q\n%s", want, body)
	}
	if !strings.Contains(body, "neurocore_http_request_duration_seconds_count") {
		t.Error("metrics output missing request duration histogram")
	}
}

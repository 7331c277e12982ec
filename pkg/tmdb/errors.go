package tmdb

import (
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response from TMDB.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("tmdb: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NotFound reports whether the upstream resource does not exist.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

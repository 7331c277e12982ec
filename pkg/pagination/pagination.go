package pagination

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/neurocore/pkg/query"
)

// Clamp returns limit bounded by cfg: non-positive values take the default
// and values above the maximum are capped.
func (c Config) Clamp(limit int) int {
	if limit <= 0 {
		return c.DefaultLimit
	}
	if limit > c.MaxLimit {
		return c.MaxLimit
	}
	return limit
}

// Request represents a bounded query with optional search and sorting.
type Request struct {
	Limit  int               `json:"limit"`
	Search *string           `json:"search,omitempty"`
	Sort   []query.SortField `json:"sort,omitempty"`
}

// Normalize clamps the request limit according to cfg.
func (r *Request) Normalize(cfg Config) {
	r.Limit = cfg.Clamp(r.Limit)
}

// RequestFromQuery parses limit, search, and sort (comma-separated, "-" prefix for desc)
// from URL query values. The result is normalized according to cfg.
func RequestFromQuery(values url.Values, cfg Config) Request {
	limit, _ := strconv.Atoi(values.Get("limit"))

	var search *string
	if s := values.Get("search"); s != "" {
		search = &s
	}

	req := Request{
		Limit:  limit,
		Search: search,
		Sort:   query.ParseSortFields(values.Get("sort")),
	}

	req.Normalize(cfg)
	return req
}

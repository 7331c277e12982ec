// Package routes registers grouped HTTP routes onto a ServeMux using
// method-qualified patterns such as "GET /api/documents/{id}".
package routes

import "net/http"

// Route is a single method and pattern bound to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Path returns the ServeMux pattern for the route under prefix.
func (r Route) Path(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Path(prefix), r.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}

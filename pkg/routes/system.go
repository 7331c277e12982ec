package routes

import "net/http"

// System defines the interface for route registration and HTTP handler building.
type System interface {
	RegisterGroup(group Group)
	RegisterRoute(route Route)
	Build() http.Handler
	Groups() []Group
	Routes() []Route
}

type system struct {
	groups []Group
	routes []Route
}

// New creates an empty route System.
func New() System {
	return &system{}
}

func (s *system) RegisterGroup(group Group) {
	s.groups = append(s.groups, group)
}

func (s *system) RegisterRoute(route Route) {
	s.routes = append(s.routes, route)
}

// Build registers every route and group on a new ServeMux.
func (s *system) Build() http.Handler {
	mux := http.NewServeMux()
	for _, r := range s.routes {
		mux.HandleFunc(r.Path(""), r.Handler)
	}
	for _, g := range s.groups {
		g.register(mux, "")
	}
	return mux
}

func (s *system) Groups() []Group { return s.groups }

func (s *system) Routes() []Route { return s.routes }

package authorpages

import (
	"net/http"
	"strings"
)

// Router is an interface for registering HTTP routes.
// Patterns ending in "/" match the whole subtree, as with http.ServeMux.
type Router interface {
	HandleMethod(method, path string, handler http.Handler)
}

type stdRouter struct {
	router *http.ServeMux
}

// NewRouter creates a new router that wraps http.ServeMux.
// If router is nil, it uses http.DefaultServeMux.
func NewRouter(router *http.ServeMux) *stdRouter {
	if router == nil {
		router = http.DefaultServeMux
	}
	return &stdRouter{router: router}
}

func (r *stdRouter) HandleMethod(method, pattern string, handler http.Handler) {
	if method != "" {
		pattern = method + " " + pattern
	}
	r.router.Handle(pattern, handler)
}

func (r *stdRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Mount serves s for every GET and HEAD request under prefix. The prefix is
// stripped before rules are matched.
func Mount(router Router, prefix string, s *Server) {
	prefix = "/" + strings.Trim(prefix, "/")
	var h http.Handler = s.Handler()
	pattern := "/"
	if prefix != "/" {
		h = http.StripPrefix(prefix, h)
		pattern = prefix + "/"
	}
	router.HandleMethod(http.MethodGet, pattern, h)
}

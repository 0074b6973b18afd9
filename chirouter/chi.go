// Package chirouter mounts authorpages on a chi router.
package chirouter

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackielii/authorpages"
)

type chiRouter struct {
	router chi.Router
}

var _ authorpages.Router = (*chiRouter)(nil)

func NewChiRouter(r chi.Router) *chiRouter {
	return &chiRouter{router: r}
}

func (r *chiRouter) HandleMethod(method, path string, handler http.Handler) {
	if strings.HasSuffix(path, "/") {
		path += "*"
	}
	if method == "" {
		r.router.Handle(path, handler)
		return
	}
	r.router.Method(method, path, handler)
	if method == http.MethodGet {
		r.router.Method(http.MethodHead, path, handler)
	}
}

func (r *chiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

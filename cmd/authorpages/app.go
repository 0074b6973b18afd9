package main

import (
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/jackielii/authorpages"
	"github.com/jackielii/authorpages/internal/config"
)

// app wires the routing pieces for one config.
type app struct {
	ext     *authorpages.AuthorPages
	rewrite *authorpages.Rewrite
	server  *authorpages.Server
	pages   atomic.Pointer[[]string]

	mu  sync.Mutex
	cfg config.Config // settings the app is running with
}

func newApp(cfg config.Config) (*app, error) {
	a := &app{cfg: cfg}
	a.setPages(cfg.Pages)
	a.ext = authorpages.NewAuthorPages(func(pages []string) []string {
		return append(pages, *a.pages.Load()...)
	})
	a.ext.Logger = logger
	a.ext.Precedence = precedence(cfg.Precedence)

	opts := []authorpages.Option{
		authorpages.WithAuthorBase(cfg.AuthorBase),
		authorpages.WithExtensions(a.ext),
		authorpages.WithLogger(logger),
	}
	rw, err := authorpages.NewRewrite(opts...)
	if err != nil {
		return nil, err
	}
	a.rewrite = rw

	tmpls := authorpages.NewFSTemplates(os.DirFS(cfg.Templates.Root), cfg.Templates.Themes...)
	a.server = authorpages.NewServer(rw, tmpls, opts...)
	return a, nil
}

func (a *app) setPages(pages []string) {
	p := append([]string(nil), pages...)
	a.pages.Store(&p)
}

func precedence(s string) authorpages.Precedence {
	if s == "first" {
		return authorpages.FirstPageFirst
	}
	return authorpages.LastPageFirst
}

// reload applies the pages and precedence of cfg and rebuilds the rules. It
// returns the changed keys that only take effect after a restart.
func (a *app) reload(cfg config.Config) (restart []string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if cfg.Addr != a.cfg.Addr {
		restart = append(restart, "addr")
	}
	if cfg.AuthorBase != a.cfg.AuthorBase {
		restart = append(restart, "author_base")
	}
	if cfg.Templates.Root != a.cfg.Templates.Root || !slices.Equal(cfg.Templates.Themes, a.cfg.Templates.Themes) {
		restart = append(restart, "templates")
	}

	a.cfg.Pages = cfg.Pages
	a.cfg.Precedence = cfg.Precedence
	a.setPages(cfg.Pages)
	a.ext.Precedence = precedence(cfg.Precedence)
	return restart, a.rewrite.Rebuild()
}

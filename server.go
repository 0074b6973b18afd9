package authorpages

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// PageData is passed to every rendered template.
type PageData struct {
	Query    *Query
	Template string
	// AuthorPage is the matched extra page slug, if any.
	AuthorPage string
}

// Server renders the template selected for each request.
type Server struct {
	rewrite     *Rewrite
	templates   Templates
	filters     []TemplateFilter
	resolver    *Resolver
	onError     func(http.ResponseWriter, *http.Request, error)
	middlewares []func(http.Handler) http.Handler
	logger      *zap.Logger
}

// NewServer returns a server routing through rw. Extensions implementing
// TemplateFilter run in order on every request.
func NewServer(rw *Rewrite, templates Templates, opts ...Option) *Server {
	o := newOptions(opts)
	s := &Server{
		rewrite:     rw,
		templates:   templates,
		onError:     o.onError,
		middlewares: o.middlewares,
		logger:      o.logger,
		resolver:    &Resolver{Locator: templates, logger: o.logger},
	}
	for _, ext := range o.extensions {
		if f, ok := ext.(TemplateFilter); ok {
			s.filters = append(s.filters, f)
		}
		if a, ok := ext.(*AuthorPages); ok && s.resolver.Pages == nil {
			s.resolver.Pages = a.Pages()
		}
	}
	return s
}

// Handler returns the server wrapped in its middlewares.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = s.middlewares[i](h)
	}
	return h
}

// SelectTemplate returns the template for q after every TemplateFilter ran.
func (s *Server) SelectTemplate(q *Query) (string, error) {
	tmpl, ok := s.templates.Locate(Hierarchy(q)...)
	if !ok {
		return "", fmt.Errorf("%w for %s", ErrTemplateNotFound, q.Path)
	}
	for _, f := range s.filters {
		tmpl = f.Template(tmpl, q, s.templates)
	}
	return tmpl, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q, err := s.rewrite.Match(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ctx := queryCtx.WithValue(r.Context(), q)
	ctx = rewriteCtx.WithValue(ctx, s.rewrite)
	r = r.WithContext(ctx)

	tmpl, err := s.SelectTemplate(q)
	if err != nil {
		s.onError(w, r, err)
		return
	}
	data := &PageData{Query: q, Template: tmpl, AuthorPage: s.resolver.AuthorPage(q)}
	comp, err := s.templates.Component(tmpl, blockFor(r), data)
	if err != nil {
		s.onError(w, r, err)
		return
	}
	s.logger.Debug("rendering",
		zap.String("path", q.Path),
		zap.String("template", tmpl),
		zap.String("author_page", data.AuthorPage))

	bw := newBuffered(w)
	if err := comp.Render(ctx, bw); err != nil {
		bw.discard()
		s.onError(w, r, fmt.Errorf("render %s: %w", tmpl, err))
		return
	}
	if err := bw.close(); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

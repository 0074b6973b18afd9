package authorpages

import (
	"strings"

	"go.uber.org/zap"
)

// PageTemplatePrefix prefixes the template name of an extra author page.
const PageTemplatePrefix = "author-page-"

// Resolver picks the extra author page and its template for a request.
type Resolver struct {
	Pages   *Pages
	Locator TemplateLocator
	logger  *zap.Logger
}

// AuthorPage returns the extra page slug of an author request, or "" when the
// request is not for an author archive or the slug is not configured.
func (r *Resolver) AuthorPage(q *Query) string {
	if !q.IsAuthor() {
		return ""
	}
	vals := q.Values(PageQueryVar)
	if len(vals) == 0 {
		return ""
	}
	page := strings.TrimSpace(vals[0])
	if page == "" {
		return ""
	}
	if !r.Pages.Contains(page) {
		if r.logger != nil {
			r.logger.Debug("ignoring unknown author page", zap.String("page", page))
		}
		return ""
	}
	return page
}

// SelectTemplate returns the author-page-{slug} template if the request is
// for an extra page and the template exists, and def otherwise.
func (r *Resolver) SelectTemplate(def string, q *Query) string {
	page := r.AuthorPage(q)
	if page == "" || r.Locator == nil {
		return def
	}
	if tmpl, ok := r.Locator.Locate(PageTemplatePrefix + page); ok {
		return tmpl
	}
	return def
}

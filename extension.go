package authorpages

import (
	"slices"

	"go.uber.org/zap"
)

// Extension contributes to routing. It implements any of
// QueryVarContributor, RuleContributor and TemplateFilter.
type Extension any

// QueryVarContributor adds public query vars.
type QueryVarContributor interface {
	QueryVars(vars []string) []string
}

// RuleContributor rewrites the rule table on Rebuild.
type RuleContributor interface {
	Rules(rules RuleSet, rw *Rewrite) RuleSet
}

// TemplateFilter may replace the template selected for a request.
type TemplateFilter interface {
	Template(tmpl string, q *Query, loc TemplateLocator) string
}

// AuthorPages is the extension that serves extra author pages.
type AuthorPages struct {
	pages *Pages
	// Precedence decides which page wins when rules of two pages collide.
	Precedence Precedence
	Logger     *zap.Logger
}

var (
	_ QueryVarContributor = (*AuthorPages)(nil)
	_ RuleContributor     = (*AuthorPages)(nil)
	_ TemplateFilter      = (*AuthorPages)(nil)
)

// NewAuthorPages returns the extension with its page registry built from
// filters.
func NewAuthorPages(filters ...PageFilter) *AuthorPages {
	return &AuthorPages{pages: NewPages(filters...), Logger: zap.NewNop()}
}

// Pages returns the page registry. Filters added to it take effect on the
// next Rebuild.
func (a *AuthorPages) Pages() *Pages {
	return a.pages
}

// QueryVars registers author_page.
func (a *AuthorPages) QueryVars(vars []string) []string {
	if slices.Contains(vars, PageQueryVar) {
		return vars
	}
	return append(vars, PageQueryVar)
}

// Rules puts the derived extra page rules in front of rules. The table is
// returned untouched when either side is empty.
func (a *AuthorPages) Rules(rules RuleSet, rw *Rewrite) RuleSet {
	d := NewDeriver(rw.Expander())
	d.Precedence = a.Precedence
	derived := d.Derive(rw.AuthorPermastruct(), a.pages.List())
	if len(derived) == 0 || len(rules) == 0 {
		return rules
	}
	a.logger().Debug("adding author page rules", zap.Int("rules", len(derived)))
	return rules.Prepend(derived)
}

// Template swaps in the author-page-{slug} template when it exists.
func (a *AuthorPages) Template(tmpl string, q *Query, loc TemplateLocator) string {
	r := &Resolver{Pages: a.pages, Locator: loc, logger: a.logger()}
	return r.SelectTemplate(tmpl, q)
}

func (a *AuthorPages) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

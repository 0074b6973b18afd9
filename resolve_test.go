package authorpages

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type mapLocator map[string]string

func (m mapLocator) Locate(names ...string) (string, bool) {
	for _, n := range names {
		if p, ok := m[n]; ok {
			return p, true
		}
	}
	return "", false
}

func TestResolverAuthorPage(t *testing.T) {
	r := &Resolver{Pages: NewPages(StaticPages("recipes"))}
	tests := []struct {
		name string
		vars url.Values
		want string
	}{
		{
			name: "extra page",
			vars: url.Values{"author_name": {"jane"}, "author_page": {"recipes"}},
			want: "recipes",
		},
		{
			name: "not an author request",
			vars: url.Values{"author_page": {"recipes"}},
			want: "",
		},
		{
			name: "unknown page",
			vars: url.Values{"author_name": {"jane"}, "author_page": {"bio"}},
			want: "",
		},
		{
			name: "first of several values, trimmed",
			vars: url.Values{"author": {"7"}, "author_page": {" recipes ", "bio"}},
			want: "recipes",
		},
		{
			name: "no page",
			vars: url.Values{"author_name": {"jane"}},
			want: "",
		},
		{
			name: "blank page",
			vars: url.Values{"author_name": {"jane"}, "author_page": {"  "}},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.AuthorPage(&Query{Vars: tt.vars})
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("AuthorPage() mismatch (-got +want):\n%s", diff)
			}
		})
	}

	if got := r.AuthorPage(nil); got != "" {
		t.Errorf("expected empty page for nil query, got %q", got)
	}
}

func TestResolverSelectTemplate(t *testing.T) {
	loc := mapLocator{"author-page-recipes": "themes/child/author-page-recipes.html"}
	pages := NewPages(StaticPages("recipes", "bio"))
	tests := []struct {
		name    string
		locator TemplateLocator
		vars    url.Values
		want    string
	}{
		{
			name:    "extra page template",
			locator: loc,
			vars:    url.Values{"author_name": {"jane"}, "author_page": {"recipes"}},
			want:    "themes/child/author-page-recipes.html",
		},
		{
			name:    "template missing",
			locator: loc,
			vars:    url.Values{"author_name": {"jane"}, "author_page": {"bio"}},
			want:    "author.html",
		},
		{
			name:    "no extra page",
			locator: loc,
			vars:    url.Values{"author_name": {"jane"}},
			want:    "author.html",
		},
		{
			name:    "no locator",
			locator: nil,
			vars:    url.Values{"author_name": {"jane"}, "author_page": {"recipes"}},
			want:    "author.html",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{Pages: pages, Locator: tt.locator}
			got := r.SelectTemplate("author.html", &Query{Vars: tt.vars})
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("SelectTemplate() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

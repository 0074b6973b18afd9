package authorpages

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSTemplatesLocate(t *testing.T) {
	fsys := fstest.MapFS{
		"child/author-page-recipes.html":  {Data: []byte("child recipes")},
		"parent/author-page-recipes.html": {Data: []byte("parent recipes")},
		"parent/author.html":              {Data: []byte("author")},
		"parent/index.html/nested":        {Data: []byte("dir, not a template")},
	}
	tmpls := NewFSTemplates(fsys, "child", "parent")

	p, ok := tmpls.Locate("author-page-recipes")
	assert.True(t, ok)
	assert.Equal(t, "child/author-page-recipes.html", p)

	p, ok = tmpls.Locate("author-jane", "author")
	assert.True(t, ok)
	assert.Equal(t, "parent/author.html", p)

	_, ok = tmpls.Locate("", "index")
	assert.False(t, ok)
}

func TestFSTemplatesComponent(t *testing.T) {
	fsys := fstest.MapFS{
		"author.html": {Data: []byte(`<h1>{{.}}</h1>{{define "content"}}<p>{{.}}</p>{{end}}`)},
		"bad.html":    {Data: []byte(`{{.`)},
	}
	tmpls := NewFSTemplates(fsys)

	render := func(block string) string {
		t.Helper()
		comp, err := tmpls.Component("author.html", block, "jane")
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, comp.Render(context.Background(), &buf))
		return buf.String()
	}
	assert.Equal(t, "<h1>jane</h1>", render(""))
	assert.Equal(t, "<p>jane</p>", render("content"))
	assert.Equal(t, "<h1>jane</h1>", render("missing"))

	_, err := tmpls.Component("bad.html", "", nil)
	assert.Error(t, err)
}

func TestHierarchy(t *testing.T) {
	assert.Equal(t, []string{"author-jane", "author", "archive", "index"},
		Hierarchy(&Query{Vars: url.Values{"author_name": {"jane"}}}))
	assert.Equal(t, []string{"author-7", "author", "archive", "index"},
		Hierarchy(&Query{Vars: url.Values{"author": {"7"}}}))
	assert.Equal(t, []string{"index"}, Hierarchy(&Query{Vars: url.Values{}}))
}

package authorpages

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteURLFor(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		author  string
		page    string
		want    string
		wantErr bool
	}{
		{name: "extra page", base: "author/{author}", author: "jane", page: "recipes", want: "/author/jane/recipes"},
		{name: "archive", base: "/author/{author}/", author: "jane", want: "/author/jane"},
		{name: "escaped", base: "writers/{author}", author: "jane doe", page: "/bio/", want: "/writers/jane%20doe/bio"},
		{name: "tag in the middle", base: "{author}/profile", author: "jane", page: "bio", want: "/jane/profile/bio"},
		{name: "regex base", base: "author/([^/]+)", author: "jane", wantErr: true},
		{name: "unknown tag", base: "{lang}/author/{author}", author: "jane", wantErr: true},
		{name: "routing off", base: "", author: "jane", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, err := NewRewrite(WithAuthorBase(tt.base))
			require.NoError(t, err)
			got, err := rw.URLFor(tt.author, tt.page)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURLForFromRequest(t *testing.T) {
	_, err := URLFor(context.Background(), "recipes")
	assert.Error(t, err)

	rw, err := NewRewrite()
	require.NoError(t, err)
	s := NewServer(rw, urlTemplates{})

	rec := get(s, "/author/jane")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/author/jane/recipes /author/john/bio /author/jane", rec.Body.String())
}

// urlTemplates renders the URLs of a few pages relative to the request.
type urlTemplates struct{}

func (urlTemplates) Locate(...string) (string, bool) { return "urls", true }

func (urlTemplates) Component(string, string, any) (templ.Component, error) {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var urls []string
		for _, args := range [][]string{{"recipes"}, {"bio", "john"}, {""}} {
			u, err := URLFor(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			urls = append(urls, u)
		}
		_, err := io.WriteString(w, strings.Join(urls, " "))
		return err
	}), nil
}

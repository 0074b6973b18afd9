package authorpages

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackielii/ctxkey"
)

var (
	queryCtx   = ctxkey.New[*Query]("authorpages.query", nil)
	rewriteCtx = ctxkey.New[*Rewrite]("authorpages.rewrite", nil)
)

// QueryFromContext returns the query resolved for the current request.
func QueryFromContext(ctx context.Context) *Query {
	return queryCtx.Value(ctx)
}

// URLFor returns the URL of an extra author page. Without an explicit author
// the author of the current request is used. An empty page gives the plain
// author archive URL.
func URLFor(ctx context.Context, page string, author ...string) (string, error) {
	rw := rewriteCtx.Value(ctx)
	if rw == nil {
		return "", errors.New("rewrite not found in context")
	}
	name := QueryFromContext(ctx).Get(AuthorTag.QueryVar)
	if len(author) > 0 {
		name = author[0]
	}
	if name == "" {
		return "", errors.New("urlfor: no author")
	}
	return rw.URLFor(name, page)
}

// URLFor builds the URL of page for author from the author permastruct.
func (rw *Rewrite) URLFor(author, page string) (string, error) {
	base := rw.AuthorPermastruct()
	if base == "" {
		return "", errors.New("urlfor: author routing is off")
	}
	segments, err := parseSegments(base)
	if err != nil {
		return "", fmt.Errorf("urlfor: %w", err)
	}
	var sb strings.Builder
	filled := false
	for _, seg := range segments {
		if !seg.param {
			sb.WriteString(seg.name)
			continue
		}
		if seg.name != AuthorTag.Name {
			return "", fmt.Errorf("urlfor: pattern %s: unsupported tag {%s}", base, seg.name)
		}
		sb.WriteString(url.PathEscape(author))
		filled = true
	}
	if !filled {
		return "", fmt.Errorf("urlfor: pattern %s has no {%s} tag", base, AuthorTag.Name)
	}
	u := "/" + strings.Trim(sb.String(), "/")
	if page = strings.Trim(page, "/"); page != "" {
		u += "/" + page
	}
	return u, nil
}

type segment struct {
	name  string
	param bool
}

// parseSegments splits pattern into literal and {param} segments.
func parseSegments(pattern string) (segments []segment, err error) {
	rest := pattern
	for rest != "" {
		start := strings.Index(rest, "{")
		if start == -1 {
			segments = append(segments, segment{name: rest})
			break
		}
		if start > 0 {
			segments = append(segments, segment{name: rest[:start]})
		}
		rest = rest[start+1:] // move over the '{'
		end := strings.Index(rest, "}")
		if end == -1 {
			return nil, fmt.Errorf("pattern %s: unmatched {", pattern)
		}
		name := rest[:end]
		rest = rest[end+1:]
		segments = append(segments, segment{name: name, param: true})
	}
	return segments, nil
}

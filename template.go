package authorpages

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"

	"github.com/a-h/templ"
)

// ErrTemplateNotFound is returned when no template in a hierarchy exists.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateLocator resolves the first existing template among names.
type TemplateLocator interface {
	Locate(names ...string) (string, bool)
}

// Templates locates templates and turns them into renderable components.
type Templates interface {
	TemplateLocator
	// Component returns the component for tmpl. A non-empty block selects a
	// named block of the template when it defines one.
	Component(tmpl, block string, data any) (templ.Component, error)
}

// FSTemplates serves html/template files from a file system. Directories are
// searched in order, so a child theme directory goes before its parent.
type FSTemplates struct {
	fsys fs.FS
	dirs []string
	ext  string

	mu     sync.Mutex
	parsed map[string]*template.Template
}

// NewFSTemplates returns templates rooted at dirs within fsys. With no dirs
// the root of fsys is searched.
func NewFSTemplates(fsys fs.FS, dirs ...string) *FSTemplates {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return &FSTemplates{fsys: fsys, dirs: dirs, ext: ".html", parsed: map[string]*template.Template{}}
}

// Locate implements TemplateLocator.
func (t *FSTemplates) Locate(names ...string) (string, bool) {
	for _, name := range names {
		if name == "" {
			continue
		}
		for _, dir := range t.dirs {
			p := path.Join(dir, name+t.ext)
			if st, err := fs.Stat(t.fsys, p); err == nil && !st.IsDir() {
				return p, true
			}
		}
	}
	return "", false
}

// Component implements Templates.
func (t *FSTemplates) Component(tmpl, block string, data any) (templ.Component, error) {
	parsed, err := t.parse(tmpl)
	if err != nil {
		return nil, err
	}
	if block != "" {
		if b := parsed.Lookup(block); b != nil {
			return templ.FromGoHTML(b, data), nil
		}
	}
	return templ.FromGoHTML(parsed, data), nil
}

func (t *FSTemplates) parse(tmpl string) (*template.Template, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.parsed[tmpl]; ok {
		return p, nil
	}
	p, err := template.ParseFS(t.fsys, tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", tmpl, err)
	}
	t.parsed[tmpl] = p
	return p, nil
}

// Hierarchy returns the template names tried for q, most specific first.
func Hierarchy(q *Query) []string {
	if q.IsAuthor() {
		var names []string
		if name := q.Get(AuthorTag.QueryVar); name != "" {
			names = append(names, "author-"+name)
		}
		if id := q.Get("author"); id != "" {
			names = append(names, "author-"+id)
		}
		return append(names, "author", "archive", "index")
	}
	return []string{"index"}
}

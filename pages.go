package authorpages

import (
	"slices"
	"strings"
	"sync"
)

// PageFilter is one step of the extra pages extension point. It receives the
// pages collected so far, starting with an empty slice, and returns the
// updated list.
type PageFilter func(pages []string) []string

// StaticPages returns a PageFilter that appends slugs to the list.
func StaticPages(slugs ...string) PageFilter {
	return func(pages []string) []string {
		return append(pages, slugs...)
	}
}

// Pages is the registry of extra author page slugs. It holds no state of its
// own: every call to List runs the filters again.
type Pages struct {
	mu      sync.RWMutex
	filters []PageFilter
}

// NewPages creates a registry backed by filters, applied in order.
func NewPages(filters ...PageFilter) *Pages {
	return &Pages{filters: filters}
}

// Add appends filters to the extension point.
func (p *Pages) Add(filters ...PageFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters = append(p.filters, filters...)
}

// List returns the configured slugs trimmed, deduplicated and with empty
// entries removed. The first occurrence of a slug fixes its position. Filters
// run outside the lock, so a filter may call Add.
func (p *Pages) List() []string {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	filters := slices.Clone(p.filters)
	p.mu.RUnlock()

	var raw []string
	for _, f := range filters {
		if f == nil {
			continue
		}
		raw = f(raw)
	}
	return sanitizePages(raw)
}

// Contains reports whether slug is currently configured.
func (p *Pages) Contains(slug string) bool {
	return slices.Contains(p.List(), strings.TrimSpace(slug))
}

func sanitizePages(raw []string) []string {
	pages := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		// "0" is dropped along with empty entries
		if s == "" || s == "0" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		pages = append(pages, s)
	}
	return pages
}

package authorpages

import (
	"strings"
)

// Precedence controls how the rules of several pages are folded together.
type Precedence int

const (
	// LastPageFirst gives the last configured page the highest priority:
	// each page's rules are placed in front of the rules collected so far.
	LastPageFirst Precedence = iota
	// FirstPageFirst keeps configuration order.
	FirstPageFirst
)

// PageQueryVar is the query var carrying the matched extra page slug.
const PageQueryVar = "author_page"

// Deriver derives extra page rules from the author permalink structure.
type Deriver struct {
	Expander Expander
	// AuthorMatch is the target fragment of an author lookup by name. Only
	// rules whose target contains it are kept, and the page marker is
	// inserted right after it.
	AuthorMatch string
	Precedence  Precedence
}

// NewDeriver returns a Deriver that expands with e. If e is a
// *PermastructExpander its AuthorMatch is used, otherwise the default
// index.php?author_name=$1.
func NewDeriver(e Expander) *Deriver {
	if e == nil {
		e = NewExpander()
	}
	match := DefaultIndex + "?" + AuthorTag.QueryVar + "=" + Backref(1)
	if pe, ok := e.(*PermastructExpander); ok {
		match = pe.AuthorMatch()
	}
	return &Deriver{Expander: e, AuthorMatch: match}
}

// Derive returns the rules for every page under base. It returns nil when
// base is empty.
func (d *Deriver) Derive(base string, pages []string) RuleSet {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return nil
	}
	var rules RuleSet
	for _, page := range pages {
		pageRules := d.pageRules(d.Expander.Expand(base+"/"+page), page)
		if d.Precedence == FirstPageFirst {
			rules = rules.Append(pageRules)
		} else {
			rules = rules.Prepend(pageRules)
		}
	}
	return rules
}

// pageRules keeps the expanded rules that match on the page and on the author
// name, and marks them with the page slug.
func (d *Deriver) pageRules(expanded RuleSet, page string) RuleSet {
	var rules RuleSet
	marked := d.AuthorMatch + "&" + PageQueryVar + "=" + page
	for _, r := range expanded {
		if !strings.Contains(r.Pattern, page) {
			continue
		}
		if !strings.Contains(r.Target, d.AuthorMatch) {
			continue
		}
		rules = rules.Add(r.Pattern, strings.ReplaceAll(r.Target, d.AuthorMatch, marked))
	}
	return rules
}

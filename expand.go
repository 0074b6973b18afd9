package authorpages

import (
	"strconv"
	"strings"
)

// Expander expands a permalink structure into the low level rules that serve
// it, covering feeds, embeds and paging for every directory prefix.
type Expander interface {
	Expand(permastruct string) RuleSet
}

// Tag is a permastruct placeholder such as {author}.
type Tag struct {
	Name     string // placeholder name, without braces
	Regex    string // capture group that matches the tag
	QueryVar string // query var populated from the capture
}

// DefaultIndex is the script name rule targets are rooted at.
const DefaultIndex = "index.php"

// AuthorTag captures the author nicename.
var AuthorTag = Tag{Name: "author", Regex: "([^/]+)", QueryVar: "author_name"}

// DefaultFeeds are the feed types matched by feed rules.
var DefaultFeeds = []string{"feed", "rdf", "rss", "rss2", "atom"}

// PermastructExpander is the default Expander.
//
// Tags are written {name}. A segment written as a raw capture group, such as
// ([^/]+), is mapped back to the first tag with the same Regex. Unknown groups
// still capture but populate nothing.
type PermastructExpander struct {
	Index          string
	Tags           []Tag
	Feeds          []string
	FeedBase       string
	PaginationBase string
	EmbedBase      string
	// NoFeeds, NoPaging and NoEmbed turn off the matching permutations.
	NoFeeds  bool
	NoPaging bool
	NoEmbed  bool
}

// NewExpander returns an expander with the author tag and default bases.
func NewExpander(tags ...Tag) *PermastructExpander {
	return &PermastructExpander{
		Index:          DefaultIndex,
		Tags:           append([]Tag{AuthorTag}, tags...),
		Feeds:          DefaultFeeds,
		FeedBase:       "feed",
		PaginationBase: "page",
		EmbedBase:      "embed",
	}
}

// Backref formats a reference to capture group n for use in a rule target.
func Backref(n int) string {
	return "$" + strconv.Itoa(n)
}

type token struct {
	literal  string
	regex    string
	queryVar string
	capture  bool
}

// Expand implements Expander. Rules for deeper prefixes come first, and each
// prefix yields feed, feed shorthand, embed, paged and plain rules in that
// order.
func (e *PermastructExpander) Expand(permastruct string) RuleSet {
	permastruct = strings.Trim(permastruct, "/")
	if permastruct == "" {
		return nil
	}

	var (
		prefixes []RuleSet
		match    string
		query    []string
		numToks  int
	)
	for _, dir := range splitDirs(permastruct) {
		if dir == "" {
			continue
		}
		for _, tok := range e.tokenize(dir) {
			if !tok.capture {
				match += tok.literal
				continue
			}
			match += tok.regex
			numToks++
			if tok.queryVar != "" {
				query = append(query, tok.queryVar+"="+Backref(numToks))
			}
		}
		prefixes = append(prefixes, e.expandDir(match, query, numToks))
		match += "/"
	}

	var rules RuleSet
	for i := len(prefixes) - 1; i >= 0; i-- {
		rules = rules.Append(prefixes[i])
	}
	if len(rules) == 0 {
		return nil
	}
	return rules
}

func (e *PermastructExpander) expandDir(match string, query []string, numToks int) RuleSet {
	if len(query) == 0 {
		return nil
	}
	var rules RuleSet
	match = strings.TrimSuffix(match, "/")
	target := e.index() + "?" + strings.Join(query, "&")
	next := Backref(numToks + 1)
	if !e.NoFeeds && len(e.Feeds) > 0 {
		feeds := "(" + strings.Join(e.Feeds, "|") + ")"
		rules = rules.Add(match+"/"+e.FeedBase+"/"+feeds+"/?$", target+"&feed="+next)
		rules = rules.Add(match+"/"+feeds+"/?$", target+"&feed="+next)
	}
	if !e.NoEmbed && e.EmbedBase != "" {
		rules = rules.Add(match+"/"+e.EmbedBase+"/?$", target+"&embed=true")
	}
	if !e.NoPaging && e.PaginationBase != "" {
		rules = rules.Add(match+"/"+e.PaginationBase+"/?([0-9]{1,})/?$", target+"&paged="+next)
	}
	return rules.Add(match+"/?$", target)
}

func (e *PermastructExpander) index() string {
	if e.Index == "" {
		return DefaultIndex
	}
	return e.Index
}

// AuthorMatch is the target fragment produced for an author lookup by name.
func (e *PermastructExpander) AuthorMatch() string {
	return e.index() + "?" + AuthorTag.QueryVar + "=" + Backref(1)
}

func (e *PermastructExpander) tagByName(name string) (Tag, bool) {
	for _, t := range e.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

func (e *PermastructExpander) tagByRegex(re string) (Tag, bool) {
	for _, t := range e.Tags {
		if t.Regex == re {
			return t, true
		}
	}
	return Tag{}, false
}

// tokenize splits one directory of a permastruct into literals and captures.
func (e *PermastructExpander) tokenize(dir string) []token {
	segments, err := parseSegments(dir)
	if err != nil {
		return e.splitGroups(dir)
	}
	var (
		toks    []token
		literal string
	)
	for _, seg := range segments {
		if !seg.param || !isTagName(seg.name) {
			if seg.param {
				// a regex quantifier such as {1,}
				literal += "{" + seg.name + "}"
			} else {
				literal += seg.name
			}
			continue
		}
		toks = append(toks, e.splitGroups(literal)...)
		literal = ""
		if t, ok := e.tagByName(seg.name); ok {
			toks = append(toks, token{regex: t.Regex, queryVar: t.QueryVar, capture: true})
		} else {
			toks = append(toks, token{regex: "([^/]+)", queryVar: seg.name, capture: true})
		}
	}
	return append(toks, e.splitGroups(literal)...)
}

func isTagName(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for _, c := range s {
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// splitGroups pulls top level capture groups out of a literal.
func (e *PermastructExpander) splitGroups(s string) []token {
	var toks []token
	for s != "" {
		start := openGroup(s)
		if start < 0 {
			toks = append(toks, token{literal: s})
			break
		}
		end := closeGroup(s, start)
		if end < 0 {
			toks = append(toks, token{literal: s})
			break
		}
		if start > 0 {
			toks = append(toks, token{literal: s[:start]})
		}
		group := s[start : end+1]
		tok := token{regex: group, capture: true}
		if t, ok := e.tagByRegex(group); ok {
			tok.queryVar = t.QueryVar
		}
		toks = append(toks, tok)
		s = s[end+1:]
	}
	return toks
}

// splitDirs splits a permastruct at slashes outside groups and character
// classes, so ([^/]+) stays one directory.
func splitDirs(s string) []string {
	var (
		dirs  []string
		depth int
		class bool
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case class:
			if c == ']' {
				class = false
			}
		case c == '[':
			class = true
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == '/' && depth == 0:
			dirs = append(dirs, s[start:i])
			start = i + 1
		}
	}
	return append(dirs, s[start:])
}

// openGroup finds the first unescaped "(" that starts a capturing group.
func openGroup(s string) int {
	class := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case class:
			class = c != ']'
		case c == '[':
			class = true
		case c == '(':
			if !strings.HasPrefix(s[i:], "(?") {
				return i
			}
		}
	}
	return -1
}

func closeGroup(s string, start int) int {
	depth := 0
	class := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case class:
			class = c != ']'
		case c == '[':
			class = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

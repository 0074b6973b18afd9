package authorpages

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrNoMatch is returned by Match when no rule matches the path.
var ErrNoMatch = errors.New("no rewrite rule matches")

// DefaultAuthorBase is the default author permalink structure.
const DefaultAuthorBase = "author/{author}"

var defaultQueryVars = []string{AuthorTag.QueryVar, "author", "feed", "paged", "embed"}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Rewrite is the rewrite rule table. It is built from the author permalink
// structure, then handed to every RuleContributor extension on Rebuild.
type Rewrite struct {
	authorBase string
	expander   Expander
	extra      RuleSet
	extensions []Extension
	logger     *zap.Logger

	rebuildMu sync.Mutex
	mu        sync.RWMutex
	rules     RuleSet
	compiled  []compiledRule
	queryVars []string
}

// NewRewrite builds a rule table and runs the first Rebuild. A non-nil error
// reports rules that were dropped; the table is still usable.
func NewRewrite(opts ...Option) (*Rewrite, error) {
	o := newOptions(opts)
	rw := &Rewrite{
		authorBase: o.authorBase,
		expander:   o.expander,
		extra:      o.rules,
		extensions: o.extensions,
		logger:     o.logger,
	}
	return rw, rw.Rebuild()
}

// AuthorPermastruct returns the author permalink structure, or "" when author
// archives are not routed.
func (rw *Rewrite) AuthorPermastruct() string {
	return rw.authorBase
}

// Expander returns the expander used for rule generation.
func (rw *Rewrite) Expander() Expander {
	return rw.expander
}

// Rules returns a copy of the current rule table.
func (rw *Rewrite) Rules() RuleSet {
	rw.mu.RLock()
	defer rw.mu.RUnlock()
	return slices.Clone(rw.rules)
}

// QueryVars returns the public query vars a match may populate.
func (rw *Rewrite) QueryVars() []string {
	rw.mu.RLock()
	defer rw.mu.RUnlock()
	return slices.Clone(rw.queryVars)
}

// Rebuild regenerates the rule table and query vars. Rebuilds are serialized
// and requests keep using the previous table until the new one is swapped in.
func (rw *Rewrite) Rebuild() error {
	rw.rebuildMu.Lock()
	defer rw.rebuildMu.Unlock()

	vars := slices.Clone(defaultQueryVars)
	for _, ext := range rw.extensions {
		if c, ok := ext.(QueryVarContributor); ok {
			vars = c.QueryVars(vars)
		}
	}

	var rules RuleSet
	if rw.authorBase != "" {
		rules = rw.expander.Expand(rw.authorBase)
	}
	rules = rules.Append(rw.extra)
	for _, ext := range rw.extensions {
		if c, ok := ext.(RuleContributor); ok {
			rules = c.Rules(rules, rw)
		}
	}

	var errs []error
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile("^" + r.Pattern)
		if err != nil {
			rw.logger.Warn("dropping rewrite rule", zap.String("pattern", r.Pattern), zap.Error(err))
			errs = append(errs, fmt.Errorf("compile rule %q: %w", r.Pattern, err))
			continue
		}
		compiled = append(compiled, compiledRule{Rule: r, re: re})
	}

	rw.mu.Lock()
	rw.rules = rules
	rw.compiled = compiled
	rw.queryVars = vars
	rw.mu.Unlock()

	rw.logger.Debug("rewrite rules rebuilt",
		zap.Int("rules", len(compiled)),
		zap.Strings("query_vars", vars))
	return errors.Join(errs...)
}

// Match resolves a request path against the rule table. Only public query
// vars are copied into the result.
func (rw *Rewrite) Match(path string) (*Query, error) {
	path = strings.TrimPrefix(path, "/")

	rw.mu.RLock()
	defer rw.mu.RUnlock()
	for _, r := range rw.compiled {
		groups := r.re.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		target := expandTarget(r.Target, groups)
		_, rawQuery, _ := strings.Cut(target, "?")
		values, err := url.ParseQuery(rawQuery)
		if err != nil {
			rw.logger.Debug("bad rule target", zap.String("target", target), zap.Error(err))
		}
		q := &Query{Path: path, Rule: r.Rule, Vars: url.Values{}}
		for k, v := range values {
			if slices.Contains(rw.queryVars, k) {
				q.Vars[k] = v
			}
		}
		return q, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoMatch, path)
}

// expandTarget replaces $N references with query-escaped capture groups.
func expandTarget(target string, groups []string) string {
	var sb strings.Builder
	for {
		i := strings.IndexByte(target, '$')
		if i < 0 {
			sb.WriteString(target)
			return sb.String()
		}
		sb.WriteString(target[:i])
		target = target[i+1:]
		j := 0
		for j < len(target) && target[j] >= '0' && target[j] <= '9' {
			j++
		}
		if j == 0 {
			sb.WriteByte('$')
			continue
		}
		n, _ := strconv.Atoi(target[:j])
		if n < len(groups) {
			sb.WriteString(url.QueryEscape(groups[n]))
		}
		target = target[j:]
	}
}

// Query holds the query vars resolved for a request.
type Query struct {
	Path string
	Rule Rule
	Vars url.Values
}

// Get returns the first value of name.
func (q *Query) Get(name string) string {
	if q == nil {
		return ""
	}
	return q.Vars.Get(name)
}

// Values returns every value of name.
func (q *Query) Values(name string) []string {
	if q == nil {
		return nil
	}
	return q.Vars[name]
}

// IsAuthor reports whether the request is for an author archive.
func (q *Query) IsAuthor() bool {
	return q.Get(AuthorTag.QueryVar) != "" || q.Get("author") != ""
}

package authorpages

// Rule maps a request path pattern to an internal query string. Target may
// reference capture groups of Pattern with $1, $2 and so on.
type Rule struct {
	Pattern string
	Target  string
}

// RuleSet is an ordered rule table keyed by pattern. Earlier rules are tried
// first.
type RuleSet []Rule

// Add appends rule unless its pattern is already present.
func (rs RuleSet) Add(pattern, target string) RuleSet {
	if rs.Index(pattern) >= 0 {
		return rs
	}
	return append(rs, Rule{Pattern: pattern, Target: target})
}

// Index returns the position of pattern, or -1.
func (rs RuleSet) Index(pattern string) int {
	for i, r := range rs {
		if r.Pattern == pattern {
			return i
		}
	}
	return -1
}

// Target returns the target for pattern.
func (rs RuleSet) Target(pattern string) (string, bool) {
	if i := rs.Index(pattern); i >= 0 {
		return rs[i].Target, true
	}
	return "", false
}

// Prepend returns front followed by the rules of rs whose patterns are not in
// front. On a duplicate pattern the rule from front wins. Neither input is
// modified.
func (rs RuleSet) Prepend(front RuleSet) RuleSet {
	out := make(RuleSet, 0, len(front)+len(rs))
	for _, r := range front {
		out = out.Add(r.Pattern, r.Target)
	}
	for _, r := range rs {
		out = out.Add(r.Pattern, r.Target)
	}
	return out
}

// Append returns rs followed by the rules of back whose patterns are not in
// rs.
func (rs RuleSet) Append(back RuleSet) RuleSet {
	return back.Prepend(rs)
}

package authorpages

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// PrintRules formats rules one per line, in match order.
func PrintRules(rules RuleSet) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	for i, r := range rules {
		fmt.Fprintf(tw, "%d\t%s\t=> %s\n", i+1, r.Pattern, r.Target)
	}
	_ = tw.Flush()
	return sb.String()
}

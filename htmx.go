package authorpages

import (
	"net/http"
	"strings"

	"github.com/angelofallars/htmx-go"
)

// DefaultBlock is rendered for HTMX requests without an HX-Target.
const DefaultBlock = "content"

// blockFor returns the template block an HTMX request asks for, or "" for a
// full page. The HX-Target id doubles as the block name.
func blockFor(r *http.Request) string {
	if !htmx.IsHTMX(r) {
		return ""
	}
	target := strings.TrimPrefix(r.Header.Get("HX-Target"), "#")
	if target == "" || strings.ContainsAny(target, " \t") {
		return DefaultBlock
	}
	return target
}

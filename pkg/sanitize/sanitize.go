package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
	whitespace   = regexp.MustCompile(`\s+`)
)

// UGC keeps safe formatting markup in user content and drops scripts, handlers and the like.
func UGC(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}

// PlainText strips all markup, used for search documents.
func PlainText(s string) string {
	clean := strictPolicy.Sanitize(s)
	clean = html.UnescapeString(clean)
	return strings.TrimSpace(whitespace.ReplaceAllString(clean, " "))
}

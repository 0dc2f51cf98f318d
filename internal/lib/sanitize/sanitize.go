// Package sanitize neutralizes markup in user-supplied text before it is
// written to a response.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy keeps harmless formatting and drops scripts, event handlers and
// unsafe URLs. Policies are safe for concurrent use once built.
var policy = bluemonday.UGCPolicy()

// tagRe matches the tags the policy lets through. Sanitized output never
// has a raw '<' or '>' outside a tag.
var tagRe = regexp.MustCompile(`<[^>]*>`)

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Text returns s with unsafe markup removed. Outside the allowed tags only
// '<' and '>' are escaped, so quotes, apostrophes and ampersands come back
// as they were sent.
func Text(s string) string {
	clean := policy.Sanitize(s)

	var b strings.Builder
	b.Grow(len(clean))

	last := 0
	for _, loc := range tagRe.FindAllStringIndex(clean, -1) {
		b.WriteString(plain(clean[last:loc[0]]))
		b.WriteString(clean[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(plain(clean[last:]))

	return b.String()
}

func plain(segment string) string {
	return angleEscaper.Replace(html.UnescapeString(segment))
}

package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// linkPattern matches a symbol reference: "link Foo#bar(int) optional label".
// Captures: 1=symbol, 2=display text (may be empty).
var linkPattern = regexp.MustCompile(`(?s)^link(?:plain)?\s+([a-zA-Z0-9.#()<>]+)(?:\s+(.+))?$`)

// ResolveInlineTag turns a {@link} or {@linkplain} tag into an anchor whose
// target is the symbol as written. Any other tag kind is returned as its raw
// text so nothing is lost.
func ResolveInlineTag(tag InlineTag) string {
	m := linkPattern.FindStringSubmatch(strings.TrimSpace(tag.Raw))
	if m == nil {
		return tag.Raw
	}

	symbol, display := m[1], m[2]
	if display == "" {
		display = html.EscapeString(symbol)
	}
	return `<a href="` + html.EscapeString(symbol) + `">` + display + `</a>`
}

// ResolveInlineTags resolves each tag in order.
func ResolveInlineTags(tags []InlineTag) []string {
	resolved := make([]string, len(tags))
	for i, t := range tags {
		resolved[i] = ResolveInlineTag(t)
	}
	return resolved
}

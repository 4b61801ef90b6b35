package pipeline

import (
	"fmt"
	"strings"
)

// TagStyle selects how repeated block tags are laid out in the summary.
type TagStyle string

const (
	// TagStyleInline joins the texts of one tag name with "; " on a single line.
	TagStyleInline TagStyle = "inline"
	// TagStyleList renders the texts of one tag name as a bulleted list.
	TagStyleList TagStyle = "list"
)

// tagSeparator joins occurrences of one tag name in TagStyleInline.
const tagSeparator = "; "

// ParseTagStyle parses a tag style name. Empty selects TagStyleInline.
func ParseTagStyle(s string) (TagStyle, error) {
	switch TagStyle(strings.ToLower(s)) {
	case "", TagStyleInline:
		return TagStyleInline, nil
	case TagStyleList:
		return TagStyleList, nil
	}
	return "", fmt.Errorf("unknown tag style %q (must be inline or list)", s)
}

// AssembleDocBlock appends a summary of tags to the rendered body.
// One labeled line is written per tag name, in the order each name first
// appeared. Tag text is written as-is.
func AssembleDocBlock(body string, tags []Tag, style TagStyle) string {
	groups := groupTags(tags)
	if len(groups) == 0 {
		return body
	}

	var buf strings.Builder
	buf.WriteString(body)
	buf.WriteString("\n")

	for _, g := range groups {
		buf.WriteString("<b>")
		buf.WriteString(g.Name)
		buf.WriteString(":</b>")

		if style == TagStyleList {
			buf.WriteString("\n<ul>\n")
			for _, text := range g.Texts {
				buf.WriteString("<li>")
				buf.WriteString(text)
				buf.WriteString("</li>\n")
			}
			buf.WriteString("</ul>\n")
			continue
		}

		buf.WriteString(" ")
		buf.WriteString(strings.Join(g.Texts, tagSeparator))
		buf.WriteString("<br />\n")
	}

	return buf.String()
}

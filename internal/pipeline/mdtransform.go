package pipeline

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Inline tag placeholders use Unicode Private Use Area characters.
// Goldmark passes them through as plain text. Two renderings alter them:
// highlighted code splits the three parts into separate token spans, and
// link destinations carry them percent-encoded.
const (
	InlineStartPlaceholder = "\uE010" // U+E010: Private Use Area
	InlineEndPlaceholder   = "\uE011" // U+E011: Private Use Area
)

// ErrPlaceholderMismatch indicates rendered HTML does not carry exactly one
// placeholder per extracted inline tag.
var ErrPlaceholderMismatch = errors.New("inline tag placeholder mismatch")

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Placeholder emitted for an extracted inline tag, as text or as
	// highlighted tokens, or percent-encoded inside a URL.
	// Captures: 1=markup before the index, 2=index, 3=markup after the
	// index, 4=index of the percent-encoded form.
	placeholderPattern = regexp.MustCompile(
		InlineStartPlaceholder + `((?:<[^>]*>)*)([0-9]+)((?:<[^>]*>)*)` + InlineEndPlaceholder +
			`|(?i:%EE%80%90)([0-9]+)(?i:%EE%80%91)`)
)

// InlineTag is an inline marker such as {@link Foo#bar}, without its
// surrounding "{@" and "}" delimiters.
type InlineTag struct {
	Raw string
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// placeholder returns the token standing in for the i-th inline tag.
func placeholder(i int) string {
	return InlineStartPlaceholder + strconv.Itoa(i) + InlineEndPlaceholder
}

// ExtractInlineTags replaces every {@...} marker in body with a positional
// placeholder and returns the markers in the order they were found.
// Braces nested inside a marker are kept as part of its content.
// An unterminated "{@" is left in place as literal text and scanning
// continues after it.
func ExtractInlineTags(body string) (string, []InlineTag) {
	var (
		buf  strings.Builder
		tags []InlineTag
	)

	rest := body
	for {
		start := strings.Index(rest, "{@")
		if start == -1 {
			break
		}
		end := matchingBrace(rest, start)
		if end == -1 {
			buf.WriteString(rest[:start+2])
			rest = rest[start+2:]
			continue
		}

		buf.WriteString(rest[:start])
		buf.WriteString(placeholder(len(tags)))
		tags = append(tags, InlineTag{Raw: rest[start+2 : end]})
		rest = rest[end+1:]
	}
	buf.WriteString(rest)

	return buf.String(), tags
}

// matchingBrace returns the index of the "}" closing the "{" at open,
// or -1 if the brace is never closed.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// InsertInlineTags replaces each placeholder in rendered with the resolved
// string at the placeholder's index. Every index must appear exactly once
// and the placeholder count must equal len(resolved). Token markup found
// inside a highlighted placeholder is kept after the replacement so the
// surrounding spans stay balanced. Percent-encoded placeholders sit in an
// attribute value and receive the escaped string.
func InsertInlineTags(rendered string, resolved []string) (string, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(rendered, -1)
	if len(matches) != len(resolved) {
		return "", fmt.Errorf("%w: found %d placeholders, want %d", ErrPlaceholderMismatch, len(matches), len(resolved))
	}
	if len(matches) == 0 {
		return rendered, nil
	}

	seen := make([]bool, len(resolved))
	var buf strings.Builder
	buf.Grow(len(rendered))

	last := 0
	for _, m := range matches {
		encoded := m[8] >= 0
		digits := rendered[m[4]:m[5]]
		if encoded {
			digits = rendered[m[8]:m[9]]
		}

		idx, err := strconv.Atoi(digits)
		if err != nil || idx >= len(resolved) {
			return "", fmt.Errorf("%w: placeholder index %q out of range", ErrPlaceholderMismatch, digits)
		}
		if seen[idx] {
			return "", fmt.Errorf("%w: placeholder %d repeated", ErrPlaceholderMismatch, idx)
		}
		seen[idx] = true

		buf.WriteString(rendered[last:m[0]])
		if encoded {
			buf.WriteString(html.EscapeString(resolved[idx]))
		} else {
			buf.WriteString(resolved[idx])
			buf.WriteString(rendered[m[2]:m[3]])
			buf.WriteString(rendered[m[6]:m[7]])
		}
		last = m[1]
	}
	buf.WriteString(rendered[last:])

	return buf.String(), nil
}

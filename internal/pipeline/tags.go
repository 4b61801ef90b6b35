package pipeline

import (
	"regexp"
	"strings"
)

var (
	// tagStartPattern matches a block tag line: "@param name text".
	// Captures: 1=tag name, 2=trailing text.
	tagStartPattern = regexp.MustCompile(`^@([a-z]+)\s*(.*)$`)

	// lineStartSpace matches one leading space on every line.
	lineStartSpace = regexp.MustCompile(`(?m)^ `)
)

// Tag is a single block tag occurrence.
type Tag struct {
	Name string
	Text string
}

// TagGroup collects every occurrence of one tag name.
type TagGroup struct {
	Name  string
	Texts []string
}

// ParsedComment is a comment split into its prose body and block tags.
// Tags keep the order in which they appear in the comment.
type ParsedComment struct {
	Body string
	Tags []Tag
}

// Groups returns the tags grouped by name, in first-seen order.
func (p ParsedComment) Groups() []TagGroup {
	return groupTags(p.Tags)
}

func groupTags(tags []Tag) []TagGroup {
	if len(tags) == 0 {
		return nil
	}

	var groups []TagGroup
	index := make(map[string]int, len(tags))
	for _, t := range tags {
		i, ok := index[t.Name]
		if !ok {
			i = len(groups)
			index[t.Name] = i
			groups = append(groups, TagGroup{Name: t.Name})
		}
		groups[i].Texts = append(groups[i].Texts, t.Text)
	}
	return groups
}

// SplitTags separates raw comment text into a prose body and block tags.
// Lines that start with "@name" open a new tag; following lines continue the
// most recent tag. Lines before the first tag form the body.
// If fixLeadingSpaces is set, one leading space is removed from every line first.
func SplitTags(raw string, fixLeadingSpaces bool) ParsedComment {
	if fixLeadingSpaces {
		raw = stripLeadingSpace(raw)
	}

	var (
		bodyLines []string
		tags      []Tag
		tagBuf    *strings.Builder
	)

	flush := func() {
		if tagBuf != nil {
			tags[len(tags)-1].Text = tagBuf.String()
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := tagStartPattern.FindStringSubmatch(line); m != nil {
			flush()
			tags = append(tags, Tag{Name: m[1]})
			tagBuf = &strings.Builder{}
			tagBuf.WriteString(m[2])
			continue
		}

		if tagBuf != nil {
			tagBuf.WriteString("\n")
			tagBuf.WriteString(line)
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	flush()

	return ParsedComment{
		Body: strings.Join(bodyLines, "\n"),
		Tags: tags,
	}
}

// stripLeadingSpace removes exactly one leading space from each line.
func stripLeadingSpace(s string) string {
	return lineStartSpace.ReplaceAllString(s, "")
}

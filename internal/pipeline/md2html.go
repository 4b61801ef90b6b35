package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// RenderFunc converts Markdown to an HTML fragment.
type RenderFunc func(markdown string) (string, error)

// GoldmarkOptions controls how GoldmarkConverter renders comment bodies.
type GoldmarkOptions struct {
	// Highlight enables chroma syntax highlighting for fenced code blocks.
	Highlight bool
	// RawHTML passes inline and block HTML through unchanged.
	// API comments routinely embed tags such as <p> and <code>.
	RawHTML bool
}

// DefaultGoldmarkOptions returns the options used when none are given.
func DefaultGoldmarkOptions() GoldmarkOptions {
	return GoldmarkOptions{Highlight: true, RawHTML: true}
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
func NewGoldmarkConverter(opts GoldmarkOptions) *GoldmarkConverter {
	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if opts.Highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes instead of inline styles
			),
		))
	}

	htmlOpts := []renderer.Option{
		html.WithXHTML(), // Self-closing tags
	}
	if opts.RawHTML {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(htmlOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// Render converts Markdown content to an HTML fragment.
func (c *GoldmarkConverter) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

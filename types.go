package docsplice

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-docsplice/internal/descriptor"
	"github.com/alnah/go-docsplice/internal/pipeline"
)

// ClassDoc is the documentation for one class: its own comment plus member
// comments keyed by normalized signature, e.g. "setVolume(float,float)".
type ClassDoc = descriptor.Class

// MethodDoc is the documentation for one member.
type MethodDoc = descriptor.Method

// TagStyle selects how block tag groups are laid out after the body.
type TagStyle = pipeline.TagStyle

const (
	// TagStyleInline writes "<b>NAME:</b> a; b<br />" per tag name.
	TagStyleInline = pipeline.TagStyleInline
	// TagStyleList writes one bulleted list per tag name.
	TagStyleList = pipeline.TagStyleList
)

// ParseTagStyle parses "inline" or "list". Empty selects TagStyleInline.
func ParseTagStyle(s string) (TagStyle, error) {
	style, err := pipeline.ParseTagStyle(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTagStyle, err)
	}
	return style, nil
}

// StringPtr returns a pointer to s, for building ClassDoc values in code.
func StringPtr(s string) *string {
	return &s
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	fixLeadingSpaces bool
	tagStyle         TagStyle
	goldmark         pipeline.GoldmarkOptions
}

// WithRenderFunc replaces the Goldmark converter with fn.
// Panics if fn is nil (programmer error).
func WithRenderFunc(fn func(markdown string) (string, error)) RendererOption {
	if fn == nil {
		panic("docsplice: WithRenderFunc function must not be nil")
	}
	return func(r *Renderer) {
		r.render = fn
	}
}

// WithFixLeadingSpaces strips one leading space from every comment line,
// undoing the indentation left behind by comment extractors.
func WithFixLeadingSpaces(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.cfg.fixLeadingSpaces = enabled
	}
}

// WithTagStyle sets the tag group layout.
// Panics on values other than TagStyleInline and TagStyleList.
func WithTagStyle(style TagStyle) RendererOption {
	if style != TagStyleInline && style != TagStyleList {
		panic("docsplice: WithTagStyle unknown style " + string(style))
	}
	return func(r *Renderer) {
		r.cfg.tagStyle = style
	}
}

// WithHighlighting toggles chroma syntax highlighting of fenced code.
func WithHighlighting(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.cfg.goldmark.Highlight = enabled
	}
}

// WithRawHTML toggles pass-through of HTML embedded in comments.
func WithRawHTML(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.cfg.goldmark.RawHTML = enabled
	}
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// Page structure classes used to locate insertion points.
const (
	DefaultMarkerClass    = "docsplice"
	DefaultSectionClass   = "api-section"
	DefaultAPIClass       = "api"
	DefaultSignatureClass = "api-signature"
)

// WithMarkerClass sets the class carried by every inserted block.
// Must be a single CSS class name; NewMerger rejects anything else.
func WithMarkerClass(class string) MergerOption {
	return func(m *Merger) {
		m.cfg.markerClass = class
	}
}

// WithStyle sets the CSS injected into the head of merged pages.
// An empty string disables style injection. Selectors on the default
// marker class follow WithMarkerClass.
func WithStyle(css string) MergerOption {
	return func(m *Merger) {
		m.cfg.style = css
		m.cfg.styleSet = true
	}
}

// WithStrict makes render failures fail the page instead of falling back to
// the unresolved rendering.
func WithStrict(strict bool) MergerOption {
	return func(m *Merger) {
		m.cfg.strict = strict
	}
}

// WithLogger sets the logger used for per-page diagnostics.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) MergerOption {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBlockTemplate sets the html/template source used to wrap blocks.
// The template receives .Class, .Kind ("type" or "method") and .Body.
func WithBlockTemplate(source string) MergerOption {
	return func(m *Merger) {
		m.cfg.blockTemplate = source
	}
}

// WithPageClasses overrides the classes used to find insertion points.
// Empty values keep the defaults.
func WithPageClasses(section, api, signature string) MergerOption {
	return func(m *Merger) {
		if section = strings.TrimSpace(section); section != "" {
			m.cfg.sectionClass = section
		}
		if api = strings.TrimSpace(api); api != "" {
			m.cfg.apiClass = api
		}
		if signature = strings.TrimSpace(signature); signature != "" {
			m.cfg.signatureClass = signature
		}
	}
}

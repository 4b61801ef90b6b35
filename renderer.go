package docsplice

import (
	"fmt"
	"sync"

	"github.com/alnah/go-docsplice/internal/pipeline"
)

// Renderer turns a raw documentation comment into an HTML fragment.
// A Renderer is safe for concurrent use.
type Renderer struct {
	cfg    rendererConfig
	render pipeline.RenderFunc
	once   sync.Once
}

// NewRenderer creates a Renderer. Without WithRenderFunc, a Goldmark
// converter is built on first use.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		cfg: rendererConfig{
			tagStyle: TagStyleInline,
			goldmark: pipeline.DefaultGoldmarkOptions(),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// renderFunc returns the Markdown strategy, building the default one once.
func (r *Renderer) renderFunc() pipeline.RenderFunc {
	r.once.Do(func() {
		if r.render == nil {
			r.render = pipeline.NewGoldmarkConverter(r.cfg.goldmark).Render
		}
	})
	return r.render
}

// Render converts a comment to HTML: tags are split off, inline markers are
// protected through Markdown rendering and resolved, then tag groups are
// appended. Either the full result or an error is returned.
func (r *Renderer) Render(raw string) (out string, err error) {
	defer recoverRender(&err)

	parsed := pipeline.SplitTags(pipeline.NormalizeLineEndings(raw), r.cfg.fixLeadingSpaces)
	body, markers := pipeline.ExtractInlineTags(parsed.Body)

	rendered, err := r.renderFunc()(body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}

	rendered, err = pipeline.InsertInlineTags(rendered, pipeline.ResolveInlineTags(markers))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}

	return pipeline.AssembleDocBlock(rendered, parsed.Tags, r.cfg.tagStyle), nil
}

// RenderUnresolved renders a comment without marker protection, so inline
// markers appear as their literal "{@...}" text. Used as a fallback when
// Render fails on a comment.
func (r *Renderer) RenderUnresolved(raw string) (out string, err error) {
	defer recoverRender(&err)

	parsed := pipeline.SplitTags(pipeline.NormalizeLineEndings(raw), r.cfg.fixLeadingSpaces)
	rendered, err := r.renderFunc()(parsed.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return pipeline.AssembleDocBlock(rendered, parsed.Tags, r.cfg.tagStyle), nil
}

// recoverRender converts a panic in a render function into an error.
func recoverRender(err *error) {
	if rec := recover(); rec != nil {
		*err = fmt.Errorf("%w: internal error: %v", ErrRender, rec)
	}
}

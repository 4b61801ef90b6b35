package docsplice

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alnah/go-docsplice/internal/assets"
	"github.com/alnah/go-docsplice/internal/logging"
	"github.com/alnah/go-docsplice/internal/pipeline"
)

// Block kinds passed to the block template.
const (
	blockKindType   = "type"
	blockKindMethod = "method"
)

// markerClassPattern matches a single CSS class name.
var markerClassPattern = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// MergeResult is the outcome of merging documentation into one page.
type MergeResult struct {
	HTML            []byte
	ClassInserted   bool
	MethodsInserted int
	// MethodsSeen counts member anchors found on the page.
	MethodsSeen int
	// Warnings holds *RenderError values for comments that fell back to the
	// unresolved rendering or were skipped.
	Warnings []error
}

// Inserted reports whether any block was added to the page.
func (r *MergeResult) Inserted() bool {
	return r.ClassInserted || r.MethodsInserted > 0
}

// Merger splices rendered documentation into reference pages.
// A Merger is safe for concurrent use.
type Merger struct {
	cfg      mergerConfig
	renderer *Renderer
	logger   *slog.Logger
	block    *template.Template
}

// mergerConfig holds internal configuration for Merger.
type mergerConfig struct {
	markerClass    string
	style          string
	styleSet       bool
	strict         bool
	blockTemplate  string
	sectionClass   string
	apiClass       string
	signatureClass string
}

// blockData is passed to the block template.
type blockData struct {
	Class string
	Kind  string
	Body  template.HTML
}

// NewMerger creates a Merger that renders comments with renderer.
// A nil renderer selects NewRenderer(). Returns an error if the marker class
// is invalid or the block template fails to parse.
func NewMerger(renderer *Renderer, opts ...MergerOption) (*Merger, error) {
	if renderer == nil {
		renderer = NewRenderer()
	}
	m := &Merger{
		cfg: mergerConfig{
			markerClass:    DefaultMarkerClass,
			sectionClass:   DefaultSectionClass,
			apiClass:       DefaultAPIClass,
			signatureClass: DefaultSignatureClass,
		},
		renderer: renderer,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}

	if !markerClassPattern.MatchString(m.cfg.markerClass) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMarker, m.cfg.markerClass)
	}

	loader := assets.NewEmbeddedLoader()
	if !m.cfg.styleSet {
		css, err := loader.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return nil, fmt.Errorf("loading default style: %w", err)
		}
		m.cfg.style = css
	}
	m.cfg.style = retargetStyle(m.cfg.style, m.cfg.markerClass)
	if m.cfg.blockTemplate == "" {
		source, err := loader.LoadTemplate(assets.DefaultBlockTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading block template: %w", err)
		}
		m.cfg.blockTemplate = source
	}

	tmpl, err := template.New("block").Parse(m.cfg.blockTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockTemplate, err)
	}
	m.block = tmpl

	return m, nil
}

// retargetStyle rewrites ".docsplice" selectors for a custom marker class.
func retargetStyle(css, class string) string {
	if class == DefaultMarkerClass {
		return css
	}
	return strings.ReplaceAll(css, "."+DefaultMarkerClass, "."+class)
}

// MergePage inserts the documentation of class into page and returns the
// rewritten HTML. Blocks left by a previous run are replaced. A nil class
// leaves the page unchanged apart from that cleanup.
//
// A comment that fails to render is inserted with its inline markers left
// unresolved and reported in MergeResult.Warnings. With WithStrict the
// failure is returned instead.
func (m *Merger) MergePage(ctx context.Context, content []byte, class *ClassDoc) (*MergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := pipeline.ParsePage(content)
	if err != nil {
		return nil, err
	}

	if removed := page.RemoveBlocks(m.cfg.markerClass); removed > 0 {
		m.logger.Debug("removed previous blocks", slog.Int("count", removed))
	}
	page.RemoveStyle()

	result := &MergeResult{}

	if text, ok := class.DocText(); ok {
		if err := m.insertClassDoc(page, text, result); err != nil {
			return nil, err
		}
	}

	for _, anchor := range page.MemberAnchors(m.cfg.apiClass, m.cfg.signatureClass) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.MethodsSeen++

		method, ok := class.Method(anchor.Name)
		if !ok {
			continue
		}
		text, ok := method.DocText()
		if !ok {
			continue
		}

		block, err := m.renderBlock(anchor.Name, text, blockKindMethod, result)
		if err != nil {
			return nil, err
		}
		if block == "" {
			continue
		}
		if err := pipeline.InsertAfter(anchor.Node, block); err != nil {
			return nil, err
		}
		result.MethodsInserted++
	}

	if result.Inserted() && m.cfg.style != "" {
		page.InjectStyle(m.cfg.style)
	}

	out, err := page.Render()
	if err != nil {
		return nil, err
	}
	result.HTML = out
	return result, nil
}

// insertClassDoc places the class comment before the first section.
func (m *Merger) insertClassDoc(page *pipeline.Page, text string, result *MergeResult) error {
	anchor := page.ClassAnchor(m.cfg.sectionClass)
	if anchor == nil {
		m.logger.Debug("no section anchor for class doc", slog.String("section", m.cfg.sectionClass))
		return nil
	}

	block, err := m.renderBlock("", text, blockKindType, result)
	if err != nil || block == "" {
		return err
	}
	if err := pipeline.InsertBefore(anchor, block); err != nil {
		return err
	}
	result.ClassInserted = true
	return nil
}

// renderBlock renders one comment and wraps it with the block template.
// Returns an empty block when the comment is skipped after a warning.
func (m *Merger) renderBlock(member, text, kind string, result *MergeResult) (string, error) {
	body, err := m.renderer.Render(text)
	if err != nil {
		renderErr := &RenderError{Member: member, Err: err}
		if m.cfg.strict {
			return "", renderErr
		}
		result.Warnings = append(result.Warnings, renderErr)
		m.logger.Warn("rendering without inline markers resolved",
			logging.Method(member), logging.Error(err))

		body, err = m.renderer.RenderUnresolved(text)
		if err != nil {
			m.logger.Warn("skipping comment", logging.Method(member), logging.Error(err))
			return "", nil
		}
	}

	var buf strings.Builder
	data := blockData{
		Class: m.cfg.markerClass,
		Kind:  kind,
		Body:  template.HTML(strings.TrimSpace(body)), // #nosec G203 -- comment HTML is trusted input
	}
	if err := m.block.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBlockTemplate, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

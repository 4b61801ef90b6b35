package docsplice

import (
	"errors"
	"fmt"

	"github.com/alnah/go-docsplice/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrRender          = errors.New("comment rendering failed")
	ErrBlockTemplate   = errors.New("block template rendering failed")
	ErrInvalidMarker   = errors.New("invalid marker class")
	ErrPageParse       = pipeline.ErrPageParse
	ErrHTMLConversion  = pipeline.ErrHTMLConversion
	ErrInvalidTagStyle = errors.New("invalid tag style")

	// ErrPlaceholderMismatch reports that rendering lost, duplicated or
	// reordered inline marker placeholders.
	ErrPlaceholderMismatch = pipeline.ErrPlaceholderMismatch
)

// RenderError reports a comment that could not be rendered with its markers
// resolved. Member is empty for the class comment.
type RenderError struct {
	Member string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("rendering class doc: %v", e.Err)
	}
	return fmt.Sprintf("rendering %s: %v", e.Member, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

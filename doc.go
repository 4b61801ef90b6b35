// Package docsplice renders API documentation comments and splices them into
// pre-generated reference pages.
//
// # Quick Start
//
// Render a single comment:
//
//	r := docsplice.NewRenderer()
//	out, err := r.Render("Plays audio.\n@param volume the {@link Volume level}")
//
// Merge documentation into a page:
//
//	m, err := docsplice.NewMerger(docsplice.NewRenderer())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := m.MergePage(ctx, pageHTML, classDoc)
//
// # Rendering Pipeline
//
// A comment goes through these stages:
//
//  1. Block tags (@param, @return, ...) are split from the body
//  2. Inline markers ({@link ...}) are swapped for opaque placeholders
//  3. The body is rendered as Markdown via Goldmark (GFM, syntax highlighting)
//  4. Each marker is resolved and put back in place of its placeholder
//  5. Tag groups are appended after the rendered body
//
// # Page Merging
//
// MergePage inserts the class comment before the first "api-section" element
// and every member comment after its "api" container. Inserted blocks carry a
// marker class so a second run replaces them instead of stacking copies.
package docsplice

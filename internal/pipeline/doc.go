// Package pipeline implements the documentation-comment rendering pipeline.
//
// A raw API comment goes through these stages:
//   - Tag splitting (prose body plus ordered @name block tags)
//   - Inline tag extraction ({@link ...} markers become placeholders)
//   - Markdown to HTML conversion via Goldmark
//   - Inline tag resolution and reinsertion
//   - Doc block assembly (rendered body plus a tag summary)
//
// The package also holds the HTML helpers used to splice rendered blocks
// into reference pages. Loading descriptors and walking page trees is
// handled by callers; nothing here performs I/O.
package pipeline

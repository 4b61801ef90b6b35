// Package assets provides the stylesheet and block template used when
// splicing documentation into reference pages.
//
// Assets are looked up by name in a kind directory:
//
//	{basePath}/
//	├── styles/{name}.css       marker block styles (default, subtle)
//	└── templates/{name}.html   block wrapper templates (block)
//
// EmbeddedLoader serves the built-in set, FilesystemLoader serves a custom
// directory and AssetResolver chains them, custom first.
//
// Names are restricted to a single path element without dots, and
// FilesystemLoader reads through os.Root so symlinks cannot reach outside
// basePath.
package assets

// DefaultStyleName is the name of the built-in marker block style.
const DefaultStyleName = "default"

// DefaultBlockTemplateName is the name of the built-in block wrapper template.
const DefaultBlockTemplateName = "block"

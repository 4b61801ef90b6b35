package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docsplice/internal/logging"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	log     logging.Config
}

// sourceFlags select the pages to merge.
type sourceFlags struct {
	pattern   string
	only      []string
	copyOther bool
}

// renderFlags control comment rendering.
type renderFlags struct {
	fixLeadingSpaces bool
	tagStyle         string
	noHighlight      bool
	noRawHTML        bool
	strict           bool
}

// pageFlags control what is written into pages.
type pageFlags struct {
	markerClass string
	style       string
	assetPath   string
}

// mergeFlags holds all flags for the merge command.
type mergeFlags struct {
	common      commonFlags
	output      string
	descriptors string
	workers     int
	source      sourceFlags
	render      renderFlags
	page        pageFlags

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page details and debug logs")
	f.log.RegisterFlags(fs)
}

// addSourceFlags adds page selection flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVar(&f.pattern, "pattern", "", "regexp matched against page file names")
	fs.StringArrayVar(&f.only, "only", nil, "only merge paths containing this substring (repeatable)")
	fs.BoolVar(&f.copyOther, "copy-other", false, "copy non-matching files to the output directory")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.fixLeadingSpaces, "fix-leading-spaces", false, "strip one leading space from comment lines")
	fs.StringVar(&f.tagStyle, "tag-style", "", "tag group layout: inline, list")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code highlighting")
	fs.BoolVar(&f.noRawHTML, "no-raw-html", false, "omit HTML embedded in comments")
	fs.BoolVar(&f.strict, "strict", false, "fail pages whose comments cannot be fully rendered")
}

// addPageFlags adds page output flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.markerClass, "marker-class", "", "CSS class of inserted blocks")
	fs.StringVar(&f.style, "style", "", "style name, CSS file path, or \"none\"")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// parseMergeFlags parses merge command flags and returns positional args.
func parseMergeFlags(args []string, w io.Writer) (*mergeFlags, []string, error) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	f := &mergeFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: rewrite in place)")
	fs.StringVarP(&f.descriptors, "descriptors", "d", "", "descriptor directory or JSON file")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addRenderFlags(fs, &f.render)
	addPageFlags(fs, &f.page)

	fs.SetOutput(w)
	fs.Usage = func() { printMergeUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.changed = func(name string) bool { return fs.Changed(name) }
	return f, fs.Args(), nil
}

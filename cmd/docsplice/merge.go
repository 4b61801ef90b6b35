package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docsplice"
	"github.com/alnah/go-docsplice/internal/assets"
	"github.com/alnah/go-docsplice/internal/config"
	"github.com/alnah/go-docsplice/internal/descriptor"
	"github.com/alnah/go-docsplice/internal/fileutil"
	"github.com/alnah/go-docsplice/internal/hints"
	"github.com/alnah/go-docsplice/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrNoInput       = errors.New("no source directory specified")
	ErrNoDescriptors = errors.New("no descriptors specified")
	ErrNoPages       = errors.New("no pages to merge")
	ErrReadStyle     = errors.New("failed to read style file")
	ErrPagesFailed   = errors.New("pages failed to merge")
)

// noStyle disables style injection when passed as --style.
const noStyle = "none"

// runMerge merges documentation into every discovered page.
func runMerge(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseMergeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one source directory, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}
	if len(positional) == 1 {
		cfg.Source.Dir = positional[0]
	}

	logger, err := newLogger(flags, cfg, env)
	if err != nil {
		return err
	}

	if cfg.Source.Dir == "" {
		return fmt.Errorf("%w: pass <source-dir> or set source.dir", ErrNoInput)
	}
	if !fileutil.DirExists(cfg.Source.Dir) {
		return fmt.Errorf("%w: %s is not a directory", ErrNoInput, cfg.Source.Dir)
	}
	if cfg.Descriptors.Path == "" {
		return fmt.Errorf("%w: pass --descriptors or set descriptors.path%s", ErrNoDescriptors, hints.ForDescriptors())
	}

	source, err := descriptor.Open(cfg.Descriptors.Path)
	if err != nil {
		return fmt.Errorf("opening descriptors: %w%s", err, hints.ForDescriptors())
	}
	if table, ok := source.(*descriptor.FileSource); ok {
		logger.Debug("loaded descriptor table", logging.Path(cfg.Descriptors.Path), slog.Int("classes", table.Len()))
	}

	merger, err := buildMerger(cfg, logger)
	if err != nil {
		return err
	}

	pages, others, err := discoverPages(cfg.Source.Dir, cfg.Output.Dir, cfg.Source)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("%w in %s%s", ErrNoPages, cfg.Source.Dir, hints.ForNoPages(cfg.Source.Pattern, cfg.Source.Only))
	}

	workers := resolveWorkers(cfg.Workers)
	logger.Debug("merging pages", slog.Int("pages", len(pages)), logging.Workers(workers))

	results, err := mergeBatch(ctx, merger, source, pages, workers, logger)
	if err != nil {
		return err
	}

	if cfg.Source.CopyOther {
		if err := copyOthers(ctx, others); err != nil {
			return err
		}
	}

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d%s", ErrPagesFailed, failed, len(results), hints.ForRenderFailure())
	}
	return nil
}

// runConfig prints the effective configuration.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseMergeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}
	if len(positional) == 1 {
		cfg.Source.Dir = positional[0]
	}

	out, err := cfg.Dump()
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}

// resolveConfig builds the effective configuration.
// Precedence: CLI flags > DOCSPLICE_* env vars > config file > defaults.
func resolveConfig(flags *mergeFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Environ(), env.Stderr)

	envCfg, err := loadEnvConfig(env.LookupEnv)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{}
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	if err := applyFlags(flags, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(flags *mergeFlags, cfg *config.Config) error {
	if flags.workers < 0 || flags.workers > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d, 0 means auto)", ErrInvalidWorkerCount, flags.workers, config.MaxWorkers)
	}

	setString(&cfg.Output.Dir, flags.output)
	setString(&cfg.Descriptors.Path, flags.descriptors)
	setString(&cfg.Source.Pattern, flags.source.pattern)
	setString(&cfg.Render.TagStyle, flags.render.tagStyle)
	setString(&cfg.Page.MarkerClass, flags.page.markerClass)
	setString(&cfg.Page.Style, flags.page.style)
	setString(&cfg.Assets.BasePath, flags.page.assetPath)
	setString(&cfg.Log.Level, flags.common.log.Level)
	setString(&cfg.Log.Format, flags.common.log.Format)

	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if len(flags.source.only) > 0 {
		cfg.Source.Only = flags.source.only
	}

	changed := flags.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if changed("copy-other") {
		cfg.Source.CopyOther = flags.source.copyOther
	}
	if changed("fix-leading-spaces") {
		cfg.Render.FixLeadingSpaces = flags.render.fixLeadingSpaces
	}
	if changed("strict") {
		cfg.Render.Strict = flags.render.strict
	}
	if changed("no-highlight") {
		enabled := !flags.render.noHighlight
		cfg.Render.Highlight = &enabled
	}
	if changed("no-raw-html") {
		enabled := !flags.render.noRawHTML
		cfg.Render.RawHTML = &enabled
	}
	return nil
}

// newLogger builds the run logger. --quiet and --verbose override the
// configured level.
func newLogger(flags *mergeFlags, cfg *config.Config, env *Environment) (*slog.Logger, error) {
	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	switch {
	case flags.common.quiet:
		logCfg.Level = "error"
	case flags.common.verbose:
		logCfg.Level = "debug"
	}
	return logCfg.NewLogger(env.Stderr)
}

// buildMerger assembles the renderer and merger described by cfg.
func buildMerger(cfg *config.Config, logger *slog.Logger) (*docsplice.Merger, error) {
	tagStyle, err := docsplice.ParseTagStyle(cfg.Render.TagStyle)
	if err != nil {
		return nil, err
	}

	renderer := docsplice.NewRenderer(
		docsplice.WithFixLeadingSpaces(cfg.Render.FixLeadingSpaces),
		docsplice.WithTagStyle(tagStyle),
		docsplice.WithHighlighting(cfg.Render.HighlightEnabled()),
		docsplice.WithRawHTML(cfg.Render.RawHTMLEnabled()),
	)

	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	opts := []docsplice.MergerOption{
		docsplice.WithMarkerClass(cfg.Page.MarkerClass),
		docsplice.WithStrict(cfg.Render.Strict),
		docsplice.WithLogger(logger),
	}

	css, custom, err := resolveStyle(cfg.Page.Style, resolver)
	if err != nil {
		return nil, err
	}
	if custom {
		opts = append(opts, docsplice.WithStyle(css))
	}

	if resolver.HasCustomLoader() {
		tmpl, err := resolver.LoadTemplate(assets.DefaultBlockTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading block template: %w", err)
		}
		opts = append(opts, docsplice.WithBlockTemplate(tmpl))
	}

	return docsplice.NewMerger(renderer, opts...)
}

// resolveStyle returns the CSS for a style setting. custom is false when the
// merger's built-in default (retargeted to the marker class) should be used.
func resolveStyle(style string, resolver *assets.AssetResolver) (css string, custom bool, err error) {
	switch {
	case style == "" || (style == assets.DefaultStyleName && !resolver.HasCustomLoader()):
		return "", false, nil
	case strings.EqualFold(style, noStyle):
		return "", true, nil
	case fileutil.IsFilePath(style):
		data, err := os.ReadFile(style) // #nosec G304 -- user-provided style path
		if err != nil {
			return "", false, fmt.Errorf("%w: %v", ErrReadStyle, err)
		}
		return string(data), true, nil
	}

	css, err = resolver.LoadStyle(style)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", false, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.NewEmbeddedLoader().StyleNames()))
		}
		return "", false, err
	}
	return css, true, nil
}

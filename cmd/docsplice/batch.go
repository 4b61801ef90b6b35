package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-docsplice"
	"github.com/alnah/go-docsplice/internal/config"
	"github.com/alnah/go-docsplice/internal/descriptor"
	"github.com/alnah/go-docsplice/internal/fileutil"
	"github.com/alnah/go-docsplice/internal/hints"
	"github.com/alnah/go-docsplice/internal/logging"
)

// filePermissions is rw-r--r--: pages are meant to be served.
const filePermissions = 0o644

// Sentinel errors for batch operations.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrReadPage           = errors.New("failed to read page")
	ErrWritePage          = errors.New("failed to write page")
	ErrLookup             = errors.New("failed to look up class")
)

// PageMerger is the interface for the merge service.
type PageMerger interface {
	MergePage(ctx context.Context, content []byte, class *docsplice.ClassDoc) (*docsplice.MergeResult, error)
}

// Compile-time interface implementation check.
var _ PageMerger = (*docsplice.Merger)(nil)

// PageResult holds the outcome of a single page merge.
type PageResult struct {
	InputPath       string
	OutputPath      string
	ClassName       string
	ClassInserted   bool
	MethodsInserted int
	Warnings        int
	Err             error
	Duration        time.Duration
}

// resolveWorkers returns the worker count for a batch.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	// GOMAXPROCS is adjusted by automaxprocs for containers
	return max(1, min(runtime.GOMAXPROCS(0), config.MaxWorkers))
}

// mergeBatch merges pages concurrently. I/O failures and cancellation abort
// the batch; per-page render failures are recorded in the page's result.
func mergeBatch(ctx context.Context, merger PageMerger, source descriptor.Source, pages []PageToMerge, workers int, logger *slog.Logger) ([]PageResult, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	results := make([]PageResult, len(pages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

	for i, page := range pages {
		g.Go(func() error {
			res, err := mergeFile(ctx, merger, source, page, logger)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// mergeFile merges a single page. The returned error is fatal for the batch.
func mergeFile(ctx context.Context, merger PageMerger, source descriptor.Source, p PageToMerge, logger *slog.Logger) (PageResult, error) {
	start := time.Now()
	result := PageResult{
		InputPath:  p.InputPath,
		OutputPath: p.OutputPath,
		ClassName:  p.ClassName,
	}
	finish := func(err error) (PageResult, error) {
		result.Duration = time.Since(start)
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	content, err := os.ReadFile(p.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %s: %v", ErrReadPage, p.InputPath, err))
	}

	class, err := source.Lookup(p.ClassName)
	if err != nil {
		if !errors.Is(err, descriptor.ErrMalformed) {
			return finish(fmt.Errorf("%w: %s: %w", ErrLookup, p.ClassName, err))
		}
		logger.Warn("ignoring malformed descriptor", logging.Class(p.ClassName), logging.Error(err))
		class = nil
	}

	merged, err := merger.MergePage(ctx, content, class)
	if err != nil {
		if ctx.Err() != nil {
			return finish(ctx.Err())
		}
		result.Err = err
		return finish(nil)
	}

	result.ClassInserted = merged.ClassInserted
	result.MethodsInserted = merged.MethodsInserted
	result.Warnings = len(merged.Warnings)

	// Untouched in-place pages are not rewritten.
	if p.OutputPath == p.InputPath && bytes.Equal(merged.HTML, content) {
		return finish(nil)
	}

	if err := fileutil.WriteFileAtomic(p.OutputPath, merged.HTML, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v%s", ErrWritePage, err, hints.ForOutputDirectory()))
	}

	logger.Debug("merged page",
		logging.Class(p.ClassName),
		logging.Path(p.OutputPath),
		slog.Int("methods", merged.MethodsInserted),
		logging.Warnings(len(merged.Warnings)),
	)
	return finish(nil)
}

// copyOthers mirrors non-page files into the output directory.
func copyOthers(ctx context.Context, files []fileToCopy) error {
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fileutil.CopyFile(f.InputPath, f.OutputPath, filePermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWritePage, err, hints.ForOutputDirectory())
		}
	}
	return nil
}

// ResultSummary holds the count of merged and failed pages.
type ResultSummary struct {
	Merged int
	Failed int
}

// countResults tallies merged and failed pages.
func countResults(results []PageResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Merged++
		}
	}
	return summary
}

// printResults outputs merge results and returns the number of failures.
func printResults(results []PageResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (class: %t, methods: %d, warnings: %d, %v)\n",
				r.InputPath, r.OutputPath, r.ClassInserted, r.MethodsInserted, r.Warnings, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Merged %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d merged, %d failed\n", summary.Merged, summary.Failed)
	}

	return summary.Failed
}

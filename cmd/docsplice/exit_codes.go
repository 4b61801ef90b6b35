package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docsplice"
	"github.com/alnah/go-docsplice/internal/assets"
	"github.com/alnah/go-docsplice/internal/config"
	"github.com/alnah/go-docsplice/internal/descriptor"
	"github.com/alnah/go-docsplice/internal/logging"
)

// Exit codes for the docsplice CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All pages merged
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Missing input, unreadable or unwritable files
	ExitRender  = 4 // Comments that could not be rendered (strict mode)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	if errors.Is(err, ErrPagesFailed) ||
		errors.Is(err, docsplice.ErrRender) ||
		errors.Is(err, docsplice.ErrPlaceholderMismatch) ||
		errors.Is(err, docsplice.ErrPageParse) {
		return ExitRender
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrNoDescriptors) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, logging.ErrUnknownLogLevel) ||
		errors.Is(err, logging.ErrUnknownLogFormat) ||
		errors.Is(err, docsplice.ErrInvalidTagStyle) ||
		errors.Is(err, docsplice.ErrInvalidMarker) ||
		errors.Is(err, docsplice.ErrBlockTemplate) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoPages) ||
		errors.Is(err, ErrReadPage) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrReadStyle) ||
		errors.Is(err, descriptor.ErrDescriptorRead) ||
		errors.Is(err, descriptor.ErrMalformed) ||
		errors.Is(err, ErrLookup) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	return ExitGeneral
}

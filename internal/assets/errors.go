package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName is returned for names that are empty or hold a
	// path separator, a dot or a NUL byte.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid asset directory")

	// ErrAssetRead covers I/O failures, including paths that resolve outside
	// the asset directory.
	ErrAssetRead = errors.New("failed to read asset")
)

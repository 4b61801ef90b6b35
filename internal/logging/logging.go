// Package logging builds slog handlers from CLI strings and defines the
// canonical attribute keys used across docsplice.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Format represents the log output format.
type Format string

const (
	// FormatText outputs human-readable key=value lines.
	FormatText Format = "text"
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt is an alias of FormatText.
	FormatLogfmt Format = "logfmt"
)

var (
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// Default flag values.
const (
	DefaultLevel  = "warn"
	DefaultFormat = "text"
)

// levels lists accepted level names in severity order.
var levels = []string{"error", "warn", "info", "debug"}

// GetLevel parses a log level string and returns the corresponding
// [slog.Level].
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}

	return 0, fmt.Errorf("%w: %q (must be one of: %s)", ErrUnknownLogLevel, level, strings.Join(levels, ", "))
}

// GetFormat parses a log format string and returns the corresponding [Format].
func GetFormat(format string) (Format, error) {
	logFmt := Format(strings.ToLower(strings.TrimSpace(format)))
	if slices.Contains([]Format{FormatText, FormatJSON, FormatLogfmt}, logFmt) {
		return logFmt, nil
	}

	return "", fmt.Errorf("%w: %q (must be one of: text, json, logfmt)", ErrUnknownLogFormat, format)
}

// NewHandler creates a [slog.Handler] with the specified level and format.
func NewHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewHandlerFromStrings parses level and format and creates a handler.
func NewHandlerFromStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}
	logFmt, err := GetFormat(format)
	if err != nil {
		return nil, err
	}
	return NewHandler(w, lvl, logFmt), nil
}

// Config holds CLI flag values for log configuration.
type Config struct {
	Level  string
	Format string
}

// RegisterFlags adds --log-level and --log-format to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, "log-level", "",
		fmt.Sprintf("log level, one of: %s (default %s)", strings.Join(levels, ", "), DefaultLevel))
	flags.StringVar(&c.Format, "log-format", "",
		fmt.Sprintf("log format, one of: text, json (default %s)", DefaultFormat))
}

// NewLogger builds a logger writing to w. Empty fields fall back to the
// defaults.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, format := c.Level, c.Format
	if level == "" {
		level = DefaultLevel
	}
	if format == "" {
		format = DefaultFormat
	}
	h, err := NewHandlerFromStrings(w, level, format)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

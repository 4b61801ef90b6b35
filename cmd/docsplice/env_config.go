package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-docsplice/internal/config"
)

// ErrInvalidEnv indicates a DOCSPLICE_* variable holds an unusable value.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envPrefix is shared by every recognized variable.
const envPrefix = "DOCSPLICE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
// Empty strings and nil pointers mean "not set".
type envConfig struct {
	ConfigPath       string   // DOCSPLICE_CONFIG
	SourceDir        string   // DOCSPLICE_SOURCE_DIR
	OutputDir        string   // DOCSPLICE_OUTPUT_DIR
	Descriptors      string   // DOCSPLICE_DESCRIPTORS
	Pattern          string   // DOCSPLICE_PATTERN
	Only             []string // DOCSPLICE_ONLY: comma-separated substrings
	CopyOther        *bool    // DOCSPLICE_COPY_OTHER
	FixLeadingSpaces *bool    // DOCSPLICE_FIX_LEADING_SPACES
	TagStyle         string   // DOCSPLICE_TAG_STYLE
	Highlight        *bool    // DOCSPLICE_HIGHLIGHT
	RawHTML          *bool    // DOCSPLICE_RAW_HTML
	Strict           *bool    // DOCSPLICE_STRICT
	MarkerClass      string   // DOCSPLICE_MARKER_CLASS
	Style            string   // DOCSPLICE_STYLE
	AssetPath        string   // DOCSPLICE_ASSET_PATH
	LogLevel         string   // DOCSPLICE_LOG_LEVEL
	LogFormat        string   // DOCSPLICE_LOG_FORMAT
	Workers          int      // DOCSPLICE_WORKERS
}

// knownEnvVars lists valid DOCSPLICE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCSPLICE_CONFIG":             true,
	"DOCSPLICE_SOURCE_DIR":         true,
	"DOCSPLICE_OUTPUT_DIR":         true,
	"DOCSPLICE_DESCRIPTORS":        true,
	"DOCSPLICE_PATTERN":            true,
	"DOCSPLICE_ONLY":               true,
	"DOCSPLICE_COPY_OTHER":         true,
	"DOCSPLICE_FIX_LEADING_SPACES": true,
	"DOCSPLICE_TAG_STYLE":          true,
	"DOCSPLICE_HIGHLIGHT":          true,
	"DOCSPLICE_RAW_HTML":           true,
	"DOCSPLICE_STRICT":             true,
	"DOCSPLICE_MARKER_CLASS":       true,
	"DOCSPLICE_STYLE":              true,
	"DOCSPLICE_ASSET_PATH":         true,
	"DOCSPLICE_LOG_LEVEL":          true,
	"DOCSPLICE_LOG_FORMAT":         true,
	"DOCSPLICE_WORKERS":            true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns an error wrapping ErrInvalidEnv for malformed booleans or numbers.
func loadEnvConfig(lookup func(string) (string, bool)) (*envConfig, error) {
	get := func(name string) string {
		v, _ := lookup(envPrefix + name)
		return strings.TrimSpace(v)
	}

	cfg := &envConfig{
		ConfigPath:  get("CONFIG"),
		SourceDir:   get("SOURCE_DIR"),
		OutputDir:   get("OUTPUT_DIR"),
		Descriptors: get("DESCRIPTORS"),
		Pattern:     get("PATTERN"),
		TagStyle:    get("TAG_STYLE"),
		MarkerClass: get("MARKER_CLASS"),
		Style:       get("STYLE"),
		AssetPath:   get("ASSET_PATH"),
		LogLevel:    get("LOG_LEVEL"),
		LogFormat:   get("LOG_FORMAT"),
	}

	if only := get("ONLY"); only != "" {
		for _, part := range strings.Split(only, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.Only = append(cfg.Only, part)
			}
		}
	}

	bools := []struct {
		name string
		dst  **bool
	}{
		{"COPY_OTHER", &cfg.CopyOther},
		{"FIX_LEADING_SPACES", &cfg.FixLeadingSpaces},
		{"HIGHLIGHT", &cfg.Highlight},
		{"RAW_HTML", &cfg.RawHTML},
		{"STRICT", &cfg.Strict},
	}
	for _, b := range bools {
		raw := get(b.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s%s=%q (want true or false)", ErrInvalidEnv, envPrefix, b.name, raw)
		}
		*b.dst = &v
	}

	if workers := get("WORKERS"); workers != "" {
		w, err := strconv.Atoi(workers)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("%w: %sWORKERS=%q (want a non-negative integer)", ErrInvalidEnv, envPrefix, workers)
		}
		cfg.Workers = w
	}

	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized DOCSPLICE_* variables.
// Helps catch typos like DOCSPLICE_OUTPUTDIR instead of DOCSPLICE_OUTPUT_DIR.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Precedence: CLI flags > env vars > config file > defaults.
// (CLI flags are applied afterwards by applyFlags.)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.Source.Dir, env.SourceDir)
	setString(&cfg.Output.Dir, env.OutputDir)
	setString(&cfg.Descriptors.Path, env.Descriptors)
	setString(&cfg.Source.Pattern, env.Pattern)
	setString(&cfg.Render.TagStyle, env.TagStyle)
	setString(&cfg.Page.MarkerClass, env.MarkerClass)
	setString(&cfg.Page.Style, env.Style)
	setString(&cfg.Assets.BasePath, env.AssetPath)
	setString(&cfg.Log.Level, env.LogLevel)
	setString(&cfg.Log.Format, env.LogFormat)

	if len(env.Only) > 0 {
		cfg.Source.Only = env.Only
	}
	if env.CopyOther != nil {
		cfg.Source.CopyOther = *env.CopyOther
	}
	if env.FixLeadingSpaces != nil {
		cfg.Render.FixLeadingSpaces = *env.FixLeadingSpaces
	}
	if env.Highlight != nil {
		cfg.Render.Highlight = env.Highlight
	}
	if env.RawHTML != nil {
		cfg.Render.RawHTML = env.RawHTML
	}
	if env.Strict != nil {
		cfg.Render.Strict = *env.Strict
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}

// setString assigns value to dst when value is non-empty.
func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Package config loads and validates docsplice configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-docsplice/internal/fileutil"
	"github.com/alnah/go-docsplice/internal/logging"
	"github.com/alnah/go-docsplice/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength    = 4096
	MaxPatternLength = 512
	MaxMarkerLength  = 64
	MaxFilterLength  = 256
	MaxFilters       = 100
	MaxWorkers       = 64
)

// Defaults applied to empty fields.
const (
	DefaultPattern     = `^[A-Z].*\.html$`
	DefaultTagStyle    = "inline"
	DefaultMarkerClass = "docsplice"
	DefaultStyle       = "default"
)

// userConfigDirName is the directory searched under os.UserConfigDir.
const userConfigDirName = "go-docsplice"

var markerClassPattern = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// Config holds all configuration for a merge run.
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Output      OutputConfig      `yaml:"output"`
	Descriptors DescriptorsConfig `yaml:"descriptors"`
	Render      RenderConfig      `yaml:"render"`
	Page        PageConfig        `yaml:"page"`
	Assets      AssetsConfig      `yaml:"assets"`
	Log         LogConfig         `yaml:"log"`
	Workers     int               `yaml:"workers"` // 0 = auto
}

// SourceConfig selects the reference pages to merge.
type SourceConfig struct {
	Dir       string   `yaml:"dir"`
	Pattern   string   `yaml:"pattern"`   // Regexp on base file names
	Only      []string `yaml:"only"`      // Path substrings; empty = all
	CopyOther bool     `yaml:"copyOther"` // Mirror non-matching files
}

// OutputConfig defines the output root.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = rewrite pages in place
}

// DescriptorsConfig locates class documentation.
type DescriptorsConfig struct {
	Path string `yaml:"path"` // Directory of <class>.json files or a single JSON file
}

// RenderConfig controls comment rendering.
type RenderConfig struct {
	FixLeadingSpaces bool   `yaml:"fixLeadingSpaces"`
	TagStyle         string `yaml:"tagStyle"` // "inline" or "list"
	Highlight        *bool  `yaml:"highlight"`
	RawHTML          *bool  `yaml:"rawHTML"`
	Strict           bool   `yaml:"strict"`
}

// HighlightEnabled reports whether code highlighting is on (default true).
func (r RenderConfig) HighlightEnabled() bool {
	return r.Highlight == nil || *r.Highlight
}

// RawHTMLEnabled reports whether embedded HTML passes through (default true).
func (r RenderConfig) RawHTMLEnabled() bool {
	return r.RawHTML == nil || *r.RawHTML
}

// PageConfig controls what is written into pages.
type PageConfig struct {
	MarkerClass string `yaml:"markerClass"`
	Style       string `yaml:"style"` // Style name or path to a CSS file
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.Source.Pattern == "" {
		c.Source.Pattern = DefaultPattern
	}
	if c.Render.TagStyle == "" {
		c.Render.TagStyle = DefaultTagStyle
	}
	if c.Page.MarkerClass == "" {
		c.Page.MarkerClass = DefaultMarkerClass
	}
	if c.Page.Style == "" {
		c.Page.Style = DefaultStyle
	}
	if c.Log.Level == "" {
		c.Log.Level = logging.DefaultLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = logging.DefaultFormat
	}
}

// Validate checks enumerations, patterns and field lengths.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand.
func (c *Config) Validate() error {
	for field, value := range map[string]string{
		"source.dir":       c.Source.Dir,
		"output.dir":       c.Output.Dir,
		"descriptors.path": c.Descriptors.Path,
		"page.style":       c.Page.Style,
		"assets.basePath":  c.Assets.BasePath,
	} {
		if err := validateFieldLength(field, value, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("source.pattern", c.Source.Pattern, MaxPatternLength); err != nil {
		return err
	}
	if c.Source.Pattern != "" {
		if _, err := regexp.Compile(c.Source.Pattern); err != nil {
			return fmt.Errorf("%w: source.pattern: %v", ErrInvalidValue, err)
		}
	}

	if len(c.Source.Only) > MaxFilters {
		return fmt.Errorf("%w: source.only (%d entries, max %d)", ErrInvalidValue, len(c.Source.Only), MaxFilters)
	}
	for i, filter := range c.Source.Only {
		if err := validateFieldLength(fmt.Sprintf("source.only[%d]", i), filter, MaxFilterLength); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Render.TagStyle) {
	case "", "inline", "list":
		// valid
	default:
		return fmt.Errorf("%w: render.tagStyle %q (must be inline or list)", ErrInvalidValue, c.Render.TagStyle)
	}

	if err := validateFieldLength("page.markerClass", c.Page.MarkerClass, MaxMarkerLength); err != nil {
		return err
	}
	if c.Page.MarkerClass != "" && !markerClassPattern.MatchString(c.Page.MarkerClass) {
		return fmt.Errorf("%w: page.markerClass %q is not a CSS class name", ErrInvalidValue, c.Page.MarkerClass)
	}

	if c.Log.Level != "" {
		if _, err := logging.GetLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level: %v", ErrInvalidValue, err)
		}
	}
	if c.Log.Format != "" {
		if _, err := logging.GetFormat(c.Log.Format); err != nil {
			return fmt.Errorf("%w: log.format: %v", ErrInvalidValue, err)
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Dump renders the configuration as YAML.
func (c *Config) Dump() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in the current directory and the user config
// directory. Empty fields receive defaults. Returns an error if the file is
// not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// SearchPaths returns the candidate paths for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

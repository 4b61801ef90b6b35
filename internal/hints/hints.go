// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path, or creating a config in ~/.config/go-docsplice/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-docsplice") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path to a .css file")
}

// ForDescriptors returns hints for a missing or unreadable descriptor source.
func ForDescriptors() string {
	return format("--descriptors takes a directory of <package.ClassName>.json files or one JSON file keyed by class name")
}

// ForNoPages returns hints when discovery finds nothing to merge.
func ForNoPages(pattern string, only []string) string {
	hints := []string{"page names must match --pattern " + pattern}
	if len(only) > 0 {
		hints = append(hints, "--only keeps paths containing: "+strings.Join(only, ", "))
	}
	return formatHints(hints)
}

// ForRenderFailure returns hints for comments that failed in strict mode.
func ForRenderFailure() string {
	return format("run without --strict to insert such comments with inline markers unresolved")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

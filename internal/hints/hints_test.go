package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "with user path",
			paths:    []string{"./foo.yaml", "/home/u/.config/go-docsplice/foo.yaml"},
			contains: "create /home/u/.config/go-docsplice/foo.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	if hint := ForStyleNotFound([]string{"default", "subtle"}); !strings.Contains(hint, "default, subtle") {
		t.Errorf("expected style list in hint, got %q", hint)
	}
}

func TestForNoPages(t *testing.T) {
	hint := ForNoPages(`^[A-Z].*\.html$`, nil)
	if !strings.Contains(hint, `^[A-Z].*\.html$`) || strings.Contains(hint, "--only") {
		t.Errorf("unexpected hint without filters: %q", hint)
	}

	hint = ForNoPages(`^[A-Z].*\.html$`, []string{"media", "content"})
	if !strings.Contains(hint, "--only keeps paths containing: media, content") {
		t.Errorf("filters missing from hint: %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	hints := []string{
		ForOutputDirectory(),
		ForDescriptors(),
		ForRenderFailure(),
		ForNoPages("x", nil),
		ForConfigNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}

func TestFormat_Empty(t *testing.T) {
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
}

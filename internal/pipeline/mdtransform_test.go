package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unix unchanged", "a\nb", "a\nb"},
		{"windows", "a\r\nb", "a\nb"},
		{"old mac", "a\rb", "a\nb"},
		{"mixed", "a\r\nb\rc\n", "a\nb\nc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeLineEndings(tt.input); got != tt.want {
				t.Errorf("NormalizeLineEndings(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractInlineTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantBody string
		wantTags []InlineTag
	}{
		{
			name:     "no markers",
			body:     "Plain {text} here.",
			wantBody: "Plain {text} here.",
		},
		{
			name:     "single link",
			body:     "See {@link Foo#bar}.",
			wantBody: "See " + placeholder(0) + ".",
			wantTags: []InlineTag{{Raw: "link Foo#bar"}},
		},
		{
			name:     "markers kept in encounter order",
			body:     "{@code a} and {@link B the b} and {@literal <c>}",
			wantBody: placeholder(0) + " and " + placeholder(1) + " and " + placeholder(2),
			wantTags: []InlineTag{{Raw: "code a"}, {Raw: "link B the b"}, {Raw: "literal <c>"}},
		},
		{
			name:     "nested braces stay inside the marker",
			body:     "Use {@code new int[]{1, 2}} here.",
			wantBody: "Use " + placeholder(0) + " here.",
			wantTags: []InlineTag{{Raw: "code new int[]{1, 2}"}},
		},
		{
			name:     "unterminated marker is literal",
			body:     "Broken {@link Foo and more",
			wantBody: "Broken {@link Foo and more",
		},
		{
			name:     "markers after an unterminated one are extracted",
			body:     "Use {@ foo and {@link Bar}.",
			wantBody: "Use {@ foo and " + placeholder(0) + ".",
			wantTags: []InlineTag{{Raw: "link Bar"}},
		},
		{
			name:     "marker spanning lines",
			body:     "See {@link Foo#bar\nthe bar} ok",
			wantBody: "See " + placeholder(0) + " ok",
			wantTags: []InlineTag{{Raw: "link Foo#bar\nthe bar"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotBody, gotTags := ExtractInlineTags(tt.body)
			if gotBody != tt.wantBody {
				t.Errorf("body = %q, want %q", gotBody, tt.wantBody)
			}
			if diff := cmp.Diff(tt.wantTags, gotTags); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractInsertRoundTrip(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"",
		"no markers at all",
		"See {@link Foo#bar} and {@code x}.",
		"{@link A}{@link B}{@link C}",
		"Nested {@code a{b}c} end",
	}

	for _, body := range bodies {
		stripped, tags := ExtractInlineTags(body)

		resolved := make([]string, len(tags))
		for i, tag := range tags {
			resolved[i] = tag.Raw
		}

		got, err := InsertInlineTags(stripped, resolved)
		if err != nil {
			t.Fatalf("InsertInlineTags(%q) error: %v", stripped, err)
		}

		want := body
		for _, tag := range tags {
			want = strings.Replace(want, "{@"+tag.Raw+"}", tag.Raw, 1)
		}
		if got != want {
			t.Errorf("round trip of %q = %q, want %q", body, got, want)
		}
	}
}

func TestInsertInlineTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		resolved []string
		want     string
		wantErr  error
	}{
		{
			name: "no placeholders, nothing resolved",
			html: "<p>plain</p>",
			want: "<p>plain</p>",
		},
		{
			name:     "in order",
			html:     "<p>" + placeholder(0) + " and " + placeholder(1) + "</p>",
			resolved: []string{"A", "B"},
			want:     "<p>A and B</p>",
		},
		{
			name:     "renderer reordered placeholders",
			html:     placeholder(1) + "|" + placeholder(0),
			resolved: []string{"A", "B"},
			want:     "B|A",
		},
		{
			name: "split into highlighted tokens",
			html: `<span class="n">x</span><span class="err">` + InlineStartPlaceholder + `</span><span class="mi">0</span><span class="err">` +
				InlineEndPlaceholder + `</span>`,
			resolved: []string{`<a href="Foo">Foo</a>`},
			want: `<span class="n">x</span><span class="err"><a href="Foo">Foo</a></span><span class="mi"></span>` +
				`<span class="err"></span>`,
		},
		{
			name:     "percent-encoded in a link destination",
			html:     `<a href="%EE%80%900%EE%80%91/x.html">docs</a>`,
			resolved: []string{`a&b`},
			want:     `<a href="a&amp;b/x.html">docs</a>`,
		},
		{
			name:     "placeholder lost",
			html:     "<p>" + placeholder(0) + "</p>",
			resolved: []string{"A", "B"},
			wantErr:  ErrPlaceholderMismatch,
		},
		{
			name:     "extra placeholder",
			html:     placeholder(0) + placeholder(1),
			resolved: []string{"A"},
			wantErr:  ErrPlaceholderMismatch,
		},
		{
			name:     "index out of range",
			html:     placeholder(5),
			resolved: []string{"A"},
			wantErr:  ErrPlaceholderMismatch,
		},
		{
			name:     "duplicated placeholder",
			html:     placeholder(0) + placeholder(0),
			resolved: []string{"A", "B"},
			wantErr:  ErrPlaceholderMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := InsertInlineTags(tt.html, tt.resolved)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if got != "" {
					t.Errorf("output on error = %q, want empty", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("InsertInlineTags() = %q, want %q", got, tt.want)
			}
		})
	}
}

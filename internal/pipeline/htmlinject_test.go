package pipeline

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>MediaPlayer</title></head>
<body>
<h1>MediaPlayer</h1>
<div class="api-section"><h2>Summary</h2></div>
<div class="api-section">
<A NAME="setVolume(float, float)"></A>
<div class="api apilevel-1"><h3>setVolume</h3><pre class="api-signature">void setVolume(float, float)</pre></div>
<a name="start()"></a>
<div class="api"><h3>start</h3><pre class="api-signature">void start()</pre></div>
<div class="api"><h3>orphan</h3><pre class="api-signature">void orphan()</pre></div>
</div>
</body></html>`

func mustParsePage(t *testing.T, content string) *Page {
	t.Helper()

	page, err := ParsePage([]byte(content))
	if err != nil {
		t.Fatalf("ParsePage() error: %v", err)
	}
	return page
}

func mustRender(t *testing.T, page *Page) string {
	t.Helper()

	out, err := page.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return string(out)
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", ".docsplice { padding: 1em; }", ".docsplice { padding: 1em; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPage_InjectStyle(t *testing.T) {
	t.Parallel()

	page := mustParsePage(t, samplePage)

	if !page.InjectStyle(".docsplice { border: 1px solid; }") {
		t.Fatal("first InjectStyle() = false, want true")
	}
	if page.InjectStyle(".other {}") {
		t.Error("second InjectStyle() = true, want false")
	}

	out := mustRender(t, page)
	if strings.Count(out, "<style") != 1 {
		t.Errorf("want exactly one style element in %q", out)
	}
	styleIdx := strings.Index(out, "<style data-docsplice")
	headEnd := strings.Index(out, "</head>")
	titleIdx := strings.Index(out, "<title>")
	if styleIdx == -1 || styleIdx > headEnd || styleIdx < titleIdx {
		t.Errorf("style not appended at end of head: %q", out)
	}
}

func TestPage_RemoveStyle(t *testing.T) {
	t.Parallel()

	page := mustParsePage(t, samplePage)
	if page.RemoveStyle() {
		t.Error("RemoveStyle() on clean page = true, want false")
	}

	page.InjectStyle(".docsplice {}")
	if !page.RemoveStyle() {
		t.Fatal("RemoveStyle() = false, want true")
	}
	if out := mustRender(t, page); strings.Contains(out, "<style") {
		t.Errorf("style still present: %q", out)
	}
	if !page.InjectStyle(".docsplice {}") {
		t.Error("InjectStyle() after RemoveStyle() = false, want true")
	}
}

func TestPage_MemberAnchors(t *testing.T) {
	t.Parallel()

	page := mustParsePage(t, samplePage)
	anchors := page.MemberAnchors("api", "api-signature")

	want := []string{"setVolume(float,float)", "start()"}
	if len(anchors) != len(want) {
		t.Fatalf("got %d anchors, want %d", len(anchors), len(want))
	}
	for i, a := range anchors {
		if a.Name != want[i] {
			t.Errorf("anchors[%d].Name = %q, want %q", i, a.Name, want[i])
		}
		if !hasClass(a.Node, "api") {
			t.Errorf("anchors[%d].Node is not the api container", i)
		}
	}
}

func TestPage_ClassAnchor(t *testing.T) {
	t.Parallel()

	page := mustParsePage(t, samplePage)

	anchor := page.ClassAnchor("api-section")
	if anchor == nil {
		t.Fatal("ClassAnchor() = nil")
	}
	if err := InsertBefore(anchor, `<div class="docsplice type"><p>Class doc</p></div>`); err != nil {
		t.Fatalf("InsertBefore() error: %v", err)
	}

	out := mustRender(t, page)
	docIdx := strings.Index(out, "Class doc")
	sectionIdx := strings.Index(out, `class="api-section"`)
	if docIdx == -1 || docIdx > sectionIdx {
		t.Errorf("class doc not inserted before first section: %q", out)
	}

	if got := mustParsePage(t, "<html><body><p>x</p></body></html>").ClassAnchor("api-section"); got != nil {
		t.Errorf("ClassAnchor() on page without sections = %v, want nil", got)
	}
}

func TestInsertAfter(t *testing.T) {
	t.Parallel()

	page := mustParsePage(t, samplePage)
	anchors := page.MemberAnchors("api", "api-signature")

	if err := InsertAfter(anchors[0].Node, `<div class="docsplice method">one</div><div class="docsplice method">two</div>`); err != nil {
		t.Fatalf("InsertAfter() error: %v", err)
	}

	out := mustRender(t, page)
	sig := strings.Index(out, "void setVolume")
	one := strings.Index(out, ">one<")
	two := strings.Index(out, ">two<")
	start := strings.Index(out, `name="start()"`)
	if !(sig < one && one < two && two < start) {
		t.Errorf("fragment nodes out of order: sig=%d one=%d two=%d start=%d", sig, one, two, start)
	}
}

func TestPage_RemoveBlocks(t *testing.T) {
	t.Parallel()

	page := mustParsePage(t, `<html><body>
<div class="docsplice type">old</div>
<div class="api-section"><div class="docsplice method">old method</div></div>
<div class="docsplicer">keep</div>
</body></html>`)

	if got := page.RemoveBlocks("docsplice"); got != 2 {
		t.Errorf("RemoveBlocks() = %d, want 2", got)
	}
	out := mustRender(t, page)
	if strings.Contains(out, "old") {
		t.Errorf("old blocks still present: %q", out)
	}
	if !strings.Contains(out, "keep") {
		t.Errorf("unrelated block removed: %q", out)
	}
}

func TestNormalizeAnchorName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"start()", "start()"},
		{"setVolume(float, float)", "setVolume(float,float)"},
		{" a b c ", "abc"},
	}

	for _, tt := range tests {
		if got := NormalizeAnchorName(tt.input); got != tt.want {
			t.Errorf("NormalizeAnchorName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-docsplice/internal/config"
)

func TestClassNameFromRel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want string
	}{
		{"Foo.html", "Foo"},
		{filepath.Join("android", "media", "MediaPlayer.html"), "android.media.MediaPlayer"},
		{filepath.Join("java", "util", "Map.Entry.html"), "java.util.Map.Entry"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := classNameFromRel(tt.rel); got != tt.want {
				t.Errorf("classNameFromRel(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestMatchesOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rel  string
		only []string
		want bool
	}{
		{"no filters", "a/B.html", nil, true},
		{"match", "android/media/Player.html", []string{"os", "media/"}, true},
		{"no match", "android/os/Build.html", []string{"media"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := matchesOnly(filepath.FromSlash(tt.rel), tt.only); got != tt.want {
				t.Errorf("matchesOnly(%q, %q) = %v, want %v", tt.rel, tt.only, got, tt.want)
			}
		})
	}
}

func TestDiscoverPages_OutputDir(t *testing.T) {
	t.Parallel()

	src, _ := testTree(t)
	out := filepath.Join(t.TempDir(), "out")

	pages, others, err := discoverPages(src, out, config.SourceConfig{CopyOther: true})
	if err != nil {
		t.Fatalf("discoverPages() error: %v", err)
	}

	rel := filepath.Join("com", "example", "Player.html")
	wantPages := []PageToMerge{{
		InputPath:  filepath.Join(src, rel),
		OutputPath: filepath.Join(out, rel),
		RelPath:    rel,
		ClassName:  "com.example.Player",
	}}
	if diff := cmp.Diff(wantPages, pages); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}

	if len(others) != 2 {
		t.Fatalf("got %d files to copy, want 2: %v", len(others), others)
	}
	for _, f := range others {
		rel, err := filepath.Rel(src, f.InputPath)
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(out, rel); f.OutputPath != want {
			t.Errorf("copy %s -> %s, want %s", f.InputPath, f.OutputPath, want)
		}
	}
}

func TestDiscoverPages_InPlace(t *testing.T) {
	t.Parallel()

	src, _ := testTree(t)

	pages, others, err := discoverPages(src, "", config.SourceConfig{CopyOther: true})
	if err != nil {
		t.Fatalf("discoverPages() error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if pages[0].OutputPath != pages[0].InputPath {
		t.Errorf("OutputPath = %q, want input path %q", pages[0].OutputPath, pages[0].InputPath)
	}
	if len(others) != 0 {
		t.Errorf("in-place run should copy nothing, got %v", others)
	}
}

func TestDiscoverPages_SkipsNestedOutput(t *testing.T) {
	t.Parallel()

	src, _ := testTree(t)
	out := filepath.Join(src, "merged")
	writeTestFile(t, out, "com/example/Player.html", testPage)

	pages, _, err := discoverPages(src, out, config.SourceConfig{})
	if err != nil {
		t.Fatalf("discoverPages() error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1 (output tree must be skipped): %v", len(pages), pages)
	}
}

func TestDiscoverPages_PatternAndOnly(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTestFile(t, src, "a/media/Player.html", testPage)
	writeTestFile(t, src, "a/os/Build.html", testPage)
	writeTestFile(t, src, "a/os/Build.txt", "not html")
	writeTestFile(t, src, "a/os/lower.html", testPage)

	tests := []struct {
		name string
		src  config.SourceConfig
		want []string
	}{
		{"default pattern", config.SourceConfig{}, []string{"a.media.Player", "a.os.Build"}},
		{"only", config.SourceConfig{Only: []string{"media"}}, []string{"a.media.Player"}},
		{"custom pattern", config.SourceConfig{Pattern: `^[a-z].*`}, []string{"a.os.lower"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages, _, err := discoverPages(src, "", tt.src)
			if err != nil {
				t.Fatalf("discoverPages() error: %v", err)
			}
			var got []string
			for _, p := range pages {
				got = append(got, p.ClassName)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("class names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiscoverPages_OnlyWithCopyOther(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeTestFile(t, src, "a/media/Player.html", testPage)
	writeTestFile(t, src, "a/os/Build.html", testPage)

	pages, others, err := discoverPages(src, out, config.SourceConfig{Only: []string{"media"}, CopyOther: true})
	if err != nil {
		t.Fatalf("discoverPages() error: %v", err)
	}
	if len(pages) != 1 || pages[0].ClassName != "a.media.Player" {
		t.Fatalf("pages = %+v, want only a.media.Player", pages)
	}
	want := []fileToCopy{{
		InputPath:  filepath.Join(src, "a", "os", "Build.html"),
		OutputPath: filepath.Join(out, "a", "os", "Build.html"),
	}}
	if diff := cmp.Diff(want, others); diff != "" {
		t.Errorf("copied files mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverPages_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, _, err := discoverPages(t.TempDir(), "", config.SourceConfig{Pattern: "("})
	if err == nil {
		t.Fatal("discoverPages() with invalid pattern should fail")
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// testEnv returns an Environment with captured output and the given
// variables as the process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Stdout: stdout,
		Stderr: stderr,
		LookupEnv: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, stdout, stderr
}

// writeTestFile writes content under dir, creating parent directories.
func writeTestFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// readTestFile returns the content of path.
func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", path, err)
	}
	return string(data)
}

const testPage = `<!DOCTYPE html>
<html><head><title>Player</title></head>
<body>
<h1>Player</h1>
<div class="api-section">
<a name="start()"></a>
<div class="api"><pre class="api-signature">void start()</pre></div>
<a name="seek(int, boolean)"></a>
<div class="api"><pre class="api-signature">void seek(int, boolean)</pre></div>
</div>
</body></html>`

const testDescriptor = `{
  "doc": "Plays media. See {@link com.example.Track}.",
  "methods": {
    "start()": {"doc": "Starts playback.\n@throws IllegalStateException if released"},
    "seek(int,boolean)": {"doc": null}
  }
}`

// testTree lays out a source tree and a descriptor directory.
func testTree(t *testing.T) (src, desc string) {
	t.Helper()

	root := t.TempDir()
	src = filepath.Join(root, "src")
	desc = filepath.Join(root, "desc")

	writeTestFile(t, src, "com/example/Player.html", testPage)
	writeTestFile(t, src, "com/example/package-summary.html", "<html><body>summary</body></html>")
	writeTestFile(t, src, "style.css", "body{}")
	writeTestFile(t, desc, "com.example.Player.json", testDescriptor)
	return src, desc
}

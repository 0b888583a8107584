package strategy

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTree materializes a fixture working tree, including a .git marker.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files[".git/config"] = "[core]\n"
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func assertExists(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s missing: %v", rel, err)
		}
	}
}

func assertGone(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); !os.IsNotExist(err) {
			t.Errorf("%s still present", rel)
		}
	}
}

func TestApplyPatternsExclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":       "keep",
		"vendor/lib.go":   "drop",
		"vendor/sub/x.go": "drop",
		"src/main.go":     "keep",
	})

	if err := ApplyPatterns(root, nil, []string{"vendor/*"}); err != nil {
		t.Fatalf("ApplyPatterns returned error: %v", err)
	}

	assertExists(t, root, "README.md", "src/main.go", ".git/config")
	assertGone(t, root, "vendor/lib.go")
	// path.Match does not cross slashes, so nested vendor files survive a
	// single-star pattern.
	assertExists(t, root, "vendor/sub/x.go")
}

func TestApplyPatternsInclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":   "keep",
		"docs/x.md":   "keep",
		"src/main.go": "drop",
		"LICENSE":     "drop",
	})

	if err := ApplyPatterns(root, []string{"*.md"}, nil); err != nil {
		t.Fatalf("ApplyPatterns returned error: %v", err)
	}

	// Base-name matching lets "*.md" reach nested markdown files.
	assertExists(t, root, "README.md", "docs/x.md", ".git/config")
	assertGone(t, root, "src/main.go", "LICENSE", "src")
}

func TestApplyPatternsExcludeWinsOverInclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"keep.md": "keep",
		"drop.md": "drop",
	})

	if err := ApplyPatterns(root, []string{"*.md"}, []string{"drop.md"}); err != nil {
		t.Fatalf("ApplyPatterns returned error: %v", err)
	}
	assertExists(t, root, "keep.md")
	assertGone(t, root, "drop.md")
}

func TestApplyPatternsRemovesEmptiedDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/b/c/file.tmp": "drop",
		"a/keep.md":      "keep",
	})

	if err := ApplyPatterns(root, nil, []string{"*.tmp"}); err != nil {
		t.Fatalf("ApplyPatterns returned error: %v", err)
	}
	assertGone(t, root, "a/b/c/file.tmp", "a/b/c", "a/b")
	assertExists(t, root, "a/keep.md")
}

func TestApplyPatternsInvalidPattern(t *testing.T) {
	root := writeTree(t, map[string]string{"file.md": "content"})

	if err := ApplyPatterns(root, nil, []string{"[unclosed"}); err == nil {
		t.Error("ApplyPatterns accepted a malformed pattern")
	}
	// Nothing is removed when validation fails.
	assertExists(t, root, "file.md")
}

func TestPruneToTopLevel(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":   "keep",
		"Makefile":    "keep",
		"src/main.go": "drop",
		"docs/x.md":   "drop",
	})

	if err := pruneToTopLevel(root); err != nil {
		t.Fatalf("pruneToTopLevel returned error: %v", err)
	}
	assertExists(t, root, "README.md", "Makefile", ".git/config")
	assertGone(t, root, "src", "docs")
}

func TestTruncateFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":   "some content",
		"src/main.go": "package main",
	})

	if err := truncateFiles(root); err != nil {
		t.Fatalf("truncateFiles returned error: %v", err)
	}

	for _, rel := range []string{"README.md", "src/main.go"} {
		fi, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("stat %s: %v", rel, err)
		}
		if fi.Size() != 0 {
			t.Errorf("%s has %d bytes, want 0", rel, fi.Size())
		}
	}

	fi, err := os.Stat(filepath.Join(root, ".git", "config"))
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error(".git/config was truncated")
	}
}

func TestPruneByExtension(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":     "keep",
		"guide.MD":      "keep, case-insensitive",
		"main.py":       "drop",
		"LICENSE":       "drop, no extension",
		"src/app.js":    "drop",
		"src/notes.md":  "keep",
		"tmp/only.tmp":  "drop",
		"tmp/deep/x.py": "drop",
	})

	if err := pruneByExtension(root, map[string]bool{"md": true}); err != nil {
		t.Fatalf("pruneByExtension returned error: %v", err)
	}

	assertExists(t, root, "README.md", "guide.MD", "src/notes.md", ".git/config")
	assertGone(t, root, "main.py", "LICENSE", "src/app.js", "tmp")
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "go"},
		{"README.MD", "md"},
		{"archive.tar.gz", "gz"},
		{"Makefile", ""},
		{"trailing.", ""},
		{".gitignore", "gitignore"},
	}
	for _, tt := range tests {
		if got := fileExtension(tt.name); got != tt.want {
			t.Errorf("fileExtension(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

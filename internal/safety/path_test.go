package safety

import (
	"path/filepath"
	"testing"
)

func TestCleanRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "docs", want: "docs"},
		{name: "nested", input: "src/api", want: filepath.Join("src", "api")},
		{name: "redundant segments", input: "./docs//sub", want: filepath.Join("docs", "sub")},
		{name: "empty", input: "", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "absolute", input: "/etc/passwd", wantErr: true},
		{name: "parent", input: "..", wantErr: true},
		{name: "traversal prefix", input: "../outside", wantErr: true},
		{name: "traversal inside", input: "docs/../../outside", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanRelativePath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CleanRelativePath(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanRelativePath(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("CleanRelativePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnsureUnderRoot(t *testing.T) {
	root := t.TempDir()

	got, err := EnsureUnderRoot(root, filepath.Join(root, "sub", "file.txt"))
	if err != nil {
		t.Fatalf("EnsureUnderRoot returned error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("EnsureUnderRoot returned non-absolute path %q", got)
	}

	if _, err := EnsureUnderRoot(root, filepath.Join(root, "..", "escape")); err == nil {
		t.Error("EnsureUnderRoot accepted a path escaping the root")
	}
	if _, err := EnsureUnderRoot(root, filepath.Join(root, "sub", "..", "..", "escape")); err == nil {
		t.Error("EnsureUnderRoot accepted a traversal path escaping the root")
	}
}

package strategy

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/repograb/repograb/internal/safety"
)

// vcsDir is the version-control metadata directory. Pruning operations
// never descend into or remove it.
const vcsDir = ".git"

// pruneToTopLevel removes every top-level directory under root except the
// version-control metadata directory, leaving only root-level files.
func pruneToTopLevel(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == vcsDir {
			continue
		}
		target, err := safety.EnsureUnderRoot(root, filepath.Join(root, entry.Name()))
		if err != nil {
			return err
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("removing %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// truncateFiles zeroes every regular file under root, preserving names and
// directory layout.
func truncateFiles(root string) error {
	return walkWorkTree(root, func(p string, d fs.DirEntry) error {
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if err := os.Truncate(p, 0); err != nil {
			return fmt.Errorf("truncating %s: %w", p, err)
		}
		return nil
	})
}

// pruneByExtension removes every file whose extension is not in keep, then
// removes directories left empty. Extensions are compared lowercased and
// without the leading dot; files with no extension are always removed.
func pruneByExtension(root string, keep map[string]bool) error {
	err := walkWorkTree(root, func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if keep[fileExtension(d.Name())] {
			return nil
		}
		target, err := safety.EnsureUnderRoot(root, p)
		if err != nil {
			return err
		}
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return removeEmptyDirs(root)
}

// ApplyPatterns prunes the working tree at root by include/exclude glob
// patterns. When include patterns are given, a file must match at least one
// to survive; any file matching an exclude pattern is removed. Patterns are
// matched against the slash-separated path relative to root and against the
// bare base name. Directories emptied by the pruning are removed.
func ApplyPatterns(root string, include, exclude []string) error {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if _, err := path.Match(p, "probe"); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	err := walkWorkTree(root, func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		keep := true
		if len(include) > 0 {
			keep = matchesAny(include, rel, d.Name())
		}
		if keep && matchesAny(exclude, rel, d.Name()) {
			keep = false
		}
		if keep {
			return nil
		}

		target, err := safety.EnsureUnderRoot(root, p)
		if err != nil {
			return err
		}
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("removing %s: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return removeEmptyDirs(root)
}

func matchesAny(patterns []string, rel, base string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		if ok, _ := path.Match(p, base); ok {
			return true
		}
	}
	return false
}

// removeEmptyDirs removes directories under root that contain no files,
// deepest first. The root itself and the version-control metadata directory
// are kept.
func removeEmptyDirs(root string) error {
	var dirs []string
	err := walkWorkTree(root, func(p string, d fs.DirEntry) error {
		if d.IsDir() && p != root {
			dirs = append(dirs, p)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Deepest paths first so nested empty directories collapse upward.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		if len(entries) == 0 {
			target, err := safety.EnsureUnderRoot(root, dir)
			if err != nil {
				return err
			}
			if err := os.Remove(target); err != nil {
				return fmt.Errorf("removing empty directory %s: %w", dir, err)
			}
		}
	}
	return nil
}

// walkWorkTree walks root, skipping the version-control metadata directory.
func walkWorkTree(root string, fn func(p string, d fs.DirEntry) error) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == vcsDir && p != root {
			return filepath.SkipDir
		}
		return fn(p, d)
	})
}

// fileExtension returns the lowercased suffix after the last dot, or empty
// for names without one.
func fileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

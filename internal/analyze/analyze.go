// Package analyze produces a deterministic structure report for an
// acquired working directory.
package analyze

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// vcsDir is excluded from every count and the tree dump.
	vcsDir = ".git"

	topExtensions = 10
	topLargest    = 5
	treeDepth     = 3

	// NoExtension is the bucket for files without a dot in their name.
	NoExtension = "(no extension)"
)

// ExtensionCount is one row of the extension frequency table.
type ExtensionCount struct {
	Extension string
	Count     int
}

// LargeFile is one entry in the largest-files list.
type LargeFile struct {
	Path string // relative to the analyzed root, slash-separated
	Size int64
}

// Report summarizes the structure of a directory tree. It is informational
// output only; nothing downstream consumes it.
type Report struct {
	Root       string
	DirCount   int
	FileCount  int
	TotalSize  int64
	Extensions []ExtensionCount // top 10 by count desc, extension asc
	Largest    []LargeFile      // top 5 by size desc, path asc
	Tree       string           // directory tree truncated to 3 levels
}

// Analyze walks dir and builds a Report. The walk is read-only and the
// output ordering is fully deterministic.
func Analyze(dir string) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	report := &Report{Root: dir}
	extCounts := make(map[string]int)
	var files []LargeFile

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		if d.IsDir() && d.Name() == vcsDir {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			report.DirCount++
			return nil
		}

		report.FileCount++
		extCounts[extensionBucket(d.Name())]++

		fi, err := d.Info()
		if err != nil {
			return nil // file vanished mid-walk, skip
		}
		report.TotalSize += fi.Size()
		files = append(files, LargeFile{Path: rel, Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	report.Extensions = topExtensionCounts(extCounts)
	report.Largest = largestFiles(files)

	tree, err := renderTree(dir, treeDepth)
	if err != nil {
		return nil, err
	}
	report.Tree = tree

	return report, nil
}

// extensionBucket groups a file name by the lowercased suffix after the
// last dot; names without a dot fall into the no-extension bucket.
func extensionBucket(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return NoExtension
	}
	ext := strings.ToLower(name[idx+1:])
	if ext == "" {
		return NoExtension
	}
	return ext
}

// topExtensionCounts orders buckets by count descending, ties broken by
// ascending extension name, truncated to the top 10.
func topExtensionCounts(counts map[string]int) []ExtensionCount {
	out := make([]ExtensionCount, 0, len(counts))
	for ext, n := range counts {
		out = append(out, ExtensionCount{Extension: ext, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Extension < out[j].Extension
	})
	if len(out) > topExtensions {
		out = out[:topExtensions]
	}
	return out
}

// largestFiles orders by size descending, ties broken by ascending path,
// truncated to the top 5.
func largestFiles(files []LargeFile) []LargeFile {
	sort.Slice(files, func(i, j int) bool {
		if files[i].Size != files[j].Size {
			return files[i].Size > files[j].Size
		}
		return files[i].Path < files[j].Path
	})
	if len(files) > topLargest {
		files = files[:topLargest]
	}
	return files
}

// renderTree dumps the directory tree down to maxDepth levels, directories
// suffixed with a slash, entries in lexicographic order.
func renderTree(root string, maxDepth int) (string, error) {
	var sb strings.Builder
	sb.WriteString(filepath.Base(root) + "/\n")
	if err := renderTreeLevel(root, 1, maxDepth, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderTreeLevel(dir string, depth, maxDepth int, sb *strings.Builder) error {
	if depth > maxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	indent := strings.Repeat("  ", depth)
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() == vcsDir {
			continue
		}
		if entry.IsDir() {
			sb.WriteString(indent + entry.Name() + "/\n")
			if err := renderTreeLevel(filepath.Join(dir, entry.Name()), depth+1, maxDepth, sb); err != nil {
				return err
			}
		} else {
			sb.WriteString(indent + entry.Name() + "\n")
		}
	}
	return nil
}

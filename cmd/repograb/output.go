package main

import (
	"fmt"
	"time"

	"github.com/repograb/repograb/internal/analyze"
	"github.com/repograb/repograb/internal/engine"
	"github.com/repograb/repograb/internal/hosting"
	"github.com/repograb/repograb/internal/locator"
	"github.com/repograb/repograb/internal/strategy"
)

// printResult prints the outcome of a completed acquisition.
func printResult(ref locator.Ref, report *engine.RunReport) {
	result := report.Result

	fmt.Printf("Acquired %s with strategy %q in %s\n", ref, report.Plan.Strategy, report.Duration.Round(time.Millisecond))

	switch result.Kind {
	case strategy.KindWorkingDirectory:
		fmt.Printf("Working directory: %s\n", result.Path)
	case strategy.KindBareMirror:
		fmt.Printf("Bare mirror: %s\n", result.Path)
	case strategy.KindBundleFile:
		fmt.Printf("Bundle file: %s\n", result.Path)
	case strategy.KindMetadataOnly:
		fmt.Println("No files materialized (metadata only).")
	}

	if result.Metadata != nil {
		fmt.Println()
		printMetadata(result.Metadata)
	}

	if report.Analysis != nil {
		fmt.Println()
		printAnalysis(report.Analysis)
	}
}

// printMetadata prints a repository metadata snapshot. Absent optional
// fields are shown explicitly rather than omitted.
func printMetadata(md *hosting.Metadata) {
	fmt.Printf("Repository: %s/%s\n", md.Owner, md.Name)
	fmt.Printf("  Description: %s\n", orNotAvailable(md.Description))
	fmt.Printf("  Language:    %s\n", orNotAvailable(md.PrimaryLanguage))
	fmt.Printf("  License:     %s\n", orNotAvailable(md.License))
	fmt.Printf("  Size:        %s\n", formatBytes(md.DiskUsageKB*1024))
	fmt.Printf("  Stars:       %d  Forks: %d  Watchers: %d\n", md.Stars, md.Forks, md.Watchers)
	fmt.Printf("  Created:     %s\n", formatTime(md.CreatedAt))
	fmt.Printf("  Updated:     %s\n", formatTime(md.UpdatedAt))
	fmt.Printf("  Pushed:      %s\n", formatTime(md.PushedAt))
	fmt.Printf("  Private:     %t\n", md.Private)
	if md.IsFork {
		if md.Parent != nil {
			fmt.Printf("  Fork of:     %s\n", md.Parent)
		} else {
			fmt.Println("  Fork of:     not available")
		}
	}
}

// printAnalysis prints a directory structure report.
func printAnalysis(report *analyze.Report) {
	fmt.Printf("Structure of %s\n", report.Root)
	fmt.Printf("  Directories: %d\n", report.DirCount)
	fmt.Printf("  Files:       %d\n", report.FileCount)
	fmt.Printf("  Total size:  %s\n", formatBytes(report.TotalSize))

	if len(report.Extensions) > 0 {
		fmt.Println("\nTop extensions:")
		for _, ec := range report.Extensions {
			fmt.Printf("  %6d  %s\n", ec.Count, ec.Extension)
		}
	}

	if len(report.Largest) > 0 {
		fmt.Println("\nLargest files:")
		for _, lf := range report.Largest {
			fmt.Printf("  %10s  %s\n", formatBytes(lf.Size), lf.Path)
		}
	}

	if report.Tree != "" {
		fmt.Println("\nTree (3 levels):")
		fmt.Print(report.Tree)
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return "not available"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "not available"
	}
	return t.Format("2006-01-02 15:04:05 MST")
}

// formatBytes formats a byte count in human-readable form
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

package main

import (
	"github.com/repograb/repograb/internal/analyze"
	"github.com/spf13/cobra"
)

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <directory>",
		Short: "Report the structure of an acquired working directory",
		Long: `Analyze walks a directory and prints counts, size totals, the top
file extensions, the largest files, and a tree truncated to three
levels. The .git directory is excluded throughout. The walk is
read-only.`,
		Example: `  repograb analyze ./Hello-World`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := analyze.Analyze(args[0])
			if err != nil {
				return err
			}
			printAnalysis(report)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/repograb/repograb/internal/locator"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyRepo  string
)

// newHistoryCmd creates the history command
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded acquisition runs, newest first",
		Example: `  repograb history
  repograb history --limit 5
  repograb history --repo octocat/Hello-World`,
		RunE: runHistory,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show")
	cmd.Flags().StringVar(&historyRepo, "repo", "", "filter by repository (owner/name)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if globalStore == nil {
		return fmt.Errorf("history recording is disabled in config")
	}

	var owner, name string
	if historyRepo != "" {
		ref, err := locator.Parse(historyRepo)
		if err != nil {
			return err
		}
		owner, name = ref.Owner, ref.Name
	}

	runs, err := globalStore.ListAcquisitionRuns(owner, name, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list acquisition runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No acquisition runs recorded.")
		return nil
	}

	total, err := globalStore.CountAcquisitionRuns()
	if err != nil {
		return fmt.Errorf("failed to count acquisition runs: %w", err)
	}

	fmt.Printf("%-5s %-30s %-10s %-9s %-20s %-10s %s\n",
		"ID", "REPOSITORY", "STRATEGY", "STATUS", "STARTED", "FILES", "SIZE")
	for _, run := range runs {
		repo := run.Owner + "/" + run.Name
		if len(repo) > 30 {
			repo = repo[:27] + "..."
		}
		fmt.Printf("%-5d %-30s %-10s %-9s %-20s %-10d %s\n",
			run.ID, repo, run.Strategy, run.Status,
			run.StartTime.Format("2006-01-02 15:04:05"),
			run.FileCount, formatBytes(run.TotalSize))
	}
	fmt.Printf("\nShowing %d of %d recorded runs.\n", len(runs), total)

	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/repograb/repograb/internal/locator"
	"github.com/repograb/repograb/internal/strategy"
	"github.com/spf13/cobra"
)

var (
	grabStrategy    string
	grabDepth       int
	grabBranch      string
	grabNoFork      bool
	grabTarget      string
	grabFileTypes   string
	grabSparsePaths string
	grabInclude     []string
	grabExclude     []string
	grabAnalyzeOnly bool
	grabDryRun      bool
	grabCompress    bool
	grabNoAnalyze   bool
)

// newGrabCmd creates the grab command
func newGrabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grab <repository>",
		Short: "Acquire a repository under the selected strategy",
		Long: `Grab acquires a remote repository under one of the registered
strategies. The repository may be given as owner/name, an https URL, or
an ssh URL. The target path defaults to <work-dir>/<name>; bundle
targets get a .bundle suffix and mirror targets a .git suffix.

With --dry-run the resolved plan is printed and nothing is executed: no
clone, no metadata fetch, no history row.`,
		Example: `  repograb grab octocat/Hello-World
  repograb grab octocat/Hello-World --strategy shallow --depth 5
  repograb grab octocat/Hello-World --strategy filetype --file-types go,md
  repograb grab octocat/Hello-World --strategy sparse --sparse-paths docs,src/api
  repograb grab octocat/Hello-World --strategy bundle --compress
  repograb grab octocat/Hello-World --exclude 'vendor/*' --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runGrab,
	}

	cmd.Flags().StringVarP(&grabStrategy, "strategy", "s", "", "acquisition strategy (defaults to config value)")
	cmd.Flags().IntVarP(&grabDepth, "depth", "d", 0, "commit depth for depth-aware strategies")
	cmd.Flags().StringVarP(&grabBranch, "branch", "b", "", "branch to acquire (defaults to the remote default branch)")
	cmd.Flags().BoolVar(&grabNoFork, "no-fork", false, "skip remote fork creation in the full strategy")
	cmd.Flags().StringVarP(&grabTarget, "target", "t", "", "target path (defaults to <work-dir>/<name>)")
	cmd.Flags().StringVar(&grabFileTypes, "file-types", "", "comma-separated extensions for the filetype strategy")
	cmd.Flags().StringVar(&grabSparsePaths, "sparse-paths", "", "comma-separated directories for the sparse strategy")
	cmd.Flags().StringArrayVar(&grabInclude, "include", nil, "glob pattern files must match to be kept (repeatable)")
	cmd.Flags().StringArrayVar(&grabExclude, "exclude", nil, "glob pattern for files to remove (repeatable)")
	cmd.Flags().BoolVar(&grabAnalyzeOnly, "analyze-only", false, "fetch metadata only, clone nothing")
	cmd.Flags().BoolVar(&grabDryRun, "dry-run", false, "print the resolved plan without executing it")
	cmd.Flags().BoolVar(&grabCompress, "compress", false, "zstd-compress the bundle output (bundle strategy only)")
	cmd.Flags().BoolVar(&grabNoAnalyze, "no-analyze", false, "skip structure analysis after acquisition")

	return cmd
}

func runGrab(cmd *cobra.Command, args []string) error {
	ref, err := locator.Parse(args[0])
	if err != nil {
		return err
	}

	strategyName := grabStrategy
	if strategyName == "" {
		strategyName = globalCfg.Defaults.Strategy
	}
	if grabAnalyzeOnly {
		strategyName = strategy.NameMetadata
	}

	depth := grabDepth
	if depth <= 0 {
		depth = globalCfg.Defaults.Depth
	}

	createFork := strategyName == strategy.NameFull && !grabNoFork

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Probing is skipped under dry-run so planning stays process-free.
	if !grabDryRun {
		if missing := globalProber.Check(ctx, createFork); len(missing) > 0 {
			for _, m := range missing {
				fmt.Fprintf(os.Stderr, "missing: %s\n  remedy: %s\n", m.Name, m.Remedy)
			}
			return fmt.Errorf("%d required capabilities missing", len(missing))
		}
	}

	target := grabTarget
	if target == "" {
		target = filepath.Join(globalCfg.Defaults.WorkDir, ref.Name)
		if strategyName == strategy.NameMirror {
			target += ".git"
		}
	}

	req := &strategy.Request{
		Strategy:        strategyName,
		Depth:           depth,
		Branch:          grabBranch,
		CreateFork:      createFork,
		Target:          target,
		FileTypes:       splitList(grabFileTypes),
		SparsePaths:     splitList(grabSparsePaths),
		IncludePatterns: grabInclude,
		ExcludePatterns: grabExclude,
		Compress:        grabCompress,
		DryRun:          grabDryRun,
		Verbose:         verbose,
	}

	report, err := globalExecutor.Run(ctx, ref, req, !grabNoAnalyze)
	if err != nil {
		return err
	}

	if report.DryRun {
		fmt.Printf("DRY RUN: strategy %q on %s\n\n", report.Plan.Strategy, ref)
		for i, step := range report.Plan.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
		if report.Plan.Target != "" {
			fmt.Printf("\nTarget: %s\n", report.Plan.Target)
		}
		return nil
	}

	printResult(ref, report)
	return nil
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

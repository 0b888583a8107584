package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/repograb/repograb/internal/locator"
	"github.com/spf13/cobra"
)

// newInfoCmd creates the info command
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <repository>",
		Short: "Show hosting metadata for a repository without cloning it",
		Example: `  repograb info octocat/Hello-World
  repograb info https://github.com/octocat/Hello-World`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := locator.Parse(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			md, err := globalHosting.FetchMetadata(ctx, ref)
			if err != nil {
				return err
			}

			printMetadata(md)
			return nil
		},
	}
}

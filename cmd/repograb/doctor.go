package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/repograb/repograb/internal/hosting"
	"github.com/repograb/repograb/internal/probe"
	"github.com/spf13/cobra"
)

var doctorFork bool

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are available",
		Long: `Doctor runs the same capability probe that precedes every
acquisition: the git and gh binaries must be on PATH, and with --fork
the gh session must be authenticated. All missing capabilities are
reported at once with a remedy for each.`,
		Example: `  repograb doctor
  repograb doctor --fork`,
		RunE: runDoctor,
	}

	cmd.Flags().BoolVar(&doctorFork, "fork", false, "also check gh authentication needed for fork creation")

	return cmd
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := hosting.NewCLI(logger)
	prober := probe.New(cli.AuthStatus, logger)

	missing := prober.Check(ctx, doctorFork)
	if len(missing) == 0 {
		fmt.Println("All required capabilities are available.")
		return nil
	}

	fmt.Printf("%d capabilities missing:\n\n", len(missing))
	for _, m := range missing {
		fmt.Printf("  ✗ %s\n    remedy: %s\n", m.Name, m.Remedy)
	}
	return fmt.Errorf("%d required capabilities missing", len(missing))
}

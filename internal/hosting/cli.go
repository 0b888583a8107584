package hosting

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/repograb/repograb/internal/locator"
)

// CLI wraps the gh command-line client for the operations the REST API
// client does not cover: session checks and fork creation.
type CLI struct {
	ghPath string
	logger *slog.Logger
}

// NewCLI creates a gh wrapper.
func NewCLI(logger *slog.Logger) *CLI {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLI{ghPath: "gh", logger: logger}
}

// AuthStatus reports whether gh has an authenticated session.
func (c *CLI) AuthStatus(ctx context.Context) error {
	return c.run(ctx, "auth", "status")
}

// CreateFork creates a remote fork of ref under the authenticated account
// without cloning it.
func (c *CLI) CreateFork(ctx context.Context, ref locator.Ref) error {
	return c.run(ctx, "repo", "fork", ref.String(), "--clone=false")
}

func (c *CLI) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, c.ghPath, args...)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("gh %s failed: %w\noutput: %s", args[0], err, strings.TrimSpace(string(output)))
	}

	c.logger.Debug("gh command completed", "args", strings.Join(args, " "), "duration", time.Since(start))
	return nil
}

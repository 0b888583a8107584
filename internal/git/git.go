// Package git wraps the git command-line client behind a narrow interface
// so acquisition strategies can be tested without network access.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// CloneOptions describes a single clone operation.
type CloneOptions struct {
	URL          string
	Dir          string
	Depth        int    // 0 = full history
	Branch       string // empty = remote default branch
	SingleBranch bool
	BlobFilter   bool // --filter=blob:none
	Sparse       bool // --sparse
	Mirror       bool // bare mirror clone, implies no working tree
}

// Client is the version-control capability consumed by strategies.
type Client interface {
	Clone(ctx context.Context, opts CloneOptions) error
	SparseCheckoutSet(ctx context.Context, dir string, paths []string) error
	CreateBundle(ctx context.Context, dir, bundlePath string) error
}

// ExecClient runs the real git binary.
type ExecClient struct {
	gitPath string
	timeout time.Duration
	logger  *slog.Logger
}

// NewExecClient creates a client that shells out to git. A zero timeout
// disables the per-operation deadline.
func NewExecClient(timeout time.Duration, logger *slog.Logger) *ExecClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecClient{
		gitPath: "git",
		timeout: timeout,
		logger:  logger,
	}
}

// Clone performs a clone with the given options.
func (c *ExecClient) Clone(ctx context.Context, opts CloneOptions) error {
	args := []string{"clone"}
	if opts.Mirror {
		args = append(args, "--mirror")
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	if opts.SingleBranch {
		args = append(args, "--single-branch")
	}
	if opts.BlobFilter {
		args = append(args, "--filter=blob:none")
	}
	if opts.Sparse {
		args = append(args, "--sparse")
	}
	args = append(args, opts.URL, opts.Dir)

	return c.run(ctx, "", args...)
}

// SparseCheckoutSet restricts the checkout of dir to the given paths in
// cone mode.
func (c *ExecClient) SparseCheckoutSet(ctx context.Context, dir string, paths []string) error {
	args := append([]string{"sparse-checkout", "set", "--cone"}, paths...)
	return c.run(ctx, dir, args...)
}

// CreateBundle serializes all refs of the repository at dir into a single
// bundle file.
func (c *ExecClient) CreateBundle(ctx context.Context, dir, bundlePath string) error {
	return c.run(ctx, dir, "bundle", "create", bundlePath, "--all")
}

func (c *ExecClient) run(ctx context.Context, dir string, args ...string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.gitPath, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("git %s timed out after %s: %w", args[0], c.timeout, context.DeadlineExceeded)
		}
		return fmt.Errorf("git %s failed: %w\noutput: %s", args[0], err, strings.TrimSpace(string(output)))
	}

	c.logger.Debug("git command completed", "args", strings.Join(args, " "), "duration", time.Since(start))
	return nil
}

// Package probe verifies that the external tools an acquisition depends on
// are present before any strategy executes. JSON handling is in-process, so
// only the git and gh binaries need checking.
package probe

import (
	"context"
	"log/slog"
	"os/exec"
)

// Missing describes one absent capability and how to fix it.
type Missing struct {
	Name   string
	Remedy string
}

// AuthChecker reports whether the hosting CLI has an authenticated session.
type AuthChecker func(ctx context.Context) error

// Prober checks required external capabilities. The check is advisory and
// runs once per invocation; it never retries.
type Prober struct {
	lookPath  func(string) (string, error)
	authCheck AuthChecker
	logger    *slog.Logger
}

// New creates a Prober. authCheck may be nil when fork creation is never
// requested.
func New(authCheck AuthChecker, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		lookPath:  exec.LookPath,
		authCheck: authCheck,
		logger:    logger,
	}
}

// Check verifies every capability and returns all missing ones at once,
// so the caller can print a complete remediation list. A nil return means
// everything required is available.
func (p *Prober) Check(ctx context.Context, requireForkAuth bool) []Missing {
	var missing []Missing

	gitOK := true
	if _, err := p.lookPath("git"); err != nil {
		gitOK = false
		missing = append(missing, Missing{
			Name:   "git",
			Remedy: "install git (https://git-scm.com/downloads)",
		})
	}

	ghOK := true
	if _, err := p.lookPath("gh"); err != nil {
		ghOK = false
		missing = append(missing, Missing{
			Name:   "gh",
			Remedy: "install the GitHub CLI (https://cli.github.com)",
		})
	}

	if requireForkAuth && ghOK && p.authCheck != nil {
		if err := p.authCheck(ctx); err != nil {
			missing = append(missing, Missing{
				Name:   "gh authentication",
				Remedy: "run: gh auth login",
			})
		}
	}

	p.logger.Debug("capability probe completed",
		"git", gitOK, "gh", ghOK, "missing", len(missing))

	return missing
}

// SetLookPath overrides binary resolution, for tests.
func (p *Prober) SetLookPath(fn func(string) (string, error)) {
	p.lookPath = fn
}

// Package hosting talks to the repository hosting provider: metadata
// retrieval over the REST API, and fork/auth operations via the gh CLI.
package hosting

import (
	"fmt"
	"time"

	"github.com/repograb/repograb/internal/locator"
)

// Metadata is a point-in-time snapshot of a repository's descriptive
// attributes. It is fetched fresh on every call; nothing is cached.
type Metadata struct {
	Owner           string
	Name            string
	Description     string // empty when the provider reports none
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PushedAt        time.Time
	DiskUsageKB     int64
	Stars           int
	Forks           int
	Watchers        int
	PrimaryLanguage string
	License         string
	Private         bool
	IsFork          bool
	Parent          *locator.Ref // fork lineage, nil for non-forks
}

// NotFoundError indicates the repository is absent or inaccessible.
type NotFoundError struct {
	Ref locator.Ref
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("repository not found or not accessible: %s", e.Ref)
}

// TransportError indicates a network, auth, or provider-side failure that
// is not a definitive not-found.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("hosting API request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

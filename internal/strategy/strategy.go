// Package strategy implements the ten repository-acquisition recipes and
// the registry that dispatches between them.
package strategy

import (
	"context"
	"log/slog"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/hosting"
	"github.com/repograb/repograb/internal/locator"
)

// Strategy names. Anything outside this set is a configuration error.
const (
	NameFull      = "full"
	NameShallow   = "shallow"
	NameSparse    = "sparse"
	NameToplevel  = "toplevel"
	NameStructure = "structure"
	NameFiletype  = "filetype"
	NameAnalysis  = "analysis"
	NameMirror    = "mirror"
	NameBundle    = "bundle"
	NameMetadata  = "metadata"
)

// Request carries one invocation's acquisition parameters. It is built
// once from CLI input and read-only thereafter.
type Request struct {
	Strategy        string
	Depth           int    // 0 = strategy default
	Branch          string // empty = remote default branch
	CreateFork      bool
	Target          string // resolved base target path
	FileTypes       []string
	SparsePaths     []string
	IncludePatterns []string
	ExcludePatterns []string
	Compress        bool // bundle only: zstd-compress the output
	DryRun          bool
	Verbose         bool
}

// ResultKind discriminates the acquisition output variants.
type ResultKind string

const (
	KindWorkingDirectory ResultKind = "working-directory"
	KindBareMirror       ResultKind = "bare-mirror"
	KindBundleFile       ResultKind = "bundle-file"
	KindMetadataOnly     ResultKind = "metadata-only"
)

// Result is the materialized output of a strategy execution. Only
// working-directory results are eligible for structure analysis.
type Result struct {
	Kind     ResultKind
	Path     string // empty for metadata-only
	Metadata *hosting.Metadata
}

// Plan describes what a strategy would do with fully resolved parameters.
// Building a plan has no side effects; dry-run stops after this step.
type Plan struct {
	Strategy string
	Target   string // resolved artifact path, empty for metadata-only
	Steps    []string
}

// Strategy is one acquisition recipe. Plan validates required options and
// resolves parameters; Execute performs the operation.
type Strategy interface {
	Name() string
	Description() string
	Plan(ref locator.Ref, req *Request) (*Plan, error)
	Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error)
}

// MetadataSource fetches repository metadata from the hosting provider.
type MetadataSource interface {
	FetchMetadata(ctx context.Context, ref locator.Ref) (*hosting.Metadata, error)
}

// Forker creates a remote fork on the hosting provider.
type Forker interface {
	CreateFork(ctx context.Context, ref locator.Ref) error
}

// base carries the dependencies shared by the clone-backed strategies.
type base struct {
	git    git.Client
	host   string
	logger *slog.Logger
}

func (b base) cloneURL(ref locator.Ref) string {
	return ref.CloneURL(b.host)
}

// Registry holds all registered strategies in a fixed order.
type Registry struct {
	strategies map[string]Strategy
	order      []string
}

// NewRegistry builds a registry containing all ten strategies.
func NewRegistry(gc git.Client, meta MetadataSource, forker Forker, host string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	b := base{git: gc, host: host, logger: logger}

	r := &Registry{strategies: make(map[string]Strategy)}
	for _, s := range []Strategy{
		&fullStrategy{base: b, forker: forker},
		&shallowStrategy{base: b},
		&sparseStrategy{base: b},
		&toplevelStrategy{base: b},
		&structureStrategy{base: b},
		&filetypeStrategy{base: b},
		&analysisStrategy{base: b},
		&mirrorStrategy{base: b},
		&bundleStrategy{base: b},
		&metadataStrategy{source: meta, logger: logger},
	} {
		r.register(s)
	}
	return r
}

func (r *Registry) register(s Strategy) {
	r.strategies[s.Name()] = s
	r.order = append(r.order, s.Name())
}

// Get returns a strategy by name.
func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// Names returns strategy names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// effectiveDepth resolves the commit depth for depth-aware strategies.
func effectiveDepth(req *Request) int {
	if req.Depth > 0 {
		return req.Depth
	}
	return 1
}

package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
	"github.com/repograb/repograb/internal/safety"
)

// sparseStrategy clones with blob filtering and restricts the checkout to
// the requested paths in cone mode.
type sparseStrategy struct {
	base
}

func (s *sparseStrategy) Name() string { return NameSparse }

func (s *sparseStrategy) Description() string {
	return "blob-filtered clone checked out to selected paths only (cone mode)"
}

func (s *sparseStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	if len(req.SparsePaths) == 0 {
		return nil, &MissingOptionError{Strategy: s.Name(), Option: "sparse-paths"}
	}
	for _, p := range req.SparsePaths {
		if _, err := safety.CleanRelativePath(p); err != nil {
			return nil, fmt.Errorf("invalid sparse path %q: %w", p, err)
		}
	}
	return &Plan{
		Strategy: s.Name(),
		Target:   req.Target,
		Steps: []string{
			fmt.Sprintf("clone %s with blob filter and sparse mode into %s", s.cloneURL(ref), req.Target),
			fmt.Sprintf("restrict checkout to: %s", strings.Join(req.SparsePaths, ", ")),
		},
	}, nil
}

func (s *sparseStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	if _, err := s.Plan(ref, req); err != nil {
		return nil, err
	}

	if err := s.git.Clone(ctx, git.CloneOptions{
		URL:        s.cloneURL(ref),
		Dir:        req.Target,
		BlobFilter: true,
		Sparse:     true,
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	if err := s.git.SparseCheckoutSet(ctx, req.Target, req.SparsePaths); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	return &Result{Kind: KindWorkingDirectory, Path: req.Target}, nil
}

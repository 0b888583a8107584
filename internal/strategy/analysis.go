package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
	"github.com/repograb/repograb/internal/safety"
)

// analysisStrategy optimizes for minimal transfer: blob-filtered shallow
// clone, optionally restricted to sparse paths.
type analysisStrategy struct {
	base
}

func (s *analysisStrategy) Name() string { return NameAnalysis }

func (s *analysisStrategy) Description() string {
	return "minimal-transfer clone (shallow + blob filter, optional sparse paths)"
}

func (s *analysisStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	for _, p := range req.SparsePaths {
		if _, err := safety.CleanRelativePath(p); err != nil {
			return nil, fmt.Errorf("invalid sparse path %q: %w", p, err)
		}
	}

	depth := effectiveDepth(req)
	plan := &Plan{
		Strategy: s.Name(),
		Target:   req.Target,
		Steps: []string{
			fmt.Sprintf("clone %s with blob filter at depth %d into %s", s.cloneURL(ref), depth, req.Target),
		},
	}
	if len(req.SparsePaths) > 0 {
		plan.Steps = append(plan.Steps,
			fmt.Sprintf("restrict checkout to: %s", strings.Join(req.SparsePaths, ", ")))
	}
	return plan, nil
}

func (s *analysisStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	if _, err := s.Plan(ref, req); err != nil {
		return nil, err
	}

	if err := s.git.Clone(ctx, git.CloneOptions{
		URL:        s.cloneURL(ref),
		Dir:        req.Target,
		Depth:      effectiveDepth(req),
		BlobFilter: true,
		Sparse:     len(req.SparsePaths) > 0,
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	if len(req.SparsePaths) > 0 {
		if err := s.git.SparseCheckoutSet(ctx, req.Target, req.SparsePaths); err != nil {
			return nil, &CloneError{Strategy: s.Name(), Err: err}
		}
	}

	return &Result{Kind: KindWorkingDirectory, Path: req.Target}, nil
}

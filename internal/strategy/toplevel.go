package strategy

import (
	"context"
	"fmt"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
)

// toplevelStrategy keeps only root-level files: shallow clone, then delete
// every top-level directory except the version-control metadata.
type toplevelStrategy struct {
	base
}

func (s *toplevelStrategy) Name() string { return NameToplevel }

func (s *toplevelStrategy) Description() string {
	return "shallow clone reduced to root-level files only"
}

func (s *toplevelStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	return &Plan{
		Strategy: s.Name(),
		Target:   req.Target,
		Steps: []string{
			fmt.Sprintf("clone %s at depth 1 into %s", s.cloneURL(ref), req.Target),
			"remove all top-level directories except " + vcsDir,
		},
	}, nil
}

func (s *toplevelStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	if err := s.git.Clone(ctx, git.CloneOptions{
		URL:   s.cloneURL(ref),
		Dir:   req.Target,
		Depth: 1,
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	if err := pruneToTopLevel(req.Target); err != nil {
		return nil, fmt.Errorf("pruning to top level: %w", err)
	}

	return &Result{Kind: KindWorkingDirectory, Path: req.Target}, nil
}

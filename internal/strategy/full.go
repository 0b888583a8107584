package strategy

import (
	"context"
	"fmt"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
)

// fullStrategy clones complete history and all branches/tags, optionally
// creating a remote fork first.
type fullStrategy struct {
	base
	forker Forker
}

func (s *fullStrategy) Name() string { return NameFull }

func (s *fullStrategy) Description() string {
	return "complete clone with full history and all branches/tags"
}

func (s *fullStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	plan := &Plan{Strategy: s.Name(), Target: req.Target}
	if req.CreateFork {
		plan.Steps = append(plan.Steps, fmt.Sprintf("create remote fork of %s", ref))
	}
	plan.Steps = append(plan.Steps,
		fmt.Sprintf("clone %s with full history into %s", s.cloneURL(ref), req.Target))
	return plan, nil
}

func (s *fullStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	if req.CreateFork {
		if s.forker == nil {
			return nil, fmt.Errorf("fork creation requested but no hosting CLI available")
		}
		if err := s.forker.CreateFork(ctx, ref); err != nil {
			return nil, fmt.Errorf("creating fork of %s: %w", ref, err)
		}
		s.logger.Info("fork created", "repo", ref.String())
	}

	if err := s.git.Clone(ctx, git.CloneOptions{
		URL: s.cloneURL(ref),
		Dir: req.Target,
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	return &Result{Kind: KindWorkingDirectory, Path: req.Target}, nil
}

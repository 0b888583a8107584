package strategy

import (
	"context"
	"fmt"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
)

// shallowStrategy clones only the most recent commits. Depth is a soft
// request: the provider returning fewer commits is not an error.
type shallowStrategy struct {
	base
}

func (s *shallowStrategy) Name() string { return NameShallow }

func (s *shallowStrategy) Description() string {
	return "clone truncated to the most recent commits (--depth)"
}

func (s *shallowStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	depth := effectiveDepth(req)
	step := fmt.Sprintf("clone %s at depth %d into %s", s.cloneURL(ref), depth, req.Target)
	if req.Branch != "" {
		step += fmt.Sprintf(" (single branch %s)", req.Branch)
	}
	return &Plan{Strategy: s.Name(), Target: req.Target, Steps: []string{step}}, nil
}

func (s *shallowStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	if err := s.git.Clone(ctx, git.CloneOptions{
		URL:          s.cloneURL(ref),
		Dir:          req.Target,
		Depth:        effectiveDepth(req),
		Branch:       req.Branch,
		SingleBranch: req.Branch != "",
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	return &Result{Kind: KindWorkingDirectory, Path: req.Target}, nil
}

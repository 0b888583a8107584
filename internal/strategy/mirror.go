package strategy

import (
	"context"
	"fmt"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
)

// mirrorStrategy produces a bare mirror with all refs and no working tree,
// suitable for re-pushing elsewhere.
type mirrorStrategy struct {
	base
}

func (s *mirrorStrategy) Name() string { return NameMirror }

func (s *mirrorStrategy) Description() string {
	return "bare mirror clone (all refs, no working tree)"
}

func (s *mirrorStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	return &Plan{
		Strategy: s.Name(),
		Target:   req.Target,
		Steps: []string{
			fmt.Sprintf("mirror clone %s into %s", s.cloneURL(ref), req.Target),
		},
	}, nil
}

func (s *mirrorStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	if err := s.git.Clone(ctx, git.CloneOptions{
		URL:    s.cloneURL(ref),
		Dir:    req.Target,
		Mirror: true,
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	return &Result{Kind: KindBareMirror, Path: req.Target}, nil
}

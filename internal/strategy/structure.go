package strategy

import (
	"context"
	"fmt"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
)

// structureStrategy mirrors file and directory names without any content:
// blob-filtered depth-1 clone, then truncate every regular file.
type structureStrategy struct {
	base
}

func (s *structureStrategy) Name() string { return NameStructure }

func (s *structureStrategy) Description() string {
	return "directory and file layout only, all files truncated to zero bytes"
}

func (s *structureStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	return &Plan{
		Strategy: s.Name(),
		Target:   req.Target,
		Steps: []string{
			fmt.Sprintf("clone %s with blob filter at depth 1 into %s", s.cloneURL(ref), req.Target),
			"truncate every regular file to zero bytes",
		},
	}, nil
}

func (s *structureStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	if err := s.git.Clone(ctx, git.CloneOptions{
		URL:        s.cloneURL(ref),
		Dir:        req.Target,
		Depth:      1,
		BlobFilter: true,
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	if err := truncateFiles(req.Target); err != nil {
		return nil, fmt.Errorf("truncating files: %w", err)
	}

	return &Result{Kind: KindWorkingDirectory, Path: req.Target}, nil
}

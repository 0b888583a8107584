package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
)

// filetypeStrategy keeps only files with requested extensions: shallow
// clone, remove everything else, drop directories left empty.
type filetypeStrategy struct {
	base
}

func (s *filetypeStrategy) Name() string { return NameFiletype }

func (s *filetypeStrategy) Description() string {
	return "shallow clone filtered to selected file extensions"
}

func (s *filetypeStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	if len(req.FileTypes) == 0 {
		return nil, &MissingOptionError{Strategy: s.Name(), Option: "file-types"}
	}
	return &Plan{
		Strategy: s.Name(),
		Target:   req.Target,
		Steps: []string{
			fmt.Sprintf("clone %s at depth 1 into %s", s.cloneURL(ref), req.Target),
			fmt.Sprintf("keep only files with extensions: %s", strings.Join(normalizeExtensions(req.FileTypes), ", ")),
			"remove directories left empty",
		},
	}, nil
}

func (s *filetypeStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	if _, err := s.Plan(ref, req); err != nil {
		return nil, err
	}

	if err := s.git.Clone(ctx, git.CloneOptions{
		URL:   s.cloneURL(ref),
		Dir:   req.Target,
		Depth: 1,
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	keep := make(map[string]bool, len(req.FileTypes))
	for _, ext := range normalizeExtensions(req.FileTypes) {
		keep[ext] = true
	}
	if err := pruneByExtension(req.Target, keep); err != nil {
		return nil, fmt.Errorf("pruning by extension: %w", err)
	}

	return &Result{Kind: KindWorkingDirectory, Path: req.Target}, nil
}

// normalizeExtensions lowercases extensions and strips a leading dot so
// "MD" and ".md" both select markdown files.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

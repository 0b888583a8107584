package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/repograb/repograb/internal/locator"
)

// metadataStrategy queries the hosting API without cloning anything.
// It performs no filesystem writes.
type metadataStrategy struct {
	source MetadataSource
	logger *slog.Logger
}

func (s *metadataStrategy) Name() string { return NameMetadata }

func (s *metadataStrategy) Description() string {
	return "hosting API metadata only, no clone"
}

func (s *metadataStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	return &Plan{
		Strategy: s.Name(),
		Steps: []string{
			fmt.Sprintf("query the repository-info endpoint for %s (no filesystem writes)", ref),
		},
	}, nil
}

func (s *metadataStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	md, err := s.source.FetchMetadata(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("metadata fetched", "repo", ref.String(), "stars", md.Stars)
	return &Result{Kind: KindMetadataOnly, Metadata: md}, nil
}

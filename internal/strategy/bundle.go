package strategy

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/locator"
)

// bundleStrategy clones to a disposable temporary location, serializes all
// refs into a single bundle file, and discards the temporary clone. The
// temporary clone is removed even when bundle creation fails.
type bundleStrategy struct {
	base
}

func (s *bundleStrategy) Name() string { return NameBundle }

func (s *bundleStrategy) Description() string {
	return "single-file bundle of all refs, via a disposable temporary clone"
}

func (s *bundleStrategy) artifactPath(req *Request) string {
	p := req.Target + ".bundle"
	if req.Compress {
		p += ".zst"
	}
	return p
}

func (s *bundleStrategy) Plan(ref locator.Ref, req *Request) (*Plan, error) {
	artifact := s.artifactPath(req)
	steps := []string{
		fmt.Sprintf("clone %s into a temporary directory", s.cloneURL(ref)),
		fmt.Sprintf("create bundle of all refs at %s", artifact),
		"remove the temporary clone",
	}
	return &Plan{Strategy: s.Name(), Target: artifact, Steps: steps}, nil
}

func (s *bundleStrategy) Execute(ctx context.Context, ref locator.Ref, req *Request) (*Result, error) {
	tmpDir, err := os.MkdirTemp("", "repograb-bundle-")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}
	// The temporary clone must not outlive this call, whether bundle
	// creation succeeds, fails, or the context is cancelled.
	defer os.RemoveAll(tmpDir)

	cloneDir := filepath.Join(tmpDir, ref.Name)
	if err := s.git.Clone(ctx, git.CloneOptions{
		URL: s.cloneURL(ref),
		Dir: cloneDir,
	}); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	bundlePath, err := filepath.Abs(req.Target + ".bundle")
	if err != nil {
		return nil, fmt.Errorf("resolving bundle path: %w", err)
	}
	if err := s.git.CreateBundle(ctx, cloneDir, bundlePath); err != nil {
		return nil, &CloneError{Strategy: s.Name(), Err: err}
	}

	finalPath := bundlePath
	if req.Compress {
		finalPath, err = compressFile(bundlePath)
		if err != nil {
			return nil, fmt.Errorf("compressing bundle: %w", err)
		}
		s.logger.Info("bundle compressed", "path", finalPath)
	}

	return &Result{Kind: KindBundleFile, Path: finalPath}, nil
}

// compressFile zstd-compresses src into src+".zst" and removes the
// uncompressed original on success.
func compressFile(src string) (string, error) {
	dst := src + ".zst"

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	enc, err := zstd.NewWriter(out)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return "", err
	}

	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		out.Close()
		os.Remove(dst)
		return "", err
	}
	if err := enc.Close(); err != nil {
		out.Close()
		os.Remove(dst)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", err
	}

	if err := os.Remove(src); err != nil {
		return "", err
	}
	return dst, nil
}

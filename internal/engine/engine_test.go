package engine

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/hosting"
	"github.com/repograb/repograb/internal/locator"
	"github.com/repograb/repograb/internal/store"
	"github.com/repograb/repograb/internal/strategy"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeGit struct {
	cloneCalls int
	cloneErr   error
	tree       map[string]string
}

func (f *fakeGit) Clone(ctx context.Context, opts git.CloneOptions) error {
	f.cloneCalls++
	if f.cloneErr != nil {
		return f.cloneErr
	}
	if err := os.MkdirAll(filepath.Join(opts.Dir, ".git"), 0o755); err != nil {
		return err
	}
	for rel, content := range f.tree {
		p := filepath.Join(opts.Dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeGit) SparseCheckoutSet(ctx context.Context, dir string, paths []string) error {
	return nil
}

func (f *fakeGit) CreateBundle(ctx context.Context, dir, bundlePath string) error {
	return os.WriteFile(bundlePath, []byte("bundle"), 0o644)
}

type fakeMetadataSource struct {
	md *hosting.Metadata
}

func (f *fakeMetadataSource) FetchMetadata(ctx context.Context, ref locator.Ref) (*hosting.Metadata, error) {
	return f.md, nil
}

func testRef() locator.Ref {
	return locator.Ref{Owner: "octocat", Name: "Hello-World"}
}

func newTestExecutor(t *testing.T, fg *fakeGit) (*Executor, *store.Store) {
	t.Helper()
	st, err := store.New(":memory:", testLogger())
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	reg := strategy.NewRegistry(fg, &fakeMetadataSource{md: &hosting.Metadata{}}, nil, "github.com", testLogger())
	return New(reg, st, testLogger()), st
}

func TestRunUnknownStrategy(t *testing.T) {
	e, _ := newTestExecutor(t, &fakeGit{})

	_, err := e.Run(context.Background(), testRef(), &strategy.Request{Strategy: "tarball"}, false)
	var unknown *strategy.UnknownStrategyError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v (%T), want *UnknownStrategyError", err, err)
	}
	if unknown.Name != "tarball" {
		t.Errorf("Name = %q", unknown.Name)
	}
}

func TestRunDryRunHasNoSideEffects(t *testing.T) {
	fg := &fakeGit{}
	e, st := newTestExecutor(t, fg)

	target := filepath.Join(t.TempDir(), "Hello-World")
	req := &strategy.Request{Strategy: strategy.NameShallow, Target: target, DryRun: true}

	report, err := e.Run(context.Background(), testRef(), req, true)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !report.DryRun {
		t.Error("report not marked as dry run")
	}
	if report.Result != nil {
		t.Error("dry run produced a result")
	}
	if len(report.Plan.Steps) == 0 {
		t.Error("dry run produced no plan steps")
	}
	if fg.cloneCalls != 0 {
		t.Errorf("dry run performed %d clones", fg.cloneCalls)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("dry run created the target")
	}
	count, err := st.CountAcquisitionRuns()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("dry run recorded %d history rows", count)
	}
}

func TestRunDryRunStillValidatesOptions(t *testing.T) {
	e, _ := newTestExecutor(t, &fakeGit{})

	req := &strategy.Request{
		Strategy: strategy.NameSparse,
		Target:   filepath.Join(t.TempDir(), "r"),
		DryRun:   true,
	}
	_, err := e.Run(context.Background(), testRef(), req, false)
	var missing *strategy.MissingOptionError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingOptionError", err)
	}
}

func TestRunTargetExists(t *testing.T) {
	fg := &fakeGit{}
	e, _ := newTestExecutor(t, fg)

	target := filepath.Join(t.TempDir(), "occupied")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}

	req := &strategy.Request{Strategy: strategy.NameShallow, Target: target}
	_, err := e.Run(context.Background(), testRef(), req, false)
	var exists *strategy.TargetExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("error = %v (%T), want *TargetExistsError", err, err)
	}
	if fg.cloneCalls != 0 {
		t.Error("clone ran despite occupied target")
	}
}

func TestRunRecordsSuccess(t *testing.T) {
	fg := &fakeGit{tree: map[string]string{
		"README.md":   "hello",
		"src/main.go": "package main",
	}}
	e, st := newTestExecutor(t, fg)

	target := filepath.Join(t.TempDir(), "Hello-World")
	req := &strategy.Request{Strategy: strategy.NameShallow, Target: target}

	report, err := e.Run(context.Background(), testRef(), req, true)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if report.Result == nil || report.Result.Kind != strategy.KindWorkingDirectory {
		t.Fatalf("result = %+v", report.Result)
	}
	if report.Analysis == nil {
		t.Fatal("analysis missing from report")
	}
	if report.Analysis.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", report.Analysis.FileCount)
	}

	runs, err := st.ListAcquisitionRuns("octocat", "Hello-World", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("history rows = %d, want 1", len(runs))
	}
	run := runs[0]
	if run.Status != "success" {
		t.Errorf("Status = %q", run.Status)
	}
	if run.Strategy != strategy.NameShallow {
		t.Errorf("Strategy = %q", run.Strategy)
	}
	if run.FileCount != 2 {
		t.Errorf("recorded FileCount = %d, want 2", run.FileCount)
	}
	if run.EndTime.IsZero() {
		t.Error("EndTime not set")
	}
}

func TestRunRecordsFailure(t *testing.T) {
	fg := &fakeGit{cloneErr: errors.New("remote hung up")}
	e, st := newTestExecutor(t, fg)

	req := &strategy.Request{Strategy: strategy.NameShallow, Target: filepath.Join(t.TempDir(), "r")}
	if _, err := e.Run(context.Background(), testRef(), req, false); err == nil {
		t.Fatal("Run succeeded despite clone failure")
	}

	runs, err := st.ListAcquisitionRuns("", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("history rows = %d, want 1", len(runs))
	}
	if runs[0].Status != "failed" {
		t.Errorf("Status = %q", runs[0].Status)
	}
	if runs[0].ErrorMessage == "" {
		t.Error("ErrorMessage not recorded")
	}
}

func TestRunAppliesPatterns(t *testing.T) {
	fg := &fakeGit{tree: map[string]string{
		"README.md":  "keep",
		"notes.tmp":  "drop",
		"src/app.go": "keep",
	}}
	e, _ := newTestExecutor(t, fg)

	target := filepath.Join(t.TempDir(), "r")
	req := &strategy.Request{
		Strategy:        strategy.NameShallow,
		Target:          target,
		ExcludePatterns: []string{"*.tmp"},
	}
	if _, err := e.Run(context.Background(), testRef(), req, false); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, "notes.tmp")); !os.IsNotExist(err) {
		t.Error("excluded file survived")
	}
	if _, err := os.Stat(filepath.Join(target, "README.md")); err != nil {
		t.Errorf("kept file missing: %v", err)
	}
}

func TestRunPatternsIgnoredForNonWorkingDir(t *testing.T) {
	fg := &fakeGit{}
	e, _ := newTestExecutor(t, fg)

	target := filepath.Join(t.TempDir(), "r.git")
	req := &strategy.Request{
		Strategy:        strategy.NameMirror,
		Target:          target,
		ExcludePatterns: []string{"*.tmp"},
	}
	report, err := e.Run(context.Background(), testRef(), req, false)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Result.Kind != strategy.KindBareMirror {
		t.Errorf("Kind = %q", report.Result.Kind)
	}
}

func TestRunWithNilStore(t *testing.T) {
	fg := &fakeGit{}
	reg := strategy.NewRegistry(fg, &fakeMetadataSource{md: &hosting.Metadata{}}, nil, "github.com", testLogger())
	e := New(reg, nil, testLogger())

	req := &strategy.Request{Strategy: strategy.NameShallow, Target: filepath.Join(t.TempDir(), "r")}
	if _, err := e.Run(context.Background(), testRef(), req, false); err != nil {
		t.Fatalf("Run with nil store returned error: %v", err)
	}
}

func TestRunMetadataStrategySkipsTargetGuard(t *testing.T) {
	e, _ := newTestExecutor(t, &fakeGit{})

	// Metadata plans have no target, so no collision check and no parent
	// directory creation happen.
	req := &strategy.Request{Strategy: strategy.NameMetadata}
	report, err := e.Run(context.Background(), testRef(), req, true)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Result.Kind != strategy.KindMetadataOnly {
		t.Errorf("Kind = %q", report.Result.Kind)
	}
	if report.Analysis != nil {
		t.Error("analysis ran for a metadata-only result")
	}
}

package store

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

// newTestStore creates a Store backed by an in-memory database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := New(":memory:", logger)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func sampleRun() *AcquisitionRun {
	return &AcquisitionRun{
		Owner:     "octocat",
		Name:      "Hello-World",
		Strategy:  "shallow",
		Target:    "/tmp/Hello-World",
		Status:    "running",
		StartTime: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndGetAcquisitionRun(t *testing.T) {
	s := newTestStore(t)

	run := sampleRun()
	if err := s.CreateAcquisitionRun(run); err != nil {
		t.Fatalf("CreateAcquisitionRun returned error: %v", err)
	}
	if run.ID == 0 {
		t.Fatal("CreateAcquisitionRun did not set ID")
	}

	got, err := s.GetAcquisitionRun(run.ID)
	if err != nil {
		t.Fatalf("GetAcquisitionRun returned error: %v", err)
	}
	if got.Owner != "octocat" || got.Name != "Hello-World" {
		t.Errorf("repo = %s/%s", got.Owner, got.Name)
	}
	if got.Strategy != "shallow" || got.Status != "running" {
		t.Errorf("strategy/status = %s/%s", got.Strategy, got.Status)
	}
	if !got.StartTime.Equal(run.StartTime) {
		t.Errorf("StartTime = %s, want %s", got.StartTime, run.StartTime)
	}
}

func TestGetAcquisitionRunNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetAcquisitionRun(9999); err == nil {
		t.Error("GetAcquisitionRun for a missing ID did not fail")
	}
}

func TestUpdateAcquisitionRun(t *testing.T) {
	s := newTestStore(t)

	run := sampleRun()
	if err := s.CreateAcquisitionRun(run); err != nil {
		t.Fatalf("CreateAcquisitionRun returned error: %v", err)
	}

	run.Status = "success"
	run.EndTime = run.StartTime.Add(42 * time.Second)
	run.DirCount = 3
	run.FileCount = 17
	run.TotalSize = 20480
	if err := s.UpdateAcquisitionRun(run); err != nil {
		t.Fatalf("UpdateAcquisitionRun returned error: %v", err)
	}

	got, err := s.GetAcquisitionRun(run.ID)
	if err != nil {
		t.Fatalf("GetAcquisitionRun returned error: %v", err)
	}
	if got.Status != "success" {
		t.Errorf("Status = %q", got.Status)
	}
	if got.FileCount != 17 || got.DirCount != 3 || got.TotalSize != 20480 {
		t.Errorf("counters = %d/%d/%d", got.DirCount, got.FileCount, got.TotalSize)
	}
}

func TestUpdateAcquisitionRunMissing(t *testing.T) {
	s := newTestStore(t)

	run := sampleRun()
	run.ID = 1234
	if err := s.UpdateAcquisitionRun(run); err == nil {
		t.Error("UpdateAcquisitionRun for a missing row did not fail")
	}
}

func TestListAcquisitionRuns(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := sampleRun()
		run.StartTime = base.Add(time.Duration(i) * time.Hour)
		if i%2 == 1 {
			run.Owner, run.Name = "other", "repo"
		}
		if err := s.CreateAcquisitionRun(run); err != nil {
			t.Fatalf("CreateAcquisitionRun returned error: %v", err)
		}
	}

	all, err := s.ListAcquisitionRuns("", "", 0)
	if err != nil {
		t.Fatalf("ListAcquisitionRuns returned error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].StartTime.After(all[i-1].StartTime) {
			t.Errorf("runs not newest-first at index %d", i)
		}
	}

	filtered, err := s.ListAcquisitionRuns("other", "repo", 0)
	if err != nil {
		t.Fatalf("ListAcquisitionRuns returned error: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered len = %d, want 2", len(filtered))
	}

	limited, err := s.ListAcquisitionRuns("", "", 3)
	if err != nil {
		t.Fatalf("ListAcquisitionRuns returned error: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("limited len = %d, want 3", len(limited))
	}

	count, err := s.CountAcquisitionRuns()
	if err != nil {
		t.Fatalf("CountAcquisitionRuns returned error: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}

func TestNewCreatesParentDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	s, err := New(path, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()

	run := sampleRun()
	if err := s.CreateAcquisitionRun(run); err != nil {
		t.Errorf("CreateAcquisitionRun on file-backed store: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.migrate(); err != nil {
		t.Fatalf("second migrate returned error: %v", err)
	}
}

package store

import "time"

// AcquisitionRun records one acquisition execution. History is recording
// only — it is never consulted to skip or resume work.
type AcquisitionRun struct {
	ID           int64
	Owner        string
	Name         string
	Strategy     string
	Target       string
	Status       string // "running", "success", "failed"
	ErrorMessage string
	StartTime    time.Time
	EndTime      time.Time

	// Post-acquisition structure counters, zero when no analysis ran.
	DirCount  int
	FileCount int
	TotalSize int64
}

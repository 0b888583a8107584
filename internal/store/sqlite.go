// Package store provides SQLite-backed acquisition history.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a new Store, opening the SQLite database and running migrations
func New(dbPath string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dbPath != ":memory:" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("store initialized", "path", dbPath)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// CreateAcquisitionRun inserts a new AcquisitionRun and sets its ID
func (s *Store) CreateAcquisitionRun(run *AcquisitionRun) error {
	const query = `
		INSERT INTO acquisition_runs (
			owner, name, strategy, target, status, error_message,
			start_time, end_time, dir_count, file_count, total_size
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(
		query,
		run.Owner, run.Name, run.Strategy, run.Target, run.Status,
		run.ErrorMessage, run.StartTime, run.EndTime,
		run.DirCount, run.FileCount, run.TotalSize,
	)
	if err != nil {
		return fmt.Errorf("failed to insert acquisition run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

// UpdateAcquisitionRun updates an existing AcquisitionRun by ID
func (s *Store) UpdateAcquisitionRun(run *AcquisitionRun) error {
	const query = `
		UPDATE acquisition_runs SET
			owner = ?, name = ?, strategy = ?, target = ?, status = ?,
			error_message = ?, start_time = ?, end_time = ?,
			dir_count = ?, file_count = ?, total_size = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(
		query,
		run.Owner, run.Name, run.Strategy, run.Target, run.Status,
		run.ErrorMessage, run.StartTime, run.EndTime,
		run.DirCount, run.FileCount, run.TotalSize, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update acquisition run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("acquisition run not found: %d", run.ID)
	}

	return nil
}

// GetAcquisitionRun retrieves an AcquisitionRun by ID
func (s *Store) GetAcquisitionRun(id int64) (*AcquisitionRun, error) {
	const query = `
		SELECT id, owner, name, strategy, target, status, error_message,
		       start_time, end_time, dir_count, file_count, total_size
		FROM acquisition_runs WHERE id = ?
	`

	run := &AcquisitionRun{}
	err := s.db.QueryRow(query, id).Scan(
		&run.ID, &run.Owner, &run.Name, &run.Strategy, &run.Target,
		&run.Status, &run.ErrorMessage, &run.StartTime, &run.EndTime,
		&run.DirCount, &run.FileCount, &run.TotalSize,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("acquisition run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to query acquisition run: %w", err)
	}

	return run, nil
}

// ListAcquisitionRuns retrieves runs, newest first, optionally filtered by
// owner/name.
func (s *Store) ListAcquisitionRuns(owner, name string, limit int) ([]AcquisitionRun, error) {
	query := `
		SELECT id, owner, name, strategy, target, status, error_message,
		       start_time, end_time, dir_count, file_count, total_size
		FROM acquisition_runs
	`
	var args []interface{}

	if owner != "" && name != "" {
		query += " WHERE owner = ? AND name = ?"
		args = append(args, owner, name)
	}

	query += " ORDER BY start_time DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query acquisition runs: %w", err)
	}
	defer rows.Close()

	var runs []AcquisitionRun
	for rows.Next() {
		run := AcquisitionRun{}
		err := rows.Scan(
			&run.ID, &run.Owner, &run.Name, &run.Strategy, &run.Target,
			&run.Status, &run.ErrorMessage, &run.StartTime, &run.EndTime,
			&run.DirCount, &run.FileCount, &run.TotalSize,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan acquisition run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating acquisition runs: %w", err)
	}

	return runs, nil
}

// CountAcquisitionRuns returns the total number of recorded runs.
func (s *Store) CountAcquisitionRuns() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM acquisition_runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count acquisition runs: %w", err)
	}
	return count, nil
}

// Package history persists run records in a local SQLite database so later
// invocations can inspect or retry earlier work.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// ErrNoRuns indicates no matching run has been recorded.
var ErrNoRuns = errors.New("no runs recorded")

// Run is one recorded invocation.
type Run struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Failure is one failed file within a run.
type Failure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Store persists runs and their failures.
type Store struct {
	db *sql.DB
}

// Open opens the history database at path, creating the file and schema as
// needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts the run and its failures in one transaction. A run
// without an ID is assigned one.
func (s *Store) RecordRun(ctx context.Context, r *Run, failures []Failure) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, command, input_path, output_path, total, succeeded, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Command, r.InputPath, r.OutputPath, r.Total, r.Succeeded, r.Failed, r.StartedAt, r.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, f := range failures {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO run_failures (run_id, path, reason) VALUES (?, ?, ?)",
			r.ID, f.Path, f.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns recorded runs, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, command, input_path, output_path, total, succeeded, failed, started_at, finished_at
		FROM runs ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Run
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.Command, &r.InputPath, &r.OutputPath, &r.Total, &r.Succeeded, &r.Failed, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return results, nil
}

// LastRun returns the most recent run for command; an empty command matches
// any. Returns ErrNoRuns when nothing has been recorded.
func (s *Store) LastRun(ctx context.Context, command string) (*Run, error) {
	query := `SELECT id, command, input_path, output_path, total, succeeded, failed, started_at, finished_at
		FROM runs`
	var args []any
	if command != "" {
		query += " WHERE command = ?"
		args = append(args, command)
	}
	query += " ORDER BY started_at DESC LIMIT 1"

	r := &Run{}
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&r.ID, &r.Command, &r.InputPath, &r.OutputPath, &r.Total, &r.Succeeded, &r.Failed, &r.StartedAt, &r.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	return r, nil
}

// Failures lists the failed files recorded for a run, in insertion order.
func (s *Store) Failures(ctx context.Context, runID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT path, reason FROM run_failures WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, fmt.Errorf("list failures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Path, &f.Reason); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		results = append(results, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}
	return results, nil
}
